package archive

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"wa-feedback-be/internal/pkg/logger"
	"wa-feedback-be/pkg/objectstore"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentArchives = 4

// MediaArchiver exchanges a transient provider-side media reference for a
// durable object-store URL. Archiving the same (messageSid, mediaSid) twice
// returns the same URL both times.
type MediaArchiver interface {
	Archive(ctx context.Context, messageSid, mediaSid string) (string, error)
	ArchiveAll(ctx context.Context, mediaURLs []string) []string
}

type Archiver struct {
	fetcher MediaFetcher
	store   objectstore.ObjectStore
	logger  logger.ILogger

	// archived memoises (messageSid, mediaSid) -> URL so retried completions
	// short-circuit instead of re-uploading
	archived *cache.Cache
}

var _ MediaArchiver = &Archiver{}

func NewArchiver(fetcher MediaFetcher, store objectstore.ObjectStore, sysLogger logger.ILogger) *Archiver {
	return &Archiver{
		fetcher:  fetcher,
		store:    store,
		logger:   sysLogger,
		archived: cache.New(24*time.Hour, time.Hour),
	}
}

// ObjectKey derives the deterministic storage key for one media item. The key
// depends only on identifiers and content type, so a re-archive overwrites the
// same object.
func ObjectKey(messageSid, mediaSid, contentType string) string {
	extension := contentType
	if idx := strings.LastIndex(contentType, "/"); idx >= 0 {
		extension = contentType[idx+1:]
	}
	return fmt.Sprintf("feedback-media/%s/%s.%s", messageSid, mediaSid, extension)
}

func (a *Archiver) Archive(ctx context.Context, messageSid, mediaSid string) (string, error) {
	memoKey := messageSid + "/" + mediaSid
	if url, found := a.archived.Get(memoKey); found {
		return url.(string), nil
	}

	content, contentType, err := a.fetcher.Fetch(ctx, messageSid, mediaSid)
	if err != nil {
		return "", err
	}

	url, err := a.store.Put(ctx, ObjectKey(messageSid, mediaSid, contentType), content, contentType)
	if err != nil {
		return "", err
	}

	a.archived.Set(memoKey, url, cache.DefaultExpiration)
	a.logger.Info("archiver", "Media archived", map[string]interface{}{
		"message_sid": messageSid,
		"media_sid":   mediaSid,
		"url":         url,
	})
	return url, nil
}

// ArchiveAll archives every referenced media item with bounded concurrency and
// returns the URLs that succeeded. A failed item is logged and skipped so one
// bad reference does not lose the rest of the feedback.
func (a *Archiver) ArchiveAll(ctx context.Context, mediaURLs []string) []string {
	if len(mediaURLs) == 0 {
		return nil
	}

	var mu sync.Mutex
	urls := make([]string, 0, len(mediaURLs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentArchives)

	for _, mediaURL := range mediaURLs {
		mediaURL := mediaURL
		g.Go(func() error {
			messageSid, mediaSid, err := ParseMediaURL(mediaURL)
			if err != nil {
				a.logger.Warn("archiver", "Skipping unrecognized media URL", map[string]interface{}{
					"url": mediaURL, "error": err.Error(),
				})
				return nil
			}

			url, err := a.Archive(gctx, messageSid, mediaSid)
			if err != nil {
				a.logger.Error("archiver", "Failed to archive media", map[string]interface{}{
					"url": mediaURL, "error": err.Error(),
				})
				return nil
			}

			mu.Lock()
			urls = append(urls, url)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait() // workers never return errors; they log and skip
	return urls
}
