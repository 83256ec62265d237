package archive

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu      sync.Mutex
	fetches int
	failSid string
}

func (f *fakeFetcher) Fetch(ctx context.Context, messageSid, mediaSid string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if mediaSid == f.failSid {
		return nil, "", errors.New("provider returned 404")
	}
	return []byte("jpeg-bytes"), "image/jpeg", nil
}

type fakeObjectStore struct {
	mu   sync.Mutex
	puts map[string]string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{puts: map[string]string{}}
}

func (s *fakeObjectStore) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "https://bucket.s3.amazonaws.com/" + key
	s.puts[key] = url
	return url, nil
}

type silentLogger struct{}

func (silentLogger) Debug(module, message string, details map[string]interface{}) {}
func (silentLogger) Info(module, message string, details map[string]interface{})  {}
func (silentLogger) Warn(module, message string, details map[string]interface{})  {}
func (silentLogger) Error(module, message string, details map[string]interface{}) {}
func (silentLogger) Sync() error                                                  { return nil }

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        string
	}{
		{"jpeg", "image/jpeg", "feedback-media/MM1/ME1.jpeg"},
		{"png", "image/png", "feedback-media/MM1/ME1.png"},
		{"bare extension", "pdf", "feedback-media/MM1/ME1.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectKey("MM1", "ME1", tt.contentType))
		})
	}
}

func TestParseMediaURL(t *testing.T) {
	messageSid, mediaSid, err := ParseMediaURL("https://api.twilio.com/2010-04-01/Accounts/AC1/Messages/MM9/Media/ME7")
	require.NoError(t, err)
	assert.Equal(t, "MM9", messageSid)
	assert.Equal(t, "ME7", mediaSid)

	_, _, err = ParseMediaURL("https://example.com/some/other/path")
	assert.Error(t, err)
}

func TestArchive_SameItemTwiceReturnsSameURL(t *testing.T) {
	fetcher := &fakeFetcher{}
	store := newFakeObjectStore()
	archiver := NewArchiver(fetcher, store, silentLogger{})

	first, err := archiver.Archive(context.Background(), "MM1", "ME1")
	require.NoError(t, err)
	second, err := archiver.Archive(context.Background(), "MM1", "ME1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/feedback-media/MM1/ME1.jpeg", first)
	// Memoised: the second call never hits the provider
	assert.Equal(t, 1, fetcher.fetches)
	assert.Len(t, store.puts, 1)
}

func TestArchiveAll_SkipsFailuresAndKeepsTheRest(t *testing.T) {
	fetcher := &fakeFetcher{failSid: "MEBAD"}
	store := newFakeObjectStore()
	archiver := NewArchiver(fetcher, store, silentLogger{})

	urls := archiver.ArchiveAll(context.Background(), []string{
		"https://api.twilio.com/2010-04-01/Accounts/AC1/Messages/MM1/Media/ME1",
		"https://api.twilio.com/2010-04-01/Accounts/AC1/Messages/MM1/Media/MEBAD",
		"not-a-media-url",
		"https://api.twilio.com/2010-04-01/Accounts/AC1/Messages/MM2/Media/ME2",
	})

	sort.Strings(urls)
	assert.Equal(t, []string{
		"https://bucket.s3.amazonaws.com/feedback-media/MM1/ME1.jpeg",
		"https://bucket.s3.amazonaws.com/feedback-media/MM2/ME2.jpeg",
	}, urls)
}

func TestArchiveAll_EmptyInput(t *testing.T) {
	archiver := NewArchiver(&fakeFetcher{}, newFakeObjectStore(), silentLogger{})
	assert.Nil(t, archiver.ArchiveAll(context.Background(), nil))
}
