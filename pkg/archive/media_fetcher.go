package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MediaFetcher downloads the raw bytes of a provider-hosted media item.
type MediaFetcher interface {
	Fetch(ctx context.Context, messageSid, mediaSid string) (content []byte, contentType string, err error)
}

// TwilioMediaClient fetches media content from the Twilio REST API. The Go
// client library has no binary media download surface, so this hits the
// content endpoint directly with basic auth.
type TwilioMediaClient struct {
	AccountSid string
	AuthToken  string
	Client     *http.Client
}

var _ MediaFetcher = &TwilioMediaClient{}

func NewTwilioMediaClient(accountSid, authToken string) *TwilioMediaClient {
	return &TwilioMediaClient{
		AccountSid: accountSid,
		AuthToken:  authToken,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *TwilioMediaClient) Fetch(ctx context.Context, messageSid, mediaSid string) ([]byte, string, error) {
	url := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages/%s/Media/%s",
		c.AccountSid, messageSid, mediaSid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create media request: %w", err)
	}
	req.SetBasicAuth(c.AccountSid, c.AuthToken)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch media %s/%s: %w", messageSid, mediaSid, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch media %s/%s: status %d", messageSid, mediaSid, resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read media body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return content, contentType, nil
}

// ParseMediaURL extracts the message and media identifiers from a provider
// media URL of the form .../Messages/{messageSid}/Media/{mediaSid}.
func ParseMediaURL(url string) (messageSid, mediaSid string, err error) {
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "Messages" {
			messageSid = parts[i+1]
		}
		if parts[i] == "Media" {
			mediaSid = parts[i+1]
		}
	}
	if messageSid == "" || mediaSid == "" {
		return "", "", fmt.Errorf("not a provider media URL: %s", url)
	}
	return messageSid, mediaSid, nil
}
