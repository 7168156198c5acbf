package board

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/logger"
)

// DefaultBoardURL is the external arrivals board scraped for flight
// status. The source is fixed, not runtime configuration.
const DefaultBoardURL = "https://fis.com.mv/index.php?webfids=arrivals"

// The source rejects non-browser clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const fetchTimeout = 15 * time.Second

// FetchError reports an unusable board response, carrying the HTTP
// status or the underlying transport error.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("board fetch failed: %v", e.Err)
	}
	return fmt.Sprintf("board returned status %d", e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves the raw arrivals-board document over HTTP.
type Fetcher struct {
	url    string
	client *http.Client
	logger logger.Logger
}

// NewFetcher creates a board fetcher. An empty url selects the fixed
// production board; tests pass their own server.
func NewFetcher(url string, logger logger.Logger) *Fetcher {
	if url == "" {
		url = DefaultBoardURL
	}
	return &Fetcher{
		url:    url,
		client: &http.Client{Timeout: fetchTimeout},
		logger: logger,
	}
}

// Fetch issues a single request with browser-like headers and returns
// the raw document text on 2xx. No retry at this layer; the caller
// decides whether to fall back to synthetic data.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", &FetchError{Err: err}
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("Board rejected request", "status", resp.StatusCode)
		return "", &FetchError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Err: err}
	}

	f.logger.Debug("Board fetched", "bytes", len(body))
	return string(body), nil
}
