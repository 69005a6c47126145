package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// OpenLibraryClient proxies searches to the OpenLibrary search API.
type OpenLibraryClient struct {
	httpClient  *http.Client
	baseURL     string
	maxResults  int
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewOpenLibraryClient creates an OpenLibrary search client with rate limiting.
func NewOpenLibraryClient(maxResults int) *OpenLibraryClient {
	return &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     "https://openlibrary.org",
		maxResults:  maxResults,
		rateLimiter: newRateLimiter(time.Second), // 1 request per second
	}
}

// Search queries the search endpoint and relays the response body verbatim.
func (c *OpenLibraryClient) Search(ctx context.Context, query string) (json.RawMessage, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	c.rateLimiter.wait()

	searchURL := fmt.Sprintf("%s/search.json?q=%s&limit=%d", c.baseURL, url.QueryEscape(query), c.maxResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Lendy/1.0 (https://github.com/viraatdas/lendy)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrSearchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrSearchFailed, err)
	}

	return body, nil
}

// EmptyResult mirrors the search endpoint's shape for zero results.
func (c *OpenLibraryClient) EmptyResult() json.RawMessage {
	return json.RawMessage(`{"docs":[],"numFound":0}`)
}
