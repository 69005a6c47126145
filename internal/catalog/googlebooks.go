package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GoogleBooksClient proxies searches to the Google Books volumes API.
type GoogleBooksClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxResults int
}

// NewGoogleBooksClient creates a Google Books search client. The API key is
// optional for low request volumes but recommended.
func NewGoogleBooksClient(apiKey string, maxResults int) *GoogleBooksClient {
	return &GoogleBooksClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:    "https://www.googleapis.com/books/v1",
		apiKey:     apiKey,
		maxResults: maxResults,
	}
}

// Search queries the volumes endpoint and relays the response body verbatim.
func (c *GoogleBooksClient) Search(ctx context.Context, query string) (json.RawMessage, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprintf("%d", c.maxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	searchURL := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())
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

// EmptyResult mirrors the volumes endpoint's shape for zero results.
func (c *GoogleBooksClient) EmptyResult() json.RawMessage {
	return json.RawMessage(`{"items":[],"totalItems":0}`)
}
