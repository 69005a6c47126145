// Package catalog provides thin passthrough clients for external book
// catalogs. Search results are relayed to the caller as the upstream JSON
// payload, unmodified.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrSearchFailed is returned for any upstream or transport failure. Searches
// never partially succeed.
var ErrSearchFailed = errors.New("search failed")

// Client searches one external book catalog.
type Client interface {
	// Search forwards a free-text query upstream and returns the raw
	// response body. The query must be non-empty.
	Search(ctx context.Context, query string) (json.RawMessage, error)

	// EmptyResult returns the provider's empty result shape, used for
	// blank queries without any outbound request.
	EmptyResult() json.RawMessage
}
