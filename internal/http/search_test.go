package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeCatalogClient records calls so tests can assert no outbound request was
// made for blank queries.
type fakeCatalogClient struct {
	payload     json.RawMessage
	err         error
	searchCalls int
}

func (f *fakeCatalogClient) Search(_ context.Context, query string) (json.RawMessage, error) {
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func (f *fakeCatalogClient) EmptyResult() json.RawMessage {
	return json.RawMessage(`{"items":[],"totalItems":0}`)
}

func TestSearch(t *testing.T) {
	t.Run("blank query short-circuits without upstream call", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()

		for _, q := range []string{"", "   ", "%20%20"} {
			w := api.do(t, "GET", "/search?q="+q, nil)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"items":[],"totalItems":0}`, w.Body.String())
		}
		assert.Zero(t, api.search.searchCalls)
	})

	t.Run("relays the upstream payload verbatim", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()

		api.search.payload = json.RawMessage(`{"items":[{"id":"abc"}],"totalItems":1}`)

		w := api.do(t, "GET", "/search?q=dune", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, string(api.search.payload), w.Body.String())
		assert.Equal(t, 1, api.search.searchCalls)
	})

	t.Run("maps upstream failure to a generic 500", func(t *testing.T) {
		api, cleanup := setupTestAPI(t)
		defer cleanup()

		api.search.err = fmt.Errorf("upstream exploded")

		w := api.do(t, "GET", "/search?q=dune", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		response := decodeBody(t, w)
		assert.NotContains(t, response["error"], "exploded")
	})
}
