package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/viraatdas/lendy/internal/catalog"
)

type SearchController struct {
	client catalog.Client
}

func NewSearchController(client catalog.Client) *SearchController {
	return &SearchController{client: client}
}

// Search proxies a free-text query to the configured external catalog and
// relays the upstream payload verbatim. Blank queries short-circuit to the
// provider's empty shape without an outbound request.
// GET /search?q=Q
func (sc *SearchController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.Data(http.StatusOK, "application/json; charset=utf-8", sc.client.EmptyResult())
		return
	}

	payload, err := sc.client.Search(c.Request.Context(), query)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
