package http

import (
	"github.com/gin-gonic/gin"

	"github.com/viraatdas/lendy/internal/catalog"
	"github.com/viraatdas/lendy/internal/database"
	"github.com/viraatdas/lendy/internal/database/books"
	"github.com/viraatdas/lendy/internal/database/users"
)

// RouterConfig carries all dependencies the router needs, improving
// testability and reducing parameter count.
type RouterConfig struct {
	Database *database.Database
	Users    *users.Repository
	Books    *books.Repository
	Catalog  catalog.Client
	Version  string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	usersController := NewUsersController(cfg.Users)
	booksController := NewBooksController(cfg.Books)
	searchController := NewSearchController(cfg.Catalog)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// User endpoint
	router.POST("/user", usersController.CreateUser)

	// Book endpoints
	router.GET("/books", booksController.ListBooks)
	router.POST("/books", booksController.AddBook)
	router.PATCH("/books/:id", booksController.UpdateBook)
	router.DELETE("/books/:id", booksController.DeleteBook)

	// Catalog search proxy
	router.GET("/search", searchController.Search)

	return router
}
