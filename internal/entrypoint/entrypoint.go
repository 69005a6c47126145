package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/viraatdas/lendy/internal/catalog"
	"github.com/viraatdas/lendy/internal/config"
	"github.com/viraatdas/lendy/internal/database"
	"github.com/viraatdas/lendy/internal/database/books"
	"github.com/viraatdas/lendy/internal/database/users"
	http_controllers "github.com/viraatdas/lendy/internal/http"
)

func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// NewCatalogClient builds the search client for the configured provider.
func NewCatalogClient(cfg config.Catalog) catalog.Client {
	switch cfg.Provider {
	case config.CatalogProviderGoogle:
		log.Printf("Catalog provider: Google Books")
		if cfg.GoogleAPIKey == "" {
			log.Printf("WARNING: GOOGLE_BOOKS_API_KEY is not set. Google Books may throttle unauthenticated requests.")
		}
		return catalog.NewGoogleBooksClient(cfg.GoogleAPIKey, cfg.MaxResults)
	default:
		log.Printf("Catalog provider: OpenLibrary")
		return catalog.NewOpenLibraryClient(cfg.MaxResults)
	}
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Lendy v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	usersRepo := users.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB, usersRepo)

	routerCfg := http_controllers.RouterConfig{
		Database: db,
		Users:    usersRepo,
		Books:    booksRepo,
		Catalog:  NewCatalogClient(cfg.Catalog),
		Version:  version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg)
}
