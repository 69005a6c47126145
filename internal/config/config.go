package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// CatalogProvider selects which external book catalog the search endpoint
// proxies to.
type CatalogProvider string

const (
	CatalogProviderOpenLibrary CatalogProvider = "openlibrary" // no API key required (default)
	CatalogProviderGoogle      CatalogProvider = "google"      // requires GOOGLE_BOOKS_API_KEY
)

type (
	Config struct {
		HTTP
		Database
		Catalog
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Catalog struct {
		Provider     CatalogProvider
		GoogleAPIKey string
		MaxResults   int
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	// In local development a .env file can stand in for real env vars.
	if os.Getenv("ENV") == "dev" {
		_ = godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("catalog_provider", string(CatalogProviderOpenLibrary))
	v.SetDefault("catalog_max_results", DefaultCatalogMaxResults)
	v.SetDefault("google_books_api_key", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Catalog: Catalog{
			Provider:     CatalogProvider(v.GetString("CATALOG_PROVIDER")),
			GoogleAPIKey: v.GetString("GOOGLE_BOOKS_API_KEY"),
			MaxResults:   v.GetInt("CATALOG_MAX_RESULTS"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
