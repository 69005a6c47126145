package config

// Default paths and limits
const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./lendy.db"

	// DefaultCatalogMaxResults caps how many results the catalog proxy requests upstream
	DefaultCatalogMaxResults = 12
)
