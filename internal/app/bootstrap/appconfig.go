// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS, body limits). AppConfig is everything specific to
// VenueHub: the MongoDB connection, session cookies, floor-plan file
// storage, and Google OAuth credentials.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: venuehub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Floor-plan file storage
	StorageLocalPath string // Local storage path (e.g., "./uploads/floorplans")
	StorageLocalURL  string // URL prefix for serving stored files (e.g., "/files/floorplans")

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for OAuth redirect URIs
	BaseURL string // e.g., "https://venuehub.example.com" or "http://localhost:3000"
}
