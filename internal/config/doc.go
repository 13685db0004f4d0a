// Package config manages application configuration for the Mandalateu API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    // report every missing or invalid setting at once
//	}
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and refresh token settings
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT           - HTTP server port (default: 8080)
//	SERVER_ENV            - development, production, or test
//	DB_HOST / DB_PORT     - SurrealDB address
//	DB_NAMESPACE / DB_DATABASE
//	JWT_PRIVATE_KEY_PATH  - RSA private key for signing
//	JWT_EXPIRATION_MINS   - Access token lifetime in minutes
//	JWT_REFRESH_DURATION  - Refresh token lifetime (Go duration)
//
// Sensible defaults are provided for development.
package config
