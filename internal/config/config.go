// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// DBDriver selects the key-value backend: "memory", "postgres" or "mysql".
	DBDriver string
	// DBConnectionString is the connection string for the database.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// AdminPassword is the single shared dashboard password, either in plain text or
	// as an Argon2id hash ("$argon2id$..."). It is never rotated.
	AdminPassword string
	// SessionTTL is how long an issued session token stays valid.
	SessionTTL time.Duration

	// RateLimitLoginEnabled toggles per-IP rate limiting on the login endpoint.
	RateLimitLoginEnabled bool
	// RateLimitLoginRequestsPerSec is the number of login requests allowed per second per IP.
	RateLimitLoginRequestsPerSec float64
	// RateLimitLoginBurst is the burst size for login rate limiting.
	RateLimitLoginBurst int

	// CORSAllowOrigins is a comma-separated list of allowed origins, "*" for any.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// SecretsKeeperURL is a gocloud.dev/secrets URL used to encrypt Shopify credentials
	// at rest. Empty stores them in plain text.
	SecretsKeeperURL string

	// ShopifyAPIVersion is the default Admin API version for new settings.
	ShopifyAPIVersion string
	// ShopifyTimeout bounds calls to the Shopify Admin API.
	ShopifyTimeout time.Duration

	// WidgetSyncURL is the base URL of the widget-hosting worker.
	WidgetSyncURL string
	// WidgetSyncTimeout bounds a single push to the widget worker.
	WidgetSyncTimeout time.Duration

	// DashboardURL is the backend base URL used by the CLI client commands.
	DashboardURL string
	// SessionDBPath is the sqlite file holding the CLI session.
	SessionDBPath string
	// AutoSaveDelay is the debounce delay of the watch-config command.
	AutoSaveDelay time.Duration
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Database configuration
		DBDriver:             env.GetString("DB_DRIVER", "memory"),
		DBConnectionString:   env.GetString("DB_CONNECTION_STRING", ""),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Auth
		AdminPassword: env.GetString("ADMIN_PASSWORD", "admin123"),
		SessionTTL:    env.GetDuration("SESSION_TTL_HOURS", 168, time.Hour),

		// Login rate limiting (IP-based, unauthenticated)
		RateLimitLoginEnabled:        env.GetBool("RATE_LIMIT_LOGIN_ENABLED", true),
		RateLimitLoginRequestsPerSec: env.GetFloat64("RATE_LIMIT_LOGIN_REQUESTS_PER_SEC", 5.0),
		RateLimitLoginBurst:          env.GetInt("RATE_LIMIT_LOGIN_BURST", 10),

		// CORS
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", "*"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "deliverydash"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),

		// Shopify
		SecretsKeeperURL:  env.GetString("SECRETS_KEEPER_URL", ""),
		ShopifyAPIVersion: env.GetString("SHOPIFY_API_VERSION", "2024-10"),
		ShopifyTimeout:    env.GetDuration("SHOPIFY_TIMEOUT_SECONDS", 10, time.Second),

		// Widget sync
		WidgetSyncURL:     env.GetString("WIDGET_SYNC_URL", ""),
		WidgetSyncTimeout: env.GetDuration("WIDGET_SYNC_TIMEOUT_SECONDS", 10, time.Second),

		// CLI client
		DashboardURL:  env.GetString("DASHBOARD_URL", "http://localhost:8080"),
		SessionDBPath: env.GetString("SESSION_DB_PATH", defaultSessionDBPath()),
		AutoSaveDelay: env.GetDuration("AUTOSAVE_DELAY_MS", 2000, time.Millisecond),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

// defaultSessionDBPath places the CLI session next to the user's config files.
func defaultSessionDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "deliverydash-session.db"
	}
	return filepath.Join(dir, "deliverydash", "session.db")
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
