// Package config loads application configuration from environment
// variables, applies defaults, and validates everything on startup so a
// misconfigured deployment fails fast.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Import   ImportConfig
	Notify   NotifyConfig
	Rate     RateLimitConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// forwarding headers may be trusted
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// DatabaseConfig holds PostgreSQL pool settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns caps the pool size (default: 20)
	MaxConns int `env:"DB_MAX_CONNS" default:"20"`

	// MinConns keeps warm connections open (default: 4)
	MinConns int `env:"DB_MIN_CONNS" default:"4"`

	// MaxConnLifetime recycles connections (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// ImportConfig holds spreadsheet upload settings.
type ImportConfig struct {
	// MaxFileSize caps uploads in bytes (default: 20MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"20971520"`
}

// NotifyConfig holds WhatsApp notification settings. When Enabled is
// false the queue is never started and the rest may stay empty.
type NotifyConfig struct {
	// Enabled turns notification delivery on (default: false)
	Enabled bool `env:"NOTIFY_ENABLED" default:"false"`

	// APIKey authenticates against the messaging provider
	APIKey string `env:"NOTIFY_API_KEY"`

	// ChannelID is the provider's WhatsApp channel id
	ChannelID string `env:"NOTIFY_CHANNEL_ID"`

	// Namespace is the approved template namespace
	Namespace string `env:"NOTIFY_TEMPLATE_NAMESPACE"`

	// TemplateName is the approved template name
	TemplateName string `env:"NOTIFY_TEMPLATE_NAME"`

	// PrimaryNumber receives every notification
	PrimaryNumber string `env:"NOTIFY_PRIMARY_NUMBER"`

	// BoltNumber additionally receives Bolt-category notifications
	BoltNumber string `env:"NOTIFY_BOLT_NUMBER"`

	// DrainDelay is the pause between deliveries (default: 2s)
	DrainDelay time.Duration `env:"NOTIFY_DRAIN_DELAY" default:"2s"`
}

// RateLimitConfig holds per-IP throttling settings.
type RateLimitConfig struct {
	// RequestsPerWindow is the per-IP budget (default: 100)
	RequestsPerWindow int `env:"RATE_LIMIT_REQUESTS" default:"100"`

	// Window is the budget's refill period (default: 1m)
	Window time.Duration `env:"RATE_LIMIT_WINDOW" default:"1m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
