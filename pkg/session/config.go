package session

import "time"

// Config holds session manager configuration.
type Config struct {
	// CookieName is the name of the identifier cookie used by the default
	// cookie transport (default: "session")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session"`

	// TTL is the sliding expiration window: every fetch pushes the expiry
	// this far into the future. Zero means sessions never expire.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// CleanupInterval drives the sweeper of the default memory store
	// (0 to disable)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// SecureCookies enables the Secure flag on session cookies (recommended for production)
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:      "session",
		TTL:             24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
		SecureCookies:   false,
	}
}

// NewFromConfig creates a new Manager from the provided Config.
// A store variant must still be supplied via options.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	configOpts := []Option{
		WithConfig(cfg),
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
