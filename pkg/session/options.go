package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithStore sets a keyed session store.
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithCookieStore switches the Manager to the cookie-embedded variant.
// Exclusive with WithStore and WithTransport.
func WithCookieStore(store *CookieStore) Option {
	return func(m *Manager) {
		m.cookieStore = store
	}
}

// WithTransport sets a custom identifier transport for keyed stores.
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithConfig sets custom configuration.
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithCookieName sets the identifier cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithTTL sets the sliding expiration window. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.config.TTL = ttl
	}
}

// WithCleanupInterval sets the sweep interval of the default memory store.
func WithCleanupInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.config.CleanupInterval = interval
	}
}

// WithCookieManager sets the cookie manager for the default cookie transport.
func WithCookieManager(cookies *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieManager = cookies
		m.cookieOptions = opts
	}
}

// WithIDGenerator overrides how session identifiers are minted. The generator
// must return values with enough entropy to be unguessable.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.genID = fn
	}
}

// WithLogger sets the logger for lifecycle events. Defaults to a discard
// logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}
