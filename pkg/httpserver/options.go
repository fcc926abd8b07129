package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Server at construction time. Options carrying an
// unusable value (empty address, non-positive timeout, nil hook) are ignored
// so the defaults stay in place.
type Option func(*config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.addr = addr
		}
	}
}

// WithReadTimeout bounds reading the entire request, including the body.
func WithReadTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.readTimeout = d
		}
	}
}

// WithWriteTimeout bounds writes of the response.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.writeTimeout = d
		}
	}
}

// WithIdleTimeout bounds the wait for the next request on a kept-alive
// connection.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.idleTimeout = d
		}
	}
}

// WithShutdownTimeout bounds how long Shutdown waits for in-flight requests
// to drain.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// WithServer runs the provided http.Server instead of a fresh one. Its
// Handler is replaced at Run; timeout fields already set on it win over
// option values.
func WithServer(srv *http.Server) Option {
	return func(c *config) {
		if srv != nil {
			c.server = srv
		}
	}
}

// WithLogger supplies the logger handed to start and stop hooks. Without it
// hooks receive a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithStartHook registers a callback that runs just before the server begins
// listening. Hooks run in registration order.
func WithStartHook(h func(*slog.Logger)) Option {
	return func(c *config) {
		if h != nil {
			c.startHooks = append(c.startHooks, h)
		}
	}
}

// WithStopHook registers a callback that runs after graceful shutdown
// completes.
func WithStopHook(h func(*slog.Logger)) Option {
	return func(c *config) {
		if h != nil {
			c.stopHooks = append(c.stopHooks, h)
		}
	}
}
