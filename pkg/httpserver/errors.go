package httpserver

import "errors"

var (
	// ErrStart reports that the server never reached a listening state, or
	// that Run was called on a server already running.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown reports that graceful shutdown did not complete cleanly.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)
