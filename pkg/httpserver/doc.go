// Package httpserver runs an http.Server with graceful shutdown, functional
// options and lifecycle hooks, so a service stops cleanly on SIGTERM without
// every main.go re-deriving the drain dance.
//
// Run blocks until the context is cancelled, an interrupt or TERM signal
// arrives, or the listener fails; it then drains in-flight requests within
// the shutdown timeout. Construction goes through New with options, or
// NewFromConfig when the values come from the environment. Start and stop
// hooks bracket the lifecycle and receive the configured slog.Logger.
//
// HealthCheckHandler serves probes from one endpoint: 200 "ALIVE" when no
// readiness checks are registered, otherwise "READY" or "NOT_READY" from
// running them.
//
// # Usage
//
//	srv := httpserver.New(
//	    httpserver.WithAddr(":8080"),
//	    httpserver.WithShutdownTimeout(10*time.Second),
//	    httpserver.WithLogger(log),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Run wraps listen failures with ErrStart and Shutdown wraps drain failures
// with ErrShutdown; match them with errors.Is.
package httpserver
