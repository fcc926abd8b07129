package session

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a context extractor for structured loggers. Records
// emitted while handling a request carry the session identifier as a "sid"
// attribute whenever a session with an identifier sits in the context.
// Cookie-store sessions have no identifier and contribute nothing.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if sess, ok := FromContext(ctx); ok && sess.ID() != "" {
			return slog.String("sid", sess.ID()), true
		}
		return slog.Attr{}, false
	}
}
