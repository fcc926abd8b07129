package pg

import "context"

// logger is the slice of slog that migration logging needs. Declaring it
// here keeps the package free of a hard dependency on any logging setup.
type logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}
