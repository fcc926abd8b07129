// Package logger builds configured *slog.Logger instances with functional
// options, environment presets and per-record context extraction.
//
// New assembles a text or JSON handler, applies static attributes and wraps
// the result so that registered ContextExtractor callbacks run on every
// record. An extractor reads the call's context and contributes one
// attribute, which is how request-scoped values such as the session
// identifier reach the log output without every call site naming them.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "webapp"),
//	    logger.WithContextExtractors(session.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "session rotated", logger.SID(sess.ID()))
//
// WithDevelopment, WithStaging and WithProduction preset the level and
// format per environment; WithEnvironment picks among them from a free-form
// name like "prod". The remaining options (WithLevel, WithFormat,
// WithOutput, WithAttr, WithContextValue, WithHandlerOptions) tune the
// pieces individually.
//
// # Attributes
//
// The attr helpers keep attribute keys consistent across the codebase:
// Error and Errors for failures, SID for session identifiers, UserID, Store
// for the backend name, Component, Duration and Group. Helpers return an
// empty Attr for nil or empty input, so they can be passed unconditionally.
package logger
