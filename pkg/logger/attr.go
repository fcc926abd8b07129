package logger

import (
	"log/slog"
	"strconv"
)

// Group nests the given attributes under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records a single error under "error". A nil error yields an empty
// Attr, which slog drops, so callers never need the nil check themselves.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors", indexed by position.
// All-nil input yields an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// SID records a session identifier under "sid". Empty identifiers, as
// produced by cookie-backed sessions, yield an empty Attr.
func SID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("sid", id)
}

// UserID records the authenticated user under "user_id". A nil id yields an
// empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// Store records the session backend name under "store".
func Store(name string) slog.Attr {
	return slog.String("store", name)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
