package session

import (
	"context"
	"log/slog"
	"net/http"
)

// LoadAndSave fetches the session into the request context and saves it after
// the handler runs. The save happens before the first byte of the response
// body, since it may set cookies. Requests without a session pass through
// with no session in context; handlers create one explicitly when needed.
func (m *Manager) LoadAndSave(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Fetch(r.Context(), w, r)
		if err != nil {
			m.log.ErrorContext(r.Context(), "session fetch failed", slog.Any("error", err))
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		m.serveAndSave(w, r, sess, next)
	})
}

// EnsureSession behaves like LoadAndSave but creates a session when the
// request carries none, so handlers downstream always find one in context.
func (m *Manager) EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Fetch(r.Context(), w, r)
		if err == nil && sess == nil {
			sess, err = m.Create(r.Context(), w)
		}
		if err != nil {
			m.log.ErrorContext(r.Context(), "session fetch failed", slog.Any("error", err))
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		m.serveAndSave(w, r, sess, next)
	})
}

func (m *Manager) serveAndSave(w http.ResponseWriter, r *http.Request, sess *Session, next http.Handler) {
	ctx := r.Context()
	if sess != nil {
		ctx = WithSession(ctx, sess)
	}

	sw := &saveWriter{
		ResponseWriter: w,
		manager:        m,
		ctx:            ctx,
		session:        sess,
	}

	next.ServeHTTP(sw, r.WithContext(ctx))

	// Handlers that never write still get their session saved
	sw.save()
}

// saveWriter defers the session save until the response is about to be
// committed, so mutations made anywhere in the handler reach the store and
// cookie writes still beat the first body byte.
type saveWriter struct {
	http.ResponseWriter
	manager *Manager
	ctx     context.Context
	session *Session
	saved   bool
}

func (sw *saveWriter) save() {
	if sw.saved {
		return
	}
	sw.saved = true

	if err := sw.manager.Save(sw.ctx, sw.ResponseWriter, sw.session); err != nil {
		sw.manager.log.ErrorContext(sw.ctx, "session save failed", slog.Any("error", err))
	}
}

func (sw *saveWriter) WriteHeader(statusCode int) {
	sw.save()
	sw.ResponseWriter.WriteHeader(statusCode)
}

func (sw *saveWriter) Write(b []byte) (int, error) {
	sw.save()
	return sw.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying writer for http.ResponseController.
func (sw *saveWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
