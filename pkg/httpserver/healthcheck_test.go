package httpserver_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	httpserver "github.com/dmitrymomot/sessionkit/pkg/httpserver"
)

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	probe := func(h http.HandlerFunc) (int, string) {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		body, _ := io.ReadAll(w.Result().Body)
		return w.Code, string(body)
	}

	t.Run("liveness without checks", func(t *testing.T) {
		code, body := probe(httpserver.HealthCheckHandler(context.Background(), log))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ALIVE", body)
	})

	t.Run("ready when all checks pass", func(t *testing.T) {
		ok := func(context.Context) error { return nil }
		code, body := probe(httpserver.HealthCheckHandler(context.Background(), log, ok, ok))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "READY", body)
	})

	t.Run("not ready stops at the first failing check", func(t *testing.T) {
		var calls int
		ok := func(context.Context) error { calls++; return nil }
		fail := func(context.Context) error { calls++; return errors.New("connection refused") }

		code, body := probe(httpserver.HealthCheckHandler(context.Background(), log, ok, fail, ok))
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "NOT_READY", body)
		assert.Equal(t, 2, calls)
	})
}
