package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/secrets"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

const benchSecret = "benchmark-secret-key-that-is-long-enough"

func benchManager(b *testing.B) *session.Manager {
	cookieMgr, _ := cookie.New([]string{benchSecret})
	return session.New(
		session.WithCookieManager(cookieMgr),
		session.WithCleanupInterval(0),
	)
}

func BenchmarkMemoryStore_Create(b *testing.B) {
	store := session.NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Create(ctx, "sid"+strconv.Itoa(i), session.Data{})
	}
}

func BenchmarkMemoryStore_Get(b *testing.B) {
	store := session.NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	// Pre-populate store
	for i := 0; i < 1000; i++ {
		_ = store.Create(ctx, "sid"+strconv.Itoa(i), session.Data{Values: map[string]any{"key": "value"}})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Get(ctx, "sid"+strconv.Itoa(i%1000))
	}
}

func BenchmarkMemoryStore_Update(b *testing.B) {
	store := session.NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	_ = store.Create(ctx, "bench-sid", session.Data{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Update(ctx, "bench-sid", session.Data{Values: map[string]any{"counter": i}})
	}
}

func BenchmarkData_Codec(b *testing.B) {
	data := session.Data{
		Values:     map[string]any{"user_id": "u-1", "theme": "dark", "count": 42},
		Flash:      map[string]any{"notice": "saved"},
		AccessedAt: time.Now(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	raw, _ := json.Marshal(data)

	b.Run("Marshal", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = json.Marshal(data)
		}
	})

	b.Run("Unmarshal", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var d session.Data
			_ = json.Unmarshal(raw, &d)
		}
	})
}

func BenchmarkManager_Create(b *testing.B) {
	manager := benchManager(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		_, _ = manager.Create(ctx, w)
	}
}

func BenchmarkManager_Fetch(b *testing.B) {
	manager := benchManager(b)
	ctx := context.Background()

	// Create session
	w := httptest.NewRecorder()
	_, _ = manager.Create(ctx, w)

	// Prepare request with cookie
	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = manager.Fetch(ctx, httptest.NewRecorder(), req)
	}
}

func BenchmarkManager_Save(b *testing.B) {
	manager := benchManager(b)
	ctx := context.Background()

	w := httptest.NewRecorder()
	sess, _ := manager.Create(ctx, w)
	sess.Set("user_id", "u-1")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = manager.Save(ctx, httptest.NewRecorder(), sess)
	}
}

func BenchmarkCookieStore(b *testing.B) {
	cookieMgr, _ := cookie.New([]string{benchSecret})
	cipher, _ := secrets.NewCipher(benchSecret)
	store := session.NewCookieStore(cookieMgr, cipher)

	data := session.Data{
		Values:    map[string]any{"user_id": "u-1", "theme": "dark"},
		ExpiresAt: time.Now().Add(time.Hour),
	}

	b.Run("Persist", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			w := httptest.NewRecorder()
			_ = store.Persist(w, data)
		}
	})

	b.Run("Load", func(b *testing.B) {
		w := httptest.NewRecorder()
		_ = store.Persist(w, data)

		r := httptest.NewRequest("GET", "/", nil)
		for _, c := range w.Result().Cookies() {
			r.AddCookie(c)
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = store.Load(r)
		}
	})
}

func BenchmarkTransport_Header(b *testing.B) {
	trans := session.NewHeaderTransport("X-Session-Token")
	ttl := 1 * time.Hour

	b.Run("SetSID", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			w := httptest.NewRecorder()
			_ = trans.SetSID(w, "bench-sid", ttl)
		}
	})

	b.Run("GetSID", func(b *testing.B) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Session-Token", "Bearer bench-sid")

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = trans.GetSID(r)
		}
	})
}

func BenchmarkMiddleware(b *testing.B) {
	manager := benchManager(b)

	// Create session
	w := httptest.NewRecorder()
	_, _ = manager.Create(context.Background(), w)

	// Prepare request with session
	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}

	handler := manager.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := session.FromContext(r.Context()); ok {
			w.Header().Set("X-Session-ID", sess.ID())
		}
	}))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}
}
