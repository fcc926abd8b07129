package session_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestMemoryStore_Create(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()

	ctx := context.Background()

	t.Run("successful create", func(t *testing.T) {
		data := session.Data{Values: map[string]any{"key": "value"}}
		err := store.Create(ctx, "sid1", data)
		assert.NoError(t, err)

		// Verify it was stored
		retrieved, err := store.Get(ctx, "sid1")
		assert.NoError(t, err)
		assert.Equal(t, "value", retrieved.Values["key"])
	})

	t.Run("empty identifier", func(t *testing.T) {
		err := store.Create(ctx, "", session.Data{})
		assert.ErrorIs(t, err, session.ErrInvalidSID)
	})

	t.Run("identifier collision", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, "sid2", session.Data{}))

		err := store.Create(ctx, "sid2", session.Data{})
		assert.ErrorIs(t, err, session.ErrSessionExists)
	})

	t.Run("data isolation", func(t *testing.T) {
		values := map[string]any{"key": "value"}
		err := store.Create(ctx, "sid3", session.Data{Values: values})
		require.NoError(t, err)

		// Mutating the original map must not reach the store
		values["key"] = "modified"

		retrieved, err := store.Get(ctx, "sid3")
		require.NoError(t, err)
		assert.Equal(t, "value", retrieved.Values["key"])
	})
}

func TestMemoryStore_Get(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()

	ctx := context.Background()

	t.Run("existing session", func(t *testing.T) {
		data := session.Data{
			Values:    map[string]any{"key": "value"},
			ExpiresAt: time.Now().Add(time.Hour),
		}
		require.NoError(t, store.Create(ctx, "sid1", data))

		retrieved, err := store.Get(ctx, "sid1")
		assert.NoError(t, err)
		assert.Equal(t, "value", retrieved.Values["key"])
	})

	t.Run("non-existent session", func(t *testing.T) {
		_, err := store.Get(ctx, "nonexistent")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("expired payload is still returned", func(t *testing.T) {
		// Validity is the Manager's call; the store hands back what it has
		data := session.Data{ExpiresAt: time.Now().Add(-time.Hour)}
		require.NoError(t, store.Create(ctx, "expired", data))

		retrieved, err := store.Get(ctx, "expired")
		assert.NoError(t, err)
		assert.True(t, retrieved.IsExpired())
	})

	t.Run("returned payload owns its maps", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, "sid2", session.Data{Values: map[string]any{"key": "value"}}))

		first, err := store.Get(ctx, "sid2")
		require.NoError(t, err)
		first.Values["key"] = "modified"

		second, err := store.Get(ctx, "sid2")
		require.NoError(t, err)
		assert.Equal(t, "value", second.Values["key"])
	})
}

func TestMemoryStore_Update(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()

	ctx := context.Background()

	t.Run("replaces existing payload", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, "sid1", session.Data{Values: map[string]any{"key": "value1"}}))

		err := store.Update(ctx, "sid1", session.Data{Values: map[string]any{"key": "value2"}})
		assert.NoError(t, err)

		retrieved, err := store.Get(ctx, "sid1")
		require.NoError(t, err)
		assert.Equal(t, "value2", retrieved.Values["key"])
	})

	t.Run("inserts when absent", func(t *testing.T) {
		err := store.Update(ctx, "fresh", session.Data{Values: map[string]any{"key": "value"}})
		assert.NoError(t, err)

		retrieved, err := store.Get(ctx, "fresh")
		require.NoError(t, err)
		assert.Equal(t, "value", retrieved.Values["key"])
	})

	t.Run("empty identifier", func(t *testing.T) {
		err := store.Update(ctx, "", session.Data{})
		assert.ErrorIs(t, err, session.ErrInvalidSID)
	})
}

func TestMemoryStore_Delete(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()

	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, "sid1", session.Data{}))

		err := store.Delete(ctx, "sid1")
		assert.NoError(t, err)

		_, err = store.Get(ctx, "sid1")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("delete non-existent", func(t *testing.T) {
		// Should not error
		err := store.Delete(ctx, "nonexistent")
		assert.NoError(t, err)
	})
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	store := session.NewMemoryStore(0, session.WithMemoryRetention(time.Hour))
	defer store.Close()

	ctx := context.Background()

	// Valid, never-expiring, freshly expired and long-expired payloads
	require.NoError(t, store.Create(ctx, "valid", session.Data{ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Create(ctx, "eternal", session.Data{}))
	require.NoError(t, store.Create(ctx, "grace", session.Data{ExpiresAt: time.Now().Add(-30 * time.Minute)}))
	require.NoError(t, store.Create(ctx, "stale", session.Data{ExpiresAt: time.Now().Add(-2 * time.Hour)}))

	require.NoError(t, store.DeleteExpired(ctx))

	// Only the payload expired beyond the retention grace is gone
	_, err := store.Get(ctx, "valid")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "eternal")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "grace")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "stale")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestMemoryStore_Stats(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()

	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "live1", session.Data{ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Create(ctx, "live2", session.Data{ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Create(ctx, "eternal", session.Data{}))
	require.NoError(t, store.Create(ctx, "expired", session.Data{ExpiresAt: time.Now().Add(-time.Hour)}))

	assert.Equal(t, 4, store.Len())

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Expired)
}

func TestMemoryStore_Cleanup(t *testing.T) {
	// Zero retention makes the sweeper remove payloads the moment they expire
	store := session.NewMemoryStore(50*time.Millisecond, session.WithMemoryRetention(0))
	defer store.Close()

	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "expired", session.Data{ExpiresAt: time.Now().Add(-time.Hour)}))
	require.NoError(t, store.Create(ctx, "valid", session.Data{ExpiresAt: time.Now().Add(time.Hour)}))

	// Wait for a sweep
	time.Sleep(100 * time.Millisecond)

	_, err := store.Get(ctx, "expired")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	_, err = store.Get(ctx, "valid")
	assert.NoError(t, err)
}

func TestMemoryStore_Close(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)

	assert.NoError(t, store.Close())
	// Closing twice is safe
	assert.NoError(t, store.Close())
}

func TestMemoryStore_Concurrency(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()

	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "shared", session.Data{Values: map[string]any{"counter": 0}}))

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(n int) {
			sid := "worker-" + strconv.Itoa(n)
			for j := 0; j < 100; j++ {
				_ = store.Create(ctx, sid, session.Data{})
				_, _ = store.Get(ctx, "shared")
				_ = store.Update(ctx, "shared", session.Data{Values: map[string]any{"counter": j}})
				_ = store.Delete(ctx, sid)
			}
			done <- true
		}(i)
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}

	final, err := store.Get(ctx, "shared")
	assert.NoError(t, err)
	assert.Contains(t, final.Values, "counter")
}
