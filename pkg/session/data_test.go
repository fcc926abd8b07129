package session_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestData_MarshalJSON(t *testing.T) {
	t.Run("flat object with reserved keys", func(t *testing.T) {
		data := session.Data{
			Values:     map[string]any{"user_id": "u-1", "theme": "dark"},
			Flash:      map[string]any{"notice": "saved"},
			AccessedAt: time.Now(),
			ExpiresAt:  time.Now().Add(time.Hour),
		}

		raw, err := json.Marshal(data)
		require.NoError(t, err)

		// User keys and reserved keys sit side by side in one object
		var obj map[string]any
		require.NoError(t, json.Unmarshal(raw, &obj))
		assert.Equal(t, "u-1", obj["user_id"])
		assert.Equal(t, "dark", obj["theme"])
		assert.Contains(t, obj, "_flash")
		assert.Contains(t, obj, "_accessed")
		assert.Contains(t, obj, "_expire")
		assert.Contains(t, obj, "_delete")
	})

	t.Run("reserved keys win over colliding user values", func(t *testing.T) {
		data := session.Data{
			Values:  map[string]any{"_delete": "user-placed", "_accessed": 42},
			Deleted: true,
		}

		raw, err := json.Marshal(data)
		require.NoError(t, err)

		var obj map[string]any
		require.NoError(t, json.Unmarshal(raw, &obj))
		assert.Equal(t, true, obj["_delete"])
		assert.NotEqual(t, float64(42), obj["_accessed"])
	})

	t.Run("zero expiry serializes as null", func(t *testing.T) {
		raw, err := json.Marshal(session.Data{})
		require.NoError(t, err)

		var obj map[string]any
		require.NoError(t, json.Unmarshal(raw, &obj))
		val, ok := obj["_expire"]
		assert.True(t, ok)
		assert.Nil(t, val)
	})

	t.Run("empty payload still carries reserved keys", func(t *testing.T) {
		raw, err := json.Marshal(session.Data{})
		require.NoError(t, err)

		var obj map[string]any
		require.NoError(t, json.Unmarshal(raw, &obj))
		assert.Len(t, obj, 4)
	})
}

func TestData_UnmarshalJSON(t *testing.T) {
	t.Run("routes reserved keys to fields", func(t *testing.T) {
		raw := []byte(`{
			"user_id": "u-1",
			"_flash": {"notice": "saved"},
			"_accessed": "2025-06-01T10:00:00Z",
			"_expire": "2025-06-01T11:00:00Z",
			"_delete": true
		}`)

		var data session.Data
		require.NoError(t, json.Unmarshal(raw, &data))

		assert.Equal(t, "u-1", data.Values["user_id"])
		assert.NotContains(t, data.Values, "_flash")
		assert.NotContains(t, data.Values, "_accessed")
		assert.Equal(t, "saved", data.Flash["notice"])
		assert.True(t, data.Deleted)
		assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC).Unix(), data.AccessedAt.Unix())
		assert.Equal(t, time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC).Unix(), data.ExpiresAt.Unix())
	})

	t.Run("null expiry means never expires", func(t *testing.T) {
		var data session.Data
		require.NoError(t, json.Unmarshal([]byte(`{"_expire": null}`), &data))

		assert.True(t, data.ExpiresAt.IsZero())
		assert.False(t, data.IsExpired())
	})

	t.Run("missing reserved keys tolerated", func(t *testing.T) {
		var data session.Data
		require.NoError(t, json.Unmarshal([]byte(`{"cart": "abc"}`), &data))

		assert.Equal(t, "abc", data.Values["cart"])
		assert.NotNil(t, data.Flash)
		assert.False(t, data.Deleted)
	})

	t.Run("maps are freshly allocated", func(t *testing.T) {
		var data session.Data
		require.NoError(t, json.Unmarshal([]byte(`{}`), &data))

		// Both maps must be writable even when the payload carried nothing
		data.Values["k"] = "v"
		data.Flash["f"] = "v"
	})

	t.Run("invalid json", func(t *testing.T) {
		var data session.Data
		assert.Error(t, json.Unmarshal([]byte(`not json`), &data))
	})
}

func TestData_RoundTrip(t *testing.T) {
	accessed := time.Now()
	expires := accessed.Add(2 * time.Hour)

	data := session.Data{
		Values:     map[string]any{"user_id": "u-1", "count": 3},
		Flash:      map[string]any{"notice": "saved"},
		AccessedAt: accessed,
		ExpiresAt:  expires,
	}

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	var got session.Data
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "u-1", got.Values["user_id"])
	assert.Equal(t, float64(3), got.Values["count"])
	assert.Equal(t, "saved", got.Flash["notice"])
	assert.True(t, got.AccessedAt.Equal(accessed))
	assert.True(t, got.ExpiresAt.Equal(expires))
	assert.False(t, got.Deleted)
}

func TestData_IsExpired(t *testing.T) {
	tests := []struct {
		name     string
		data     session.Data
		expected bool
	}{
		{
			name:     "zero expiry never expires",
			data:     session.Data{},
			expected: false,
		},
		{
			name:     "future expiry",
			data:     session.Data{ExpiresAt: time.Now().Add(time.Hour)},
			expected: false,
		},
		{
			name:     "past expiry",
			data:     session.Data{ExpiresAt: time.Now().Add(-time.Hour)},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.data.IsExpired())
		})
	}
}
