package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/metrics"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// failingReporter simulates a store whose backend is unreachable.
type failingReporter struct{}

func (failingReporter) Stats(ctx context.Context) (session.Stats, error) {
	return session.Stats{}, errors.New("backend down")
}

func TestCollector_Gauges(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Create(ctx, "live1", session.Data{ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Create(ctx, "live2", session.Data{ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Create(ctx, "expired", session.Data{ExpiresAt: time.Now().Add(-time.Hour)}))

	collector := metrics.NewCollector(store)

	expected := `
# HELP sessions_expired Number of stored payloads past their deadline but not yet swept.
# TYPE sessions_expired gauge
sessions_expired 1
# HELP sessions_stored Number of session payloads currently stored, expired ones included.
# TYPE sessions_stored gauge
sessions_stored 3
`
	assert.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected)))
}

func TestCollector_TracksStore(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()

	ctx := context.Background()
	collector := metrics.NewCollector(store)

	stored := func(n int) *strings.Reader {
		return strings.NewReader(fmt.Sprintf(`
# HELP sessions_stored Number of session payloads currently stored, expired ones included.
# TYPE sessions_stored gauge
sessions_stored %d
`, n))
	}

	assert.NoError(t, testutil.CollectAndCompare(collector, stored(0), "sessions_stored"))

	require.NoError(t, store.Create(ctx, "sid1", session.Data{ExpiresAt: time.Now().Add(time.Hour)}))
	assert.NoError(t, testutil.CollectAndCompare(collector, stored(1), "sessions_stored"))

	require.NoError(t, store.Delete(ctx, "sid1"))
	assert.NoError(t, testutil.CollectAndCompare(collector, stored(0), "sessions_stored"))
}

func TestCollector_Namespace(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()

	collector := metrics.NewCollector(store, metrics.WithNamespace("app"))

	expected := `
# HELP app_sessions_expired Number of stored payloads past their deadline but not yet swept.
# TYPE app_sessions_expired gauge
app_sessions_expired 0
# HELP app_sessions_stored Number of session payloads currently stored, expired ones included.
# TYPE app_sessions_stored gauge
app_sessions_stored 0
`
	assert.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected)))
}

func TestCollector_FailingStore(t *testing.T) {
	registry := prometheus.NewPedanticRegistry()
	registry.MustRegister(metrics.NewCollector(failingReporter{}))

	_, err := registry.Gather()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
}

func TestCollector_Describe(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()

	ch := make(chan *prometheus.Desc, 4)
	metrics.NewCollector(store).Describe(ch)
	close(ch)

	var names []string
	for desc := range ch {
		names = append(names, desc.String())
	}
	require.Len(t, names, 2)
	assert.Contains(t, names[0], "sessions_stored")
	assert.Contains(t, names[1], "sessions_expired")
}
