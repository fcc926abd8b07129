package session

import (
	"context"
	"sync"
	"time"
)

// defaultRetention is how long expired payloads stay readable before a sweep
// may remove them.
const defaultRetention = time.Hour

// MemoryStore implements Store with a mutex-guarded map. State lives for the
// process lifetime; concurrent updates of the same identifier resolve as
// last writer wins.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]Data
	retention time.Duration
	ticker    *time.Ticker
	done      chan struct{}
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryRetention overrides the grace period expired payloads survive
// before the sweeper removes them.
func WithMemoryRetention(retention time.Duration) MemoryOption {
	return func(m *MemoryStore) {
		m.retention = retention
	}
}

// NewMemoryStore creates an in-memory session store. A positive
// cleanupInterval starts a background sweeper; zero disables it.
func NewMemoryStore(cleanupInterval time.Duration, opts ...MemoryOption) *MemoryStore {
	store := &MemoryStore{
		sessions:  make(map[string]Data),
		retention: defaultRetention,
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(store)
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Create inserts a new payload, rejecting identifier collisions.
func (m *MemoryStore) Create(ctx context.Context, sid string, data Data) error {
	if sid == "" {
		return ErrInvalidSID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[sid]; exists {
		return ErrSessionExists
	}

	m.sessions[sid] = data.clone()
	return nil
}

// Get retrieves a payload as last stored, expired or not.
func (m *MemoryStore) Get(ctx context.Context, sid string) (Data, error) {
	m.mu.RLock()
	data, exists := m.sessions[sid]
	m.mu.RUnlock()

	if !exists {
		return Data{}, ErrSessionNotFound
	}

	return data.clone(), nil
}

// Update replaces the payload wholesale, inserting if absent.
func (m *MemoryStore) Update(ctx context.Context, sid string, data Data) error {
	if sid == "" {
		return ErrInvalidSID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[sid] = data.clone()
	return nil
}

// Delete removes a payload. Absent identifiers are ignored.
func (m *MemoryStore) Delete(ctx context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sid)
	return nil
}

// DeleteExpired removes payloads whose deadline passed longer than the
// retention grace ago. Recently expired entries survive so the Manager can
// still observe them and issue replacements.
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.retention)
	for sid, data := range m.sessions {
		if !data.ExpiresAt.IsZero() && data.ExpiresAt.Before(cutoff) {
			delete(m.sessions, sid)
		}
	}

	return nil
}

// Len returns the number of stored payloads, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Stats counts stored payloads and how many of them are past their deadline.
func (m *MemoryStore) Stats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{Total: len(m.sessions)}
	now := time.Now()
	for _, data := range m.sessions {
		if !data.ExpiresAt.IsZero() && now.After(data.ExpiresAt) {
			stats.Expired++
		}
	}

	return stats, nil
}

// Close stops the background sweeper. Safe to call more than once.
func (m *MemoryStore) Close() error {
	if m.ticker != nil {
		m.ticker.Stop()
		select {
		case <-m.done:
		default:
			close(m.done)
		}
	}
	return nil
}

// cleanupLoop runs periodic sweeps of long-expired payloads.
func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}
