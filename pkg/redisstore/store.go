package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// defaultKeyPrefix namespaces session keys so the store can share a database
// with other data.
const defaultKeyPrefix = "session:"

// defaultRetention is how long a payload outlives its expiry deadline before
// Redis drops the key.
const defaultRetention = time.Hour

// Store implements session.Store on a Redis database. Payloads are kept as
// JSON strings under prefixed keys; Redis key expiration replaces a cleanup
// sweeper, so the store carries no background goroutine.
type Store struct {
	client    redis.UniversalClient
	prefix    string
	retention time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix overrides the key namespace.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithRetention overrides the grace period expired payloads stay readable
// before their keys lapse.
func WithRetention(retention time.Duration) Option {
	return func(s *Store) {
		s.retention = retention
	}
}

// New creates a Redis-backed session store. The client is owned by the
// caller and is not closed by the store.
func New(client redis.UniversalClient, opts ...Option) *Store {
	store := &Store{
		client:    client,
		prefix:    defaultKeyPrefix,
		retention: defaultRetention,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Create inserts a new payload, rejecting identifier collisions.
func (s *Store) Create(ctx context.Context, sid string, data session.Data) error {
	if sid == "" {
		return session.ErrInvalidSID
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, s.key(sid), payload, s.expiration(data)).Result()
	if err != nil {
		return err
	}
	if !ok {
		return session.ErrSessionExists
	}

	return nil
}

// Get retrieves a payload as last stored, expired or not. A key whose value
// no longer parses reads as absent.
func (s *Store) Get(ctx context.Context, sid string) (session.Data, error) {
	raw, err := s.client.Get(ctx, s.key(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.Data{}, session.ErrSessionNotFound
	}
	if err != nil {
		return session.Data{}, err
	}

	var data session.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return session.Data{}, session.ErrSessionNotFound
	}

	return data, nil
}

// Update replaces the payload wholesale, inserting if absent. The key
// expiration is re-derived from the payload so renewals slide it forward.
func (s *Store) Update(ctx context.Context, sid string, data session.Data) error {
	if sid == "" {
		return session.ErrInvalidSID
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.key(sid), payload, s.expiration(data)).Err()
}

// Delete removes a payload. Absent identifiers are ignored.
func (s *Store) Delete(ctx context.Context, sid string) error {
	return s.client.Del(ctx, s.key(sid)).Err()
}

func (s *Store) key(sid string) string {
	return s.prefix + sid
}

// expiration derives the key lifetime from the payload deadline plus the
// retention grace. Never-expiring payloads get a persistent key; payloads
// already past their grace get a short fuse instead of living forever.
func (s *Store) expiration(data session.Data) time.Duration {
	if data.ExpiresAt.IsZero() {
		return 0
	}

	ttl := time.Until(data.ExpiresAt.Add(s.retention))
	if ttl <= 0 {
		ttl = time.Second
	}

	return ttl
}
