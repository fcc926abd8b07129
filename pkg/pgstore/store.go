package pgstore

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/sessionkit/pkg/pg"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsTable keeps the schema history of this store separate from the
// host application's own goose table.
const migrationsTable = "sessions_goose_db_version"

// defaultRetention is how long expired payloads stay readable before a sweep
// may remove them.
const defaultRetention = time.Hour

// Store implements session.Store on a PostgreSQL table, for deployments
// where sessions must survive restarts and be shared across instances.
// Payloads are kept in their portable JSON form; the expires_at column only
// drives sweeping and stats.
type Store struct {
	pool      *pgxpool.Pool
	retention time.Duration
	ticker    *time.Ticker
	done      chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithRetention overrides the grace period expired payloads survive before
// the sweeper removes them.
func WithRetention(retention time.Duration) Option {
	return func(s *Store) {
		s.retention = retention
	}
}

// New applies the embedded schema migrations and returns a store backed by
// the given pool. The pool remains owned by the caller; Close stops the
// sweeper but leaves the pool open. A positive cleanupInterval starts a
// background sweeper; zero disables it.
func New(ctx context.Context, pool *pgxpool.Pool, cleanupInterval time.Duration, opts ...Option) (*Store, error) {
	store := &Store{
		pool:      pool,
		retention: defaultRetention,
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(store)
	}

	err := pg.Migrate(ctx, pool, migrationsFS,
		pg.WithMigrationsDir("migrations"),
		pg.WithMigrationsTable(migrationsTable),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to apply session migrations: %w", err)
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store, nil
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

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (sid, data, expires_at) VALUES ($1, $2, $3)`,
		sid, payload, expiresAt(data))
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return session.ErrSessionExists
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// Get retrieves a payload as last stored, expired or not. A row whose
// payload no longer parses reads as absent.
func (s *Store) Get(ctx context.Context, sid string) (session.Data, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM sessions WHERE sid = $1`, sid).Scan(&raw)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return session.Data{}, session.ErrSessionNotFound
		}
		return session.Data{}, fmt.Errorf("failed to get session: %w", err)
	}

	var data session.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return session.Data{}, session.ErrSessionNotFound
	}

	return data, nil
}

// Update replaces the payload wholesale, inserting if absent.
func (s *Store) Update(ctx context.Context, sid string, data session.Data) error {
	if sid == "" {
		return session.ErrInvalidSID
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (sid, data, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (sid) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`,
		sid, payload, expiresAt(data))
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// Delete removes a payload. Absent identifiers are ignored.
func (s *Store) Delete(ctx context.Context, sid string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE sid = $1`, sid); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes payloads that expired longer than the retention
// period ago. Rows with a NULL expires_at never expire.
func (s *Store) DeleteExpired(ctx context.Context) error {
	cutoff := time.Now().Add(-s.retention)
	_, err := s.pool.Exec(ctx,
		`DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

// Stats counts stored payloads and how many of them are past their deadline.
func (s *Store) Stats(ctx context.Context) (session.Stats, error) {
	var stats session.Stats
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE expires_at IS NOT NULL AND expires_at < now())
		FROM sessions`).Scan(&stats.Total, &stats.Expired)
	if err != nil {
		return session.Stats{}, fmt.Errorf("failed to count sessions: %w", err)
	}
	return stats, nil
}

// Close stops the background sweeper. The pool is left open for its owner.
func (s *Store) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
		select {
		case <-s.done:
		default:
			close(s.done)
		}
	}
	return nil
}

func (s *Store) cleanupLoop() {
	for {
		select {
		case <-s.ticker.C:
			_ = s.DeleteExpired(context.Background())
		case <-s.done:
			return
		}
	}
}

// expiresAt maps the zero time to NULL so never-expiring payloads are
// representable in the column.
func expiresAt(data session.Data) *time.Time {
	if data.ExpiresAt.IsZero() {
		return nil
	}
	t := data.ExpiresAt.UTC()
	return &t
}
