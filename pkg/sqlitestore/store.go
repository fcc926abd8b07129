package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// defaultRetention is how long expired payloads stay readable before a sweep
// may remove them.
const defaultRetention = time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	sid TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions (expires_at);
`

// Store implements session.Store on a SQLite database file, for single-node
// deployments that want sessions to survive restarts without running a
// separate datastore. Payloads are kept in their portable JSON form; the
// expires_at column only drives sweeping and stats.
type Store struct {
	db        *sqlx.DB
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

// New creates a SQLite-backed session store at the given file path, creating
// the schema if needed. A positive cleanupInterval starts a background
// sweeper; zero disables it.
func New(filePath string, cleanupInterval time.Duration, opts ...Option) (*Store, error) {
	db, err := sqlx.Connect("sqlite", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite session store: %w", err)
	}

	// WAL mode keeps readers unblocked while the sweeper writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode on session store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create session schema: %w", err)
	}

	store := &Store{
		db:        db,
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

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (sid, data, expires_at) VALUES (?, ?, ?)`,
		sid, payload, expiresAtUnix(data))
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if affected == 0 {
		return session.ErrSessionExists
	}

	return nil
}

// Get retrieves a payload as last stored, expired or not. A row whose
// payload no longer parses reads as absent.
func (s *Store) Get(ctx context.Context, sid string) (session.Data, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw, `SELECT data FROM sessions WHERE sid = ?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Data{}, session.ErrSessionNotFound
	}
	if err != nil {
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

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (sid, data, expires_at) VALUES (?, ?, ?)`,
		sid, payload, expiresAtUnix(data))
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// Delete removes a payload. Absent identifiers are ignored.
func (s *Store) Delete(ctx context.Context, sid string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE sid = ?`, sid); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes payloads whose deadline passed longer than the
// retention grace ago. Rows with expires_at = 0 never expire.
func (s *Store) DeleteExpired(ctx context.Context) error {
	cutoff := time.Now().Add(-s.retention).Unix()
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at > 0 AND expires_at < ?`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

// Stats counts stored payloads and how many of them are past their deadline.
func (s *Store) Stats(ctx context.Context) (session.Stats, error) {
	var row struct {
		Total   int `db:"total"`
		Expired int `db:"expired"`
	}

	err := s.db.GetContext(ctx, &row, `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN expires_at > 0 AND expires_at < ? THEN 1 ELSE 0 END), 0) AS expired
		FROM sessions`,
		time.Now().Unix())
	if err != nil {
		return session.Stats{}, fmt.Errorf("failed to count sessions: %w", err)
	}

	return session.Stats{Total: row.Total, Expired: row.Expired}, nil
}

// Close stops the background sweeper and closes the database.
func (s *Store) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
		select {
		case <-s.done:
		default:
			close(s.done)
		}
	}
	return s.db.Close()
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

// expiresAtUnix flattens the payload deadline to unix seconds for the
// sweeping column. Zero means the row never expires.
func expiresAtUnix(data session.Data) int64 {
	if data.ExpiresAt.IsZero() {
		return 0
	}
	return data.ExpiresAt.Unix()
}
