package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// Manager orchestrates the session lifecycle over exactly one storage
// variant, chosen at construction: a keyed Store with a Transport, or a
// CookieStore embedding payloads client-side. Handlers fetch or create a
// session at the start of a request, mutate it freely and save it at the end;
// the middleware in this package automates that bracket.
type Manager struct {
	backend backend
	config  Config
	log     *slog.Logger
	genID   func() string

	store         Store
	transport     Transport
	cookieStore   *CookieStore
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	ownsStore     bool
}

// New creates a session manager with the given options. Without a store
// option it runs on a MemoryStore behind an encrypted cookie transport, which
// requires a cookie manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.genID == nil {
		m.genID = uuid.NewString
	}

	if m.cookieStore != nil {
		if m.store != nil || m.transport != nil {
			// Fail fast on misconfiguration: the two variants are exclusive
			panic("session: cookie store cannot be combined with a keyed store or transport")
		}
		m.backend = &cookieBackend{store: m.cookieStore}
		return m
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
		m.ownsStore = true
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		opts := m.cookieOptions
		if m.config.SecureCookies {
			opts = append([]cookie.Option{cookie.WithSecure(true)}, opts...)
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieName, opts...)
	}

	m.backend = &keyedBackend{
		store:     m.store,
		transport: m.transport,
		genID:     m.genID,
		ttl:       m.config.TTL,
	}

	return m
}

// Fetch loads the session referenced by the request. It returns nil with no
// error when the request carries no usable session: no cookie, an unknown
// identifier or an undecryptable payload all read as absence.
//
// A live session has its expiry slid forward by the configured TTL and its
// access time stamped; the renewed state reaches the store at Save. An
// expired session is destroyed and transparently replaced with a fresh empty
// one, so callers never see expired data.
func (m *Manager) Fetch(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	sess, err := m.backend.fetch(ctx, r)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if sess.data.Deleted || sess.data.IsExpired() {
		m.log.DebugContext(ctx, "replacing expired session", slog.String("sid", sess.id))
		if err := m.backend.destroy(ctx, w, sess); err != nil {
			return nil, err
		}
		return m.Create(ctx, w)
	}

	sess.data.renew(time.Now(), m.config.TTL)
	if err := m.backend.refresh(w, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Create mints a fresh session with an empty payload. With a keyed store the
// session is registered immediately and its identifier cookie set; with the
// cookie store nothing is written until Save.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter) (*Session, error) {
	data := newData()
	data.renew(time.Now(), m.config.TTL)

	return m.backend.create(ctx, w, data)
}

// Save persists the session's current state. A nil session is a no-op.
// A session marked destroyed is removed from store and client and never
// persisted again, even if it was also marked for rotation. A session marked
// for rotation is re-keyed first and persisted under its new identifier.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return nil
	}

	if sess.data.Deleted {
		return m.backend.destroy(ctx, w, sess)
	}

	if sess.rotate {
		old := sess.id
		if err := m.backend.rotate(ctx, w, sess); err != nil {
			return err
		}
		sess.rotate = false
		if old != "" {
			m.log.DebugContext(ctx, "rotated session identifier",
				slog.String("old_sid", old), slog.String("sid", sess.id))
		}
	}

	return m.backend.persist(ctx, w, sess)
}

// Destroy removes the session referenced by the request without fetching it
// into a usable state first. Requests carrying no session are left alone.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	sess, err := m.backend.fetch(ctx, r)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	return m.backend.destroy(ctx, w, sess)
}

// Close releases resources owned by the Manager, stopping the sweeper of a
// default-constructed store. Stores supplied by the caller stay open.
func (m *Manager) Close() error {
	if m.ownsStore {
		if closer, ok := m.store.(io.Closer); ok {
			return closer.Close()
		}
	}
	return nil
}
