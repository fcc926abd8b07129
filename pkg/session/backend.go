package session

import (
	"context"
	"net/http"
	"time"
)

// backend binds a Manager to one of the two storage variants: keyed (server
// store plus identifier transport) or cookie-embedded (payload lives in the
// cookie itself). Backends move payloads; validity and lifecycle decisions
// stay with the Manager.
type backend interface {
	// fetch loads the session referenced by the request, or ErrSessionNotFound.
	fetch(ctx context.Context, r *http.Request) (*Session, error)

	// create mints a session around the given payload.
	create(ctx context.Context, w http.ResponseWriter, data Data) (*Session, error)

	// persist writes the session's current payload.
	persist(ctx context.Context, w http.ResponseWriter, s *Session) error

	// rotate retires the session identifier and issues a fresh one. The
	// payload itself is written by the persist that follows.
	rotate(ctx context.Context, w http.ResponseWriter, s *Session) error

	// destroy removes the session server-side and client-side.
	destroy(ctx context.Context, w http.ResponseWriter, s *Session) error

	// refresh re-announces the session to the client after a renewal.
	refresh(w http.ResponseWriter, s *Session) error
}

// keyedBackend pairs a server-side Store with a Transport carrying the
// identifier.
type keyedBackend struct {
	store     Store
	transport Transport
	genID     func() string
	ttl       time.Duration
}

func (b *keyedBackend) fetch(ctx context.Context, r *http.Request) (*Session, error) {
	sid, err := b.transport.GetSID(r)
	if err != nil || sid == "" {
		return nil, ErrSessionNotFound
	}

	data, err := b.store.Get(ctx, sid)
	if err != nil {
		return nil, err
	}

	return &Session{id: sid, data: data}, nil
}

func (b *keyedBackend) create(ctx context.Context, w http.ResponseWriter, data Data) (*Session, error) {
	sid := b.genID()

	if err := b.store.Create(ctx, sid, data); err != nil {
		return nil, err
	}

	if err := b.transport.SetSID(w, sid, b.ttl); err != nil {
		_ = b.store.Delete(ctx, sid)
		return nil, err
	}

	return &Session{id: sid, data: data}, nil
}

func (b *keyedBackend) persist(ctx context.Context, w http.ResponseWriter, s *Session) error {
	return b.store.Update(ctx, s.id, s.data)
}

func (b *keyedBackend) rotate(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if err := b.store.Delete(ctx, s.id); err != nil {
		return err
	}

	s.id = b.genID()
	return b.transport.SetSID(w, s.id, b.ttl)
}

func (b *keyedBackend) destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if err := b.store.Delete(ctx, s.id); err != nil {
		return err
	}
	return b.transport.ClearSID(w)
}

func (b *keyedBackend) refresh(w http.ResponseWriter, s *Session) error {
	// Re-set the identifier cookie so its client-side lifetime slides along
	// with the renewed expiry.
	return b.transport.SetSID(w, s.id, b.ttl)
}

// cookieBackend stores the whole payload client-side through a CookieStore.
// Nothing is written at create or refresh time; every change reaches the
// client only through persist, which runs at save.
type cookieBackend struct {
	store *CookieStore
}

func (b *cookieBackend) fetch(ctx context.Context, r *http.Request) (*Session, error) {
	data, err := b.store.Load(r)
	if err != nil {
		return nil, err
	}
	return &Session{data: data}, nil
}

func (b *cookieBackend) create(ctx context.Context, w http.ResponseWriter, data Data) (*Session, error) {
	return &Session{data: data}, nil
}

func (b *cookieBackend) persist(ctx context.Context, w http.ResponseWriter, s *Session) error {
	return b.store.Persist(w, s.data)
}

func (b *cookieBackend) rotate(ctx context.Context, w http.ResponseWriter, s *Session) error {
	// No identifier to rotate; the payload is re-encrypted on every persist
	// with a fresh nonce anyway.
	return nil
}

func (b *cookieBackend) destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	b.store.Clear(w)
	return nil
}

func (b *cookieBackend) refresh(w http.ResponseWriter, s *Session) error {
	return nil
}
