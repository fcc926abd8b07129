// Package session manages the lifecycle of web sessions: fetch, create,
// mutate, save. It offers two storage variants behind one Manager: keyed
// server-side stores reached through a pluggable Store interface, and a
// cookie-embedded store that keeps the whole encrypted payload client-side.
// Both come with sliding expiration, one-time flash values and safe
// identifier rotation.
//
// The package is storage-agnostic: any datastore that satisfies the Store
// interface can be plugged in. A concurrent in-memory implementation ships
// out of the box, with Redis, Postgres, MongoDB and SQLite implementations in
// sibling packages. Session identifiers travel through the Transport
// interface (encrypted cookie by default, headers for API clients).
//
// # Architecture
//
// A Manager orchestrates the session lifecycle and is the sole judge of
// validity. Stores are deliberately dumb: they return whatever was last
// written, expired or not, and retain expired entries for a grace period so
// the Manager can observe the expired state and transparently issue a
// replacement.
//
//	┌────────┐   sid cookie    ┌───────────┐        ┌─────────────────┐
//	│ Client │ ──────────────► │ Transport │ ─────► │                 │
//	└────────┘                 └───────────┘        │     Manager     │
//	     │                                          │  fetch / create │
//	     │   payload cookie   ┌─────────────┐       │  save / destroy │
//	     └──────────────────► │ CookieStore │ ────► │                 │
//	                          └─────────────┘       └─────────────────┘
//	                                                        │
//	                                                        ▼
//	                                                   ┌─────────┐
//	                                                   │  Store  │ (memory,
//	                                                   └─────────┘  redis, …)
//
// Each request works on its own *Session, fetched or created through the
// Manager and discarded at request end. Mutations stay in memory until
// Manager.Save runs; the middleware below calls it automatically before the
// response body is written.
//
// # Usage
//
//	import (
//	    "github.com/dmitrymomot/sessionkit/pkg/cookie"
//	    "github.com/dmitrymomot/sessionkit/pkg/session"
//	)
//
//	cookies, _ := cookie.New([]string{"secret-key-at-least-32-characters"})
//	manager := session.New(
//	    session.WithCookieManager(cookies), // memory store + encrypted sid cookie
//	)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    sess, _ := manager.Fetch(r.Context(), w, r)
//	    if sess == nil {
//	        sess, _ = manager.Create(r.Context(), w)
//	    }
//	    sess.Set("theme", "dark")
//	    sess.Flash("notice", "saved")
//	    _ = manager.Save(r.Context(), w, sess)
//	}
//
// Or let the middleware run the fetch/save bracket:
//
//	mux.Handle("/", manager.EnsureSession(appHandler))
//
//	func appHandler(w http.ResponseWriter, r *http.Request) {
//	    sess := session.MustFromContext(r.Context())
//	    sess.Set("visits", visits+1)
//	}
//
// Cookie-embedded variant, no server storage at all:
//
//	cipher, _ := secrets.NewCipher("secret-key-at-least-32-characters")
//	manager := session.New(
//	    session.WithCookieStore(session.NewCookieStore(cookies, cipher)),
//	)
//
// # Lifecycle
//
// Fetch returns nil for requests without a usable session: missing cookie,
// unknown identifier and undecryptable payload are all plain absence, never an
// error. A live session is renewed: its expiry slides forward by the TTL and
// its access time is stamped. An expired session is destroyed and replaced
// with a fresh one in the same call.
//
// Destroy-marked sessions are deleted at save and never persisted again.
// Rotate-marked sessions move their data under a freshly minted identifier
// while the old one is retired, the defense against session fixation after
// login. With the cookie store there is no identifier, so rotation reduces to
// the re-encryption every save performs anyway.
//
// The cookie store writes nothing at create time; a session exists client-side
// only after the first save. Keyed stores register sessions immediately.
//
// # Error Handling
//
// Common error values returned by the package:
//
//   - ErrSessionNotFound  – no payload for the identifier
//   - ErrSessionExists    – insert collided with a live identifier
//   - ErrPayloadTooLarge  – encoded payload exceeds the cookie limit
//
// Absence is handled inside the Manager; store and transport I/O failures
// propagate to the caller unretried.
//
// # Concurrency
//
// A *Session belongs to one request. Stores are safe for concurrent use;
// parallel saves of the same identifier resolve as last writer wins, with no
// merging.
package session
