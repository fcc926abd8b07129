// Package pgstore persists sessions in PostgreSQL, for deployments where a
// single shared store must serve several application instances.
//
// # Architecture
//
// Sessions live in one table:
//
//	sessions (
//	    sid        TEXT PRIMARY KEY,
//	    data       JSONB,        -- the payload in its portable JSON form
//	    expires_at TIMESTAMPTZ   -- NULL means the session never expires
//	)
//
// The schema is applied on construction through embedded goose migrations,
// tracked in a dedicated sessions_goose_db_version table so the host
// application's own migration history stays untouched.
//
// The expires_at column never decides validity - that stays with the session
// manager. It only feeds the background sweeper, which removes rows once
// they have been expired for longer than the retention period, and the
// Stats report.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	store, err := pgstore.New(ctx, pool, 5*time.Minute)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	manager := session.New(
//	    session.WithStore(store),
//	    session.WithCookieManager(cookieMgr),
//	)
//
// The pool is owned by the caller: Close stops the sweeper and nothing else,
// so one pool can serve the session store alongside the rest of the
// application.
package pgstore
