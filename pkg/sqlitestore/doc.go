// Package sqlitestore provides a SQLite-backed implementation of the
// session.Store interface, for single-node deployments that want sessions to
// survive restarts without operating a separate datastore.
//
// Payloads are stored in their portable JSON form alongside a flattened
// expires_at column:
//
//	sessions(sid TEXT PRIMARY KEY, data BLOB, expires_at INTEGER)
//
// The column never decides validity - that stays with the session manager -
// it only drives the periodic sweeper and the stats query. Rows whose
// deadline passed more than the retention grace ago are removed by the
// sweeper; rows with expires_at = 0 never expire.
//
// # Usage
//
//	store, err := sqlitestore.New("sessions.db", 5*time.Minute)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	manager := session.New(
//	    session.WithStore(store),
//	    session.WithCookieManager(cookies),
//	)
//
// The store uses the pure-Go modernc.org/sqlite driver, so binaries build
// without cgo.
package sqlitestore
