// Package mongostore persists sessions in MongoDB, for deployments already
// running Mongo that want sessions shared across application instances.
//
// # Architecture
//
// Each session is one document:
//
//	{
//	    _id:        "<sid>",
//	    payload:    "<the payload in its portable JSON form>",
//	    expires_at: ISODate,   // absent on never-expiring sessions
//	    purge_at:   ISODate    // expires_at plus the retention grace
//	}
//
// There is no background sweeper. A TTL index on purge_at hands purging to
// Mongo's own expiry monitor, which runs roughly once a minute; purge_at
// trails expires_at by the retention period, so expired payloads remain
// readable long enough for the session manager to observe them and issue a
// replacement. Never-expiring sessions carry neither field and stay out of
// the monitor's reach entirely.
//
// The expires_at field never decides validity - that stays with the session
// manager. It only serves the Stats report through a plain secondary index.
//
// # Usage
//
//	db, err := mongo.ConnectDatabase(ctx, cfg, "app")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store, err := mongostore.New(ctx, db)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	manager := session.New(
//	    session.WithStore(store),
//	    session.WithCookieManager(cookieMgr),
//	)
//
// The client connection is owned by the caller; the store never disconnects
// it.
package mongostore
