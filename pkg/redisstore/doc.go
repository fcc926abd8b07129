// Package redisstore provides a Redis-backed implementation of the
// session.Store interface, for deployments where sessions must survive
// process restarts and be shared across instances.
//
// # Architecture
//
// Each session payload is serialized to its portable JSON form and stored
// under a prefixed key:
//
//	session:<sid>  ->  {"user_id":"u-1","_accessed":"...","_expire":"...",...}
//
// Key expiration is delegated to Redis itself: every write derives the key
// TTL from the payload expiry plus a retention grace, so recently expired
// sessions remain observable long enough for the manager to replace them,
// and abandoned keys vanish without a cleanup goroutine.
//
// # Usage
//
//	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: "redis://localhost:6379/0"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	manager := session.New(
//	    session.WithStore(redisstore.New(client)),
//	    session.WithCookieManager(cookies),
//	)
//
// The store never closes the client it is given; connection lifecycle stays
// with the caller.
//
// # Limitations
//
// The store does not implement session.StatsReporter: counting keys would
// require a full SCAN of the namespace on every report. Use Redis' own
// keyspace metrics instead.
package redisstore
