// Package mongo connects MongoDB clients from environment-driven
// configuration, with startup retries and a readiness probe. It is the
// bootstrap layer under the MongoDB-backed session store, which works
// against a *mongo.Database handed to it.
//
//   - Config is populated from environment variables via
//     github.com/caarlos0/env; MONGODB_URL carries the connection URL.
//
//   - Connect dials with a growing backoff and verifies every attempt with
//     a ping. ConnectDatabase does the same and returns a handle on one
//     database.
//
//   - Healthcheck wraps the client as a func(context.Context) error for
//     health endpoints.
//
// # Usage
//
//	var cfg mongo.Config
//	if err := env.Parse(&cfg); err != nil {
//		panic(err)
//	}
//
//	db, err := mongo.ConnectDatabase(ctx, cfg, "webapp")
//	if err != nil {
//		panic(err)
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	store, err := mongostore.New(ctx, db)
//
// Failures wrap sentinel errors such as ErrFailedToConnectToMongo with
// errors.Join; match them with errors.Is.
package mongo
