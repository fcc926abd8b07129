// Package pg bootstraps a PostgreSQL connection pool on pgx/v5 and applies
// schema migrations with goose/v3. It exists so that a service (or a library
// shipping its own schema, such as a session store) can go from environment
// variables to a migrated, health-checked pool in a few lines.
//
// The building blocks are deliberately independent:
//
//   - Config is populated from environment variables via github.com/caarlos0/env
//     and controls the connection string, pool limits and retry cadence.
//
//   - Connect opens a *pgxpool.Pool from Config, retrying with a growing
//     backoff until the database accepts connections, and verifies the result
//     with a ping.
//
//   - Migrate applies goose migrations from any fs.FS, typically an embed.FS
//     compiled into the caller. Options select the migrations directory and
//     the goose version table, so several components can migrate their own
//     schemas against one database without colliding.
//
//   - Healthcheck wraps the pool as a func(context.Context) error for
//     readiness probes.
//
// # Usage
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil {
//		panic(err)
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		panic(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrationsFS, pg.WithMigrationsDir("migrations")); err != nil {
//		panic(err)
//	}
//
// # Error Handling
//
// [IsNotFoundError] and [IsDuplicateKeyError] classify the two pgx errors
// that business logic routinely branches on: a query returning no rows and an
// insert racing an existing row for the same key.
package pg
