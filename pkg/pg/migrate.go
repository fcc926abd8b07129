package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// MigrateOption tunes a Migrate run.
type MigrateOption func(*migrateConfig)

type migrateConfig struct {
	table string
	dir   string
	log   logger
}

// WithMigrationsTable overrides the goose version table. A library applying
// its own migrations should pick a dedicated table so its schema history
// never collides with the host application's.
func WithMigrationsTable(table string) MigrateOption {
	return func(c *migrateConfig) {
		if table != "" {
			c.table = table
		}
	}
}

// WithMigrationsDir names the directory inside the filesystem that holds the
// SQL files. Defaults to the filesystem root.
func WithMigrationsDir(dir string) MigrateOption {
	return func(c *migrateConfig) {
		if dir != "" {
			c.dir = dir
		}
	}
}

// WithMigrateLogger routes goose output through a structured logger instead
// of discarding it.
func WithMigrateLogger(log logger) MigrateOption {
	return func(c *migrateConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// Migrate applies schema migrations from a filesystem, typically an embed.FS
// compiled into the caller. The pgx pool is bridged to database/sql, which
// goose expects. Goose configuration is package state, so concurrent Migrate
// calls are not supported.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, opts ...MigrateOption) error {
	cfg := &migrateConfig{
		table: "schema_migrations",
		dir:   ".",
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			cfg.log.ErrorContext(ctx, "failed to close migration connection", "error", err)
		}
	}(db)

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(newSlogAdapter(cfg.log))
	goose.SetTableName(cfg.table)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	if err := goose.UpContext(ctx, db, cfg.dir); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	return nil
}

// migrateSlogAdapter bridges goose's Printf-style logging to structured
// logging. Fatalf maps to ErrorContext and Printf to InfoContext.
type migrateSlogAdapter struct {
	log logger
}

func newSlogAdapter(log logger) goose.Logger {
	return &migrateSlogAdapter{
		log: log,
	}
}

func (a *migrateSlogAdapter) Fatalf(format string, v ...any) {
	a.log.ErrorContext(context.Background(), fmt.Sprintf(format, v...))
}

func (a *migrateSlogAdapter) Printf(format string, v ...any) {
	a.log.InfoContext(context.Background(), fmt.Sprintf(format, v...))
}
