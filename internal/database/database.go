// Package database owns the process-wide Postgres connection pool and
// the goose migration runner. Everything else talks to Postgres through
// internal/repository, which is handed the pool's *pgxpool.Pool.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"

	_ "github.com/lib/pq" // database/sql driver, migrations only

	"github.com/ledgerkeep/core/migrations"
)

// DB bundles a pgx pool (for all application queries) with a
// database/sql handle over the same DSN (for goose, which does not
// speak pgx directly).
type DB struct {
	Pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// Open connects to Postgres at dsn and verifies the connection with a
// ping. maxConns bounds the pgx pool's max connections.
func Open(ctx context.Context, dsn string, maxConns int32) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database: dsn must not be empty")
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("database: parse dsn: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("database: open sql.DB for migrations: %w", err)
	}

	return &DB{Pool: pool, sqlDB: sqlDB}, nil
}

// Close releases the pgx pool and the sql.DB handle.
func (db *DB) Close() {
	db.Pool.Close()
	_ = db.sqlDB.Close()
}

// Migrate runs every pending goose migration embedded in the migrations
// package.
func (db *DB) Migrate() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("database: set goose dialect: %w", err)
	}
	if err := goose.Up(db.sqlDB, "."); err != nil {
		return fmt.Errorf("database: run migrations: %w", err)
	}
	return nil
}

// MigrationStatus prints the status of every migration to stdout,
// mirroring `goose status`.
func (db *DB) MigrationStatus() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("database: set goose dialect: %w", err)
	}
	return goose.Status(db.sqlDB, ".")
}
