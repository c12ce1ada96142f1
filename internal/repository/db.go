// Package repository is the sole owner of SQL in this module. Every
// method maps one-to-one to a query against Postgres; callers (services,
// the posting engine) never see a *pgxpool.Pool or a query string.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of *pgxpool.Pool and pgx.Tx that Queries needs, so
// the same Queries methods run either against the pool directly or
// against an open transaction handed in by the posting engine.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// rowScanner is satisfied by pgx.Row; declared locally so per-entity
// scan helpers don't need to import pgx just to name the type.
type rowScanner interface {
	Scan(dest ...any) error
}

// Queries is the concrete implementation of Querier over a DBTX.
type Queries struct {
	db DBTX
}

// New builds a Queries over any DBTX — a *pgxpool.Pool for standalone
// reads, or a pgx.Tx for the posting engine's single transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to tx, so a caller already holding a
// transaction (the posting engine) can keep using the same method set.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// Pool adapts *pgxpool.Pool to DBTX; pgxpool.Pool already implements
// this interface structurally, this exists only to document the
// relationship. No code in the module calls it.
func Pool(pool *pgxpool.Pool) DBTX {
	return pool
}

var _ Querier = (*Queries)(nil)
