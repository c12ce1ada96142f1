package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/posting"
	"github.com/ledgerkeep/core/internal/repository"
)

// withTx opens a transaction against pool and hands fn a Querier and
// posting engine bound to it, committing on success and rolling back on
// any error. Document services use this so a header write, its line
// items, and the ledger entries a transition produces land atomically.
func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(repo repository.Querier, eng *posting.Engine) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return domain.Internal(err, "service.withTx", "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	repo := repository.New(tx)
	eng := posting.New(repo)
	if err := fn(repo, eng); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Internal(err, "service.withTx", "failed to commit transaction")
	}
	return nil
}
