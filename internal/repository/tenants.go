package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CreateTenantParams struct {
	Name                 string
	BaseCurrency         string
	FiscalYearStartMonth int16
	Timezone             string
}

const createTenantSQL = `
INSERT INTO tenants (name, base_currency, fiscal_year_start_month, timezone)
VALUES ($1, $2, $3, $4)
RETURNING id, name, base_currency, fiscal_year_start_month, timezone, created_at`

func (q *Queries) CreateTenant(ctx context.Context, arg CreateTenantParams) (TenantRow, error) {
	row := q.db.QueryRow(ctx, createTenantSQL, arg.Name, arg.BaseCurrency, arg.FiscalYearStartMonth, arg.Timezone)
	var t TenantRow
	err := row.Scan(&t.ID, &t.Name, &t.BaseCurrency, &t.FiscalYearStartMonth, &t.Timezone, &t.CreatedAt)
	return t, err
}

const getTenantByIDSQL = `
SELECT id, name, base_currency, fiscal_year_start_month, timezone, created_at
FROM tenants WHERE id = $1`

func (q *Queries) GetTenantByID(ctx context.Context, id uuid.UUID) (TenantRow, error) {
	row := q.db.QueryRow(ctx, getTenantByIDSQL, toPgUUID(id))
	var t TenantRow
	err := row.Scan(&t.ID, &t.Name, &t.BaseCurrency, &t.FiscalYearStartMonth, &t.Timezone, &t.CreatedAt)
	return t, err
}

// ErrNoRows re-exports pgx.ErrNoRows so callers outside this package
// never need to import pgx to check for a not-found scan.
var ErrNoRows = pgx.ErrNoRows
