package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTaxRateParams struct {
	TenantID uuid.UUID
	Name     string
	Rate     decimal.Decimal
}

const createTaxRateSQL = `
INSERT INTO tax_rates (tenant_id, name, rate)
VALUES ($1, $2, $3)
RETURNING id, tenant_id, name, rate, is_active, created_at`

func (q *Queries) CreateTaxRate(ctx context.Context, arg CreateTaxRateParams) (TaxRateRow, error) {
	row := q.db.QueryRow(ctx, createTaxRateSQL, toPgUUID(arg.TenantID), arg.Name, toNumericDec(arg.Rate))
	return scanTaxRate(row)
}

const getTaxRateSQL = `
SELECT id, tenant_id, name, rate, is_active, created_at
FROM tax_rates WHERE tenant_id = $1 AND id = $2`

func (q *Queries) GetTaxRate(ctx context.Context, tenantID, id uuid.UUID) (TaxRateRow, error) {
	row := q.db.QueryRow(ctx, getTaxRateSQL, toPgUUID(tenantID), toPgUUID(id))
	return scanTaxRate(row)
}

const listTaxRatesSQL = `
SELECT id, tenant_id, name, rate, is_active, created_at
FROM tax_rates WHERE tenant_id = $1 ORDER BY name`

func (q *Queries) ListTaxRates(ctx context.Context, tenantID uuid.UUID) ([]TaxRateRow, error) {
	rows, err := q.db.Query(ctx, listTaxRatesSQL, toPgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TaxRateRow
	for rows.Next() {
		t, err := scanTaxRate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTaxRate(row rowScanner) (TaxRateRow, error) {
	var t TaxRateRow
	err := row.Scan(&t.ID, &t.TenantID, &t.Name, &t.Rate, &t.IsActive, &t.CreatedAt)
	return t, err
}
