package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductParams struct {
	TenantID           uuid.UUID
	Name               string
	Description        string
	DefaultUnitPrice   decimal.Decimal
	IncomeAccountID    *uuid.UUID
	IsStocked          bool
	InventoryAccountID *uuid.UUID
	ExpenseAccountID   *uuid.UUID
}

const createProductSQL = `
INSERT INTO products (tenant_id, name, description, default_unit_price, income_account_id, is_stocked, inventory_account_id, expense_account_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, tenant_id, name, description, default_unit_price, income_account_id, is_stocked, inventory_account_id, expense_account_id, is_active, created_at, updated_at`

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (ProductRow, error) {
	row := q.db.QueryRow(ctx, createProductSQL,
		toPgUUID(arg.TenantID), arg.Name, arg.Description, toNumericDec(arg.DefaultUnitPrice),
		toPgUUIDPtr(arg.IncomeAccountID), arg.IsStocked, toPgUUIDPtr(arg.InventoryAccountID), toPgUUIDPtr(arg.ExpenseAccountID))
	return scanProduct(row)
}

const getProductSQL = `
SELECT id, tenant_id, name, description, default_unit_price, income_account_id, is_stocked, inventory_account_id, expense_account_id, is_active, created_at, updated_at
FROM products WHERE tenant_id = $1 AND id = $2`

func (q *Queries) GetProduct(ctx context.Context, tenantID, id uuid.UUID) (ProductRow, error) {
	row := q.db.QueryRow(ctx, getProductSQL, toPgUUID(tenantID), toPgUUID(id))
	return scanProduct(row)
}

const listProductsSQL = `
SELECT id, tenant_id, name, description, default_unit_price, income_account_id, is_stocked, inventory_account_id, expense_account_id, is_active, created_at, updated_at
FROM products WHERE tenant_id = $1 ORDER BY name`

func (q *Queries) ListProducts(ctx context.Context, tenantID uuid.UUID) ([]ProductRow, error) {
	rows, err := q.db.Query(ctx, listProductsSQL, toPgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ProductRow
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type UpdateProductParams struct {
	TenantID         uuid.UUID
	ID               uuid.UUID
	Name             string
	Description      string
	DefaultUnitPrice decimal.Decimal
	IsActive         bool
}

const updateProductSQL = `
UPDATE products SET name = $3, description = $4, default_unit_price = $5, is_active = $6, updated_at = now()
WHERE tenant_id = $1 AND id = $2
RETURNING id, tenant_id, name, description, default_unit_price, income_account_id, is_stocked, inventory_account_id, expense_account_id, is_active, created_at, updated_at`

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (ProductRow, error) {
	row := q.db.QueryRow(ctx, updateProductSQL, toPgUUID(arg.TenantID), toPgUUID(arg.ID), arg.Name, arg.Description, toNumericDec(arg.DefaultUnitPrice), arg.IsActive)
	return scanProduct(row)
}

const deleteProductSQL = `DELETE FROM products WHERE tenant_id = $1 AND id = $2`

func (q *Queries) DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteProductSQL, toPgUUID(tenantID), toPgUUID(id))
	return err
}

func scanProduct(row rowScanner) (ProductRow, error) {
	var p ProductRow
	err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.Description, &p.DefaultUnitPrice,
		&p.IncomeAccountID, &p.IsStocked, &p.InventoryAccountID, &p.ExpenseAccountID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
