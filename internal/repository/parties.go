package repository

import (
	"context"

	"github.com/google/uuid"
)

type CreateCustomerParams struct {
	TenantID uuid.UUID
	Name     string
	Email    string
	Phone    string
}

const createCustomerSQL = `
INSERT INTO customers (tenant_id, name, email, phone)
VALUES ($1, $2, $3, $4)
RETURNING id, tenant_id, name, email, phone, is_active, created_at, updated_at`

func (q *Queries) CreateCustomer(ctx context.Context, arg CreateCustomerParams) (CustomerRow, error) {
	row := q.db.QueryRow(ctx, createCustomerSQL, toPgUUID(arg.TenantID), arg.Name, arg.Email, arg.Phone)
	return scanCustomer(row)
}

const getCustomerSQL = `
SELECT id, tenant_id, name, email, phone, is_active, created_at, updated_at
FROM customers WHERE tenant_id = $1 AND id = $2`

func (q *Queries) GetCustomer(ctx context.Context, tenantID, id uuid.UUID) (CustomerRow, error) {
	row := q.db.QueryRow(ctx, getCustomerSQL, toPgUUID(tenantID), toPgUUID(id))
	return scanCustomer(row)
}

const listCustomersSQL = `
SELECT id, tenant_id, name, email, phone, is_active, created_at, updated_at
FROM customers WHERE tenant_id = $1 ORDER BY name`

func (q *Queries) ListCustomers(ctx context.Context, tenantID uuid.UUID) ([]CustomerRow, error) {
	rows, err := q.db.Query(ctx, listCustomersSQL, toPgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CustomerRow
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type UpdateCustomerParams struct {
	TenantID uuid.UUID
	ID       uuid.UUID
	Name     string
	Email    string
	Phone    string
	IsActive bool
}

const updateCustomerSQL = `
UPDATE customers SET name = $3, email = $4, phone = $5, is_active = $6, updated_at = now()
WHERE tenant_id = $1 AND id = $2
RETURNING id, tenant_id, name, email, phone, is_active, created_at, updated_at`

func (q *Queries) UpdateCustomer(ctx context.Context, arg UpdateCustomerParams) (CustomerRow, error) {
	row := q.db.QueryRow(ctx, updateCustomerSQL, toPgUUID(arg.TenantID), toPgUUID(arg.ID), arg.Name, arg.Email, arg.Phone, arg.IsActive)
	return scanCustomer(row)
}

const deleteCustomerSQL = `DELETE FROM customers WHERE tenant_id = $1 AND id = $2`

func (q *Queries) DeleteCustomer(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteCustomerSQL, toPgUUID(tenantID), toPgUUID(id))
	return err
}

const customerHasDocumentsSQL = `
SELECT exists(SELECT 1 FROM invoices WHERE tenant_id = $1 AND customer_id = $2)
	OR exists(SELECT 1 FROM payments WHERE tenant_id = $1 AND customer_id = $2)`

func (q *Queries) CustomerHasDocuments(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var has bool
	err := q.db.QueryRow(ctx, customerHasDocumentsSQL, toPgUUID(tenantID), toPgUUID(id)).Scan(&has)
	return has, err
}

func scanCustomer(row rowScanner) (CustomerRow, error) {
	var c CustomerRow
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

type CreateVendorParams struct {
	TenantID uuid.UUID
	Name     string
	Email    string
	Phone    string
}

const createVendorSQL = `
INSERT INTO vendors (tenant_id, name, email, phone)
VALUES ($1, $2, $3, $4)
RETURNING id, tenant_id, name, email, phone, is_active, created_at, updated_at`

func (q *Queries) CreateVendor(ctx context.Context, arg CreateVendorParams) (VendorRow, error) {
	row := q.db.QueryRow(ctx, createVendorSQL, toPgUUID(arg.TenantID), arg.Name, arg.Email, arg.Phone)
	return scanVendor(row)
}

const getVendorSQL = `
SELECT id, tenant_id, name, email, phone, is_active, created_at, updated_at
FROM vendors WHERE tenant_id = $1 AND id = $2`

func (q *Queries) GetVendor(ctx context.Context, tenantID, id uuid.UUID) (VendorRow, error) {
	row := q.db.QueryRow(ctx, getVendorSQL, toPgUUID(tenantID), toPgUUID(id))
	return scanVendor(row)
}

const listVendorsSQL = `
SELECT id, tenant_id, name, email, phone, is_active, created_at, updated_at
FROM vendors WHERE tenant_id = $1 ORDER BY name`

func (q *Queries) ListVendors(ctx context.Context, tenantID uuid.UUID) ([]VendorRow, error) {
	rows, err := q.db.Query(ctx, listVendorsSQL, toPgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VendorRow
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type UpdateVendorParams struct {
	TenantID uuid.UUID
	ID       uuid.UUID
	Name     string
	Email    string
	Phone    string
	IsActive bool
}

const updateVendorSQL = `
UPDATE vendors SET name = $3, email = $4, phone = $5, is_active = $6, updated_at = now()
WHERE tenant_id = $1 AND id = $2
RETURNING id, tenant_id, name, email, phone, is_active, created_at, updated_at`

func (q *Queries) UpdateVendor(ctx context.Context, arg UpdateVendorParams) (VendorRow, error) {
	row := q.db.QueryRow(ctx, updateVendorSQL, toPgUUID(arg.TenantID), toPgUUID(arg.ID), arg.Name, arg.Email, arg.Phone, arg.IsActive)
	return scanVendor(row)
}

const deleteVendorSQL = `DELETE FROM vendors WHERE tenant_id = $1 AND id = $2`

func (q *Queries) DeleteVendor(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteVendorSQL, toPgUUID(tenantID), toPgUUID(id))
	return err
}

const vendorHasDocumentsSQL = `
SELECT exists(SELECT 1 FROM bills WHERE tenant_id = $1 AND vendor_id = $2)
	OR exists(SELECT 1 FROM vendor_payments WHERE tenant_id = $1 AND vendor_id = $2)`

func (q *Queries) VendorHasDocuments(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var has bool
	err := q.db.QueryRow(ctx, vendorHasDocumentsSQL, toPgUUID(tenantID), toPgUUID(id)).Scan(&has)
	return has, err
}

func scanVendor(row rowScanner) (VendorRow, error) {
	var v VendorRow
	err := row.Scan(&v.ID, &v.TenantID, &v.Name, &v.Email, &v.Phone, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}
