package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateInvoiceParams struct {
	TenantID       uuid.UUID
	CustomerID     uuid.UUID
	Number         string
	IssueDate      time.Time
	DueDate        time.Time
	Memo           string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	ShippingAmount decimal.Decimal
	TaxTotal       decimal.Decimal
	Total          decimal.Decimal
}

const createInvoiceSQL = `
INSERT INTO invoices (tenant_id, customer_id, number, status, issue_date, due_date, memo, subtotal, discount_amount, shipping_amount, tax_total, total, amount_paid)
VALUES ($1, $2, $3, 'draft', $4, $5, $6, $7, $8, $9, $10, $11, 0)
RETURNING ` + invoiceColumns

func (q *Queries) CreateInvoice(ctx context.Context, arg CreateInvoiceParams) (InvoiceRow, error) {
	row := q.db.QueryRow(ctx, createInvoiceSQL,
		toPgUUID(arg.TenantID), toPgUUID(arg.CustomerID), arg.Number, toPgDate(arg.IssueDate), toPgDate(arg.DueDate), arg.Memo,
		toNumericDec(arg.Subtotal), toNumericDec(arg.DiscountAmount), toNumericDec(arg.ShippingAmount),
		toNumericDec(arg.TaxTotal), toNumericDec(arg.Total))
	return scanInvoice(row)
}

const invoiceColumns = `id, tenant_id, customer_id, number, status, issue_date, due_date, memo, subtotal, discount_amount, shipping_amount, tax_total, total, amount_paid, created_at, updated_at, posted_at, paid_at, voided_at`

func (q *Queries) GetInvoice(ctx context.Context, tenantID, id uuid.UUID) (InvoiceRow, error) {
	row := q.db.QueryRow(ctx, "SELECT "+invoiceColumns+" FROM invoices WHERE tenant_id = $1 AND id = $2", toPgUUID(tenantID), toPgUUID(id))
	return scanInvoice(row)
}

// GetInvoiceForUpdate locks the invoice header row so two concurrent
// payment applications against the same invoice serialize.
func (q *Queries) GetInvoiceForUpdate(ctx context.Context, tenantID, id uuid.UUID) (InvoiceRow, error) {
	row := q.db.QueryRow(ctx, "SELECT "+invoiceColumns+" FROM invoices WHERE tenant_id = $1 AND id = $2 FOR UPDATE", toPgUUID(tenantID), toPgUUID(id))
	return scanInvoice(row)
}

type ListInvoicesParams struct {
	TenantID   uuid.UUID
	CustomerID *uuid.UUID
	Status     string
	Limit      int32
	Offset     int32
}

func (q *Queries) ListInvoices(ctx context.Context, arg ListInvoicesParams) ([]InvoiceRow, error) {
	var b strings.Builder
	b.WriteString("SELECT " + invoiceColumns + " FROM invoices WHERE tenant_id = $1")
	args := []any{toPgUUID(arg.TenantID)}
	n := 1
	if arg.CustomerID != nil {
		n++
		b.WriteString(" AND customer_id = $")
		b.WriteString(strconv.Itoa(n))
		args = append(args, toPgUUID(*arg.CustomerID))
	}
	if arg.Status != "" {
		n++
		b.WriteString(" AND status = $")
		b.WriteString(strconv.Itoa(n))
		args = append(args, arg.Status)
	}
	b.WriteString(" ORDER BY issue_date DESC, number DESC")
	if arg.Limit > 0 {
		n++
		b.WriteString(" LIMIT $")
		b.WriteString(strconv.Itoa(n))
		args = append(args, arg.Limit)
	}
	if arg.Offset > 0 {
		n++
		b.WriteString(" OFFSET $")
		b.WriteString(strconv.Itoa(n))
		args = append(args, arg.Offset)
	}
	rows, err := q.db.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []InvoiceRow
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

const invoiceLineItemColumns = `id, invoice_id, product_id, description, quantity, unit_price, discount_percent, tax_rate_id, account_id, line_total, sort_order`

const listInvoiceLineItemsSQL = `
SELECT ` + invoiceLineItemColumns + `
FROM invoice_line_items WHERE invoice_id = $1 ORDER BY sort_order`

func (q *Queries) ListInvoiceLineItems(ctx context.Context, invoiceID uuid.UUID) ([]InvoiceLineItemRow, error) {
	rows, err := q.db.Query(ctx, listInvoiceLineItemsSQL, toPgUUID(invoiceID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []InvoiceLineItemRow
	for rows.Next() {
		l, err := scanInvoiceLineItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

type InsertInvoiceLineItemParams struct {
	InvoiceID       uuid.UUID
	ProductID       *uuid.UUID
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRateID       *uuid.UUID
	AccountID       uuid.UUID
	LineTotal       decimal.Decimal
	SortOrder       int32
}

const insertInvoiceLineItemSQL = `
INSERT INTO invoice_line_items (invoice_id, product_id, description, quantity, unit_price, discount_percent, tax_rate_id, account_id, line_total, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + invoiceLineItemColumns

func (q *Queries) InsertInvoiceLineItem(ctx context.Context, arg InsertInvoiceLineItemParams) (InvoiceLineItemRow, error) {
	row := q.db.QueryRow(ctx, insertInvoiceLineItemSQL,
		toPgUUID(arg.InvoiceID), toPgUUIDPtr(arg.ProductID), arg.Description, toNumericDec(arg.Quantity), toNumericDec(arg.UnitPrice),
		toNumericDec(arg.DiscountPercent), toPgUUIDPtr(arg.TaxRateID), toPgUUID(arg.AccountID), toNumericDec(arg.LineTotal), arg.SortOrder)
	return scanInvoiceLineItem(row)
}

const deleteInvoiceLineItemsSQL = `DELETE FROM invoice_line_items WHERE invoice_id = $1`

func (q *Queries) DeleteInvoiceLineItems(ctx context.Context, invoiceID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteInvoiceLineItemsSQL, toPgUUID(invoiceID))
	return err
}

type UpdateInvoiceHeaderParams struct {
	TenantID       uuid.UUID
	ID             uuid.UUID
	DueDate        time.Time
	Memo           string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	ShippingAmount decimal.Decimal
	TaxTotal       decimal.Decimal
	Total          decimal.Decimal
}

const updateInvoiceHeaderSQL = `
UPDATE invoices SET due_date = $3, memo = $4, subtotal = $5, discount_amount = $6, shipping_amount = $7, tax_total = $8, total = $9, updated_at = now()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + invoiceColumns

func (q *Queries) UpdateInvoiceHeader(ctx context.Context, arg UpdateInvoiceHeaderParams) (InvoiceRow, error) {
	row := q.db.QueryRow(ctx, updateInvoiceHeaderSQL, toPgUUID(arg.TenantID), toPgUUID(arg.ID), toPgDate(arg.DueDate), arg.Memo,
		toNumericDec(arg.Subtotal), toNumericDec(arg.DiscountAmount), toNumericDec(arg.ShippingAmount),
		toNumericDec(arg.TaxTotal), toNumericDec(arg.Total))
	return scanInvoice(row)
}

type UpdateInvoiceStatusParams struct {
	TenantID   uuid.UUID
	ID         uuid.UUID
	Status     string
	AmountPaid decimal.Decimal
	PostedAt   *time.Time
	PaidAt     *time.Time
	VoidedAt   *time.Time
}

const updateInvoiceStatusSQL = `
UPDATE invoices SET status = $3, amount_paid = $4, posted_at = $5, paid_at = $6, voided_at = $7, updated_at = now()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + invoiceColumns

func (q *Queries) UpdateInvoiceStatus(ctx context.Context, arg UpdateInvoiceStatusParams) (InvoiceRow, error) {
	row := q.db.QueryRow(ctx, updateInvoiceStatusSQL, toPgUUID(arg.TenantID), toPgUUID(arg.ID), arg.Status,
		toNumericDec(arg.AmountPaid), toPgTimestamptzPtr(arg.PostedAt), toPgTimestamptzPtr(arg.PaidAt), toPgTimestamptzPtr(arg.VoidedAt))
	return scanInvoice(row)
}

const deleteInvoiceSQL = `DELETE FROM invoices WHERE tenant_id = $1 AND id = $2`

func (q *Queries) DeleteInvoice(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteInvoiceSQL, toPgUUID(tenantID), toPgUUID(id))
	return err
}

func scanInvoice(row rowScanner) (InvoiceRow, error) {
	var i InvoiceRow
	err := row.Scan(&i.ID, &i.TenantID, &i.CustomerID, &i.Number, &i.Status, &i.IssueDate, &i.DueDate, &i.Memo,
		&i.Subtotal, &i.DiscountAmount, &i.ShippingAmount, &i.TaxTotal, &i.Total, &i.AmountPaid,
		&i.CreatedAt, &i.UpdatedAt, &i.PostedAt, &i.PaidAt, &i.VoidedAt)
	return i, err
}

func scanInvoiceLineItem(row rowScanner) (InvoiceLineItemRow, error) {
	var l InvoiceLineItemRow
	err := row.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.Description, &l.Quantity, &l.UnitPrice,
		&l.DiscountPercent, &l.TaxRateID, &l.AccountID, &l.LineTotal, &l.SortOrder)
	return l, err
}
