package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBillParams struct {
	TenantID       uuid.UUID
	VendorID       uuid.UUID
	Number         string
	BillDate       time.Time
	DueDate        time.Time
	Memo           string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	ShippingAmount decimal.Decimal
	TaxTotal       decimal.Decimal
	Total          decimal.Decimal
	Status         string
}

const createBillSQL = `
INSERT INTO bills (tenant_id, vendor_id, number, status, bill_date, due_date, memo, subtotal, discount_amount, shipping_amount, tax_total, total, amount_paid)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0)
RETURNING ` + billColumns

func (q *Queries) CreateBill(ctx context.Context, arg CreateBillParams) (BillRow, error) {
	row := q.db.QueryRow(ctx, createBillSQL,
		toPgUUID(arg.TenantID), toPgUUID(arg.VendorID), arg.Number, arg.Status, toPgDate(arg.BillDate), toPgDate(arg.DueDate), arg.Memo,
		toNumericDec(arg.Subtotal), toNumericDec(arg.DiscountAmount), toNumericDec(arg.ShippingAmount),
		toNumericDec(arg.TaxTotal), toNumericDec(arg.Total))
	return scanBill(row)
}

const billColumns = `id, tenant_id, vendor_id, number, status, bill_date, due_date, memo, subtotal, discount_amount, shipping_amount, tax_total, total, amount_paid, created_at, updated_at, posted_at, paid_at, voided_at`

func (q *Queries) GetBill(ctx context.Context, tenantID, id uuid.UUID) (BillRow, error) {
	row := q.db.QueryRow(ctx, "SELECT "+billColumns+" FROM bills WHERE tenant_id = $1 AND id = $2", toPgUUID(tenantID), toPgUUID(id))
	return scanBill(row)
}

// GetBillForUpdate locks the bill header row so two concurrent vendor
// payment applications against the same bill serialize.
func (q *Queries) GetBillForUpdate(ctx context.Context, tenantID, id uuid.UUID) (BillRow, error) {
	row := q.db.QueryRow(ctx, "SELECT "+billColumns+" FROM bills WHERE tenant_id = $1 AND id = $2 FOR UPDATE", toPgUUID(tenantID), toPgUUID(id))
	return scanBill(row)
}

type ListBillsParams struct {
	TenantID uuid.UUID
	VendorID *uuid.UUID
	Status   string
	Limit    int32
	Offset   int32
}

func (q *Queries) ListBills(ctx context.Context, arg ListBillsParams) ([]BillRow, error) {
	var b strings.Builder
	b.WriteString("SELECT " + billColumns + " FROM bills WHERE tenant_id = $1")
	args := []any{toPgUUID(arg.TenantID)}
	n := 1
	if arg.VendorID != nil {
		n++
		b.WriteString(" AND vendor_id = $")
		b.WriteString(strconv.Itoa(n))
		args = append(args, toPgUUID(*arg.VendorID))
	}
	if arg.Status != "" {
		n++
		b.WriteString(" AND status = $")
		b.WriteString(strconv.Itoa(n))
		args = append(args, arg.Status)
	}
	b.WriteString(" ORDER BY bill_date DESC, number DESC")
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
	var out []BillRow
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, bill)
	}
	return out, rows.Err()
}

const billLineItemColumns = `id, bill_id, product_id, description, quantity, unit_price, discount_percent, tax_rate_id, account_id, line_total, sort_order`

const listBillLineItemsSQL = `
SELECT ` + billLineItemColumns + `
FROM bill_line_items WHERE bill_id = $1 ORDER BY sort_order`

func (q *Queries) ListBillLineItems(ctx context.Context, billID uuid.UUID) ([]BillLineItemRow, error) {
	rows, err := q.db.Query(ctx, listBillLineItemsSQL, toPgUUID(billID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BillLineItemRow
	for rows.Next() {
		l, err := scanBillLineItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

type InsertBillLineItemParams struct {
	BillID          uuid.UUID
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

const insertBillLineItemSQL = `
INSERT INTO bill_line_items (bill_id, product_id, description, quantity, unit_price, discount_percent, tax_rate_id, account_id, line_total, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + billLineItemColumns

func (q *Queries) InsertBillLineItem(ctx context.Context, arg InsertBillLineItemParams) (BillLineItemRow, error) {
	row := q.db.QueryRow(ctx, insertBillLineItemSQL,
		toPgUUID(arg.BillID), toPgUUIDPtr(arg.ProductID), arg.Description, toNumericDec(arg.Quantity), toNumericDec(arg.UnitPrice),
		toNumericDec(arg.DiscountPercent), toPgUUIDPtr(arg.TaxRateID), toPgUUID(arg.AccountID), toNumericDec(arg.LineTotal), arg.SortOrder)
	return scanBillLineItem(row)
}

const deleteBillLineItemsSQL = `DELETE FROM bill_line_items WHERE bill_id = $1`

func (q *Queries) DeleteBillLineItems(ctx context.Context, billID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteBillLineItemsSQL, toPgUUID(billID))
	return err
}

type UpdateBillHeaderParams struct {
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

const updateBillHeaderSQL = `
UPDATE bills SET due_date = $3, memo = $4, subtotal = $5, discount_amount = $6, shipping_amount = $7, tax_total = $8, total = $9, updated_at = now()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + billColumns

func (q *Queries) UpdateBillHeader(ctx context.Context, arg UpdateBillHeaderParams) (BillRow, error) {
	row := q.db.QueryRow(ctx, updateBillHeaderSQL, toPgUUID(arg.TenantID), toPgUUID(arg.ID), toPgDate(arg.DueDate), arg.Memo,
		toNumericDec(arg.Subtotal), toNumericDec(arg.DiscountAmount), toNumericDec(arg.ShippingAmount),
		toNumericDec(arg.TaxTotal), toNumericDec(arg.Total))
	return scanBill(row)
}

type UpdateBillStatusParams struct {
	TenantID   uuid.UUID
	ID         uuid.UUID
	Status     string
	AmountPaid decimal.Decimal
	PostedAt   *time.Time
	PaidAt     *time.Time
	VoidedAt   *time.Time
}

const updateBillStatusSQL = `
UPDATE bills SET status = $3, amount_paid = $4, posted_at = $5, paid_at = $6, voided_at = $7, updated_at = now()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + billColumns

func (q *Queries) UpdateBillStatus(ctx context.Context, arg UpdateBillStatusParams) (BillRow, error) {
	row := q.db.QueryRow(ctx, updateBillStatusSQL, toPgUUID(arg.TenantID), toPgUUID(arg.ID), arg.Status,
		toNumericDec(arg.AmountPaid), toPgTimestamptzPtr(arg.PostedAt), toPgTimestamptzPtr(arg.PaidAt), toPgTimestamptzPtr(arg.VoidedAt))
	return scanBill(row)
}

const deleteBillSQL = `DELETE FROM bills WHERE tenant_id = $1 AND id = $2`

func (q *Queries) DeleteBill(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteBillSQL, toPgUUID(tenantID), toPgUUID(id))
	return err
}

func scanBill(row rowScanner) (BillRow, error) {
	var b BillRow
	err := row.Scan(&b.ID, &b.TenantID, &b.VendorID, &b.Number, &b.Status, &b.BillDate, &b.DueDate, &b.Memo,
		&b.Subtotal, &b.DiscountAmount, &b.ShippingAmount, &b.TaxTotal, &b.Total, &b.AmountPaid,
		&b.CreatedAt, &b.UpdatedAt, &b.PostedAt, &b.PaidAt, &b.VoidedAt)
	return b, err
}

func scanBillLineItem(row rowScanner) (BillLineItemRow, error) {
	var l BillLineItemRow
	err := row.Scan(&l.ID, &l.BillID, &l.ProductID, &l.Description, &l.Quantity, &l.UnitPrice,
		&l.DiscountPercent, &l.TaxRateID, &l.AccountID, &l.LineTotal, &l.SortOrder)
	return l, err
}
