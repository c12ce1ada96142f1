package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type CreateVendorPaymentParams struct {
	TenantID         uuid.UUID
	VendorID         uuid.UUID
	Number           string
	PaymentDate      time.Time
	Method           string
	PayFromAccountID *uuid.UUID
	Memo             string
	Amount           decimal.Decimal
}

const createVendorPaymentSQL = `
INSERT INTO vendor_payments (tenant_id, vendor_id, number, payment_date, method, pay_from_account_id, memo, amount)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, tenant_id, vendor_id, number, payment_date, method, pay_from_account_id, memo, amount, created_at, voided_at`

func (q *Queries) CreateVendorPayment(ctx context.Context, arg CreateVendorPaymentParams) (VendorPaymentRow, error) {
	row := q.db.QueryRow(ctx, createVendorPaymentSQL,
		toPgUUID(arg.TenantID), toPgUUID(arg.VendorID), arg.Number, toPgDate(arg.PaymentDate), arg.Method,
		toPgUUIDPtr(arg.PayFromAccountID), arg.Memo, toNumericDec(arg.Amount))
	return scanVendorPayment(row)
}

const vendorPaymentColumns = `id, tenant_id, vendor_id, number, payment_date, method, pay_from_account_id, memo, amount, created_at, voided_at`

func (q *Queries) GetVendorPayment(ctx context.Context, tenantID, id uuid.UUID) (VendorPaymentRow, error) {
	row := q.db.QueryRow(ctx, "SELECT "+vendorPaymentColumns+" FROM vendor_payments WHERE tenant_id = $1 AND id = $2", toPgUUID(tenantID), toPgUUID(id))
	return scanVendorPayment(row)
}

func (q *Queries) ListVendorPayments(ctx context.Context, tenantID uuid.UUID) ([]VendorPaymentRow, error) {
	rows, err := q.db.Query(ctx, "SELECT "+vendorPaymentColumns+" FROM vendor_payments WHERE tenant_id = $1 ORDER BY payment_date DESC, number DESC", toPgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VendorPaymentRow
	for rows.Next() {
		p, err := scanVendorPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const listVendorPaymentApplicationsSQL = `
SELECT id, vendor_payment_id, bill_id, amount FROM vendor_payment_applications WHERE vendor_payment_id = $1`

func (q *Queries) ListVendorPaymentApplications(ctx context.Context, vendorPaymentID uuid.UUID) ([]VendorPaymentApplicationRow, error) {
	rows, err := q.db.Query(ctx, listVendorPaymentApplicationsSQL, toPgUUID(vendorPaymentID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VendorPaymentApplicationRow
	for rows.Next() {
		var a VendorPaymentApplicationRow
		if err := rows.Scan(&a.ID, &a.VendorPaymentID, &a.BillID, &a.Amount); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type InsertVendorPaymentApplicationParams struct {
	VendorPaymentID uuid.UUID
	BillID          uuid.UUID
	Amount          decimal.Decimal
}

const insertVendorPaymentApplicationSQL = `
INSERT INTO vendor_payment_applications (vendor_payment_id, bill_id, amount)
VALUES ($1, $2, $3)
RETURNING id, vendor_payment_id, bill_id, amount`

func (q *Queries) InsertVendorPaymentApplication(ctx context.Context, arg InsertVendorPaymentApplicationParams) (VendorPaymentApplicationRow, error) {
	row := q.db.QueryRow(ctx, insertVendorPaymentApplicationSQL, toPgUUID(arg.VendorPaymentID), toPgUUID(arg.BillID), toNumericDec(arg.Amount))
	var a VendorPaymentApplicationRow
	err := row.Scan(&a.ID, &a.VendorPaymentID, &a.BillID, &a.Amount)
	return a, err
}

const deleteVendorPaymentApplicationsSQL = `DELETE FROM vendor_payment_applications WHERE vendor_payment_id = $1`

func (q *Queries) DeleteVendorPaymentApplications(ctx context.Context, vendorPaymentID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteVendorPaymentApplicationsSQL, toPgUUID(vendorPaymentID))
	return err
}

const voidVendorPaymentSQL = `
UPDATE vendor_payments SET voided_at = now() WHERE tenant_id = $1 AND id = $2
RETURNING ` + vendorPaymentColumns

func (q *Queries) VoidVendorPayment(ctx context.Context, tenantID, id uuid.UUID) (VendorPaymentRow, error) {
	row := q.db.QueryRow(ctx, voidVendorPaymentSQL, toPgUUID(tenantID), toPgUUID(id))
	return scanVendorPayment(row)
}

const sumApplicationsForBillSQL = `
SELECT coalesce(sum(vpa.amount), 0)
FROM vendor_payment_applications vpa
JOIN vendor_payments vp ON vp.id = vpa.vendor_payment_id
WHERE vpa.bill_id = $1 AND vp.voided_at IS NULL`

func (q *Queries) SumApplicationsForBill(ctx context.Context, billID uuid.UUID) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	err := q.db.QueryRow(ctx, sumApplicationsForBillSQL, toPgUUID(billID)).Scan(&n)
	return n, err
}

func scanVendorPayment(row rowScanner) (VendorPaymentRow, error) {
	var p VendorPaymentRow
	err := row.Scan(&p.ID, &p.TenantID, &p.VendorID, &p.Number, &p.PaymentDate, &p.Method,
		&p.PayFromAccountID, &p.Memo, &p.Amount, &p.CreatedAt, &p.VoidedAt)
	return p, err
}
