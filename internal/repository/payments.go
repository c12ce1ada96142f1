package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type CreatePaymentParams struct {
	TenantID           uuid.UUID
	CustomerID         uuid.UUID
	Number             string
	PaymentDate        time.Time
	Method             string
	DepositToAccountID *uuid.UUID
	Memo               string
	Amount             decimal.Decimal
}

const createPaymentSQL = `
INSERT INTO payments (tenant_id, customer_id, number, payment_date, method, deposit_to_account_id, memo, amount)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, tenant_id, customer_id, number, payment_date, method, deposit_to_account_id, memo, amount, created_at, voided_at`

func (q *Queries) CreatePayment(ctx context.Context, arg CreatePaymentParams) (PaymentRow, error) {
	row := q.db.QueryRow(ctx, createPaymentSQL,
		toPgUUID(arg.TenantID), toPgUUID(arg.CustomerID), arg.Number, toPgDate(arg.PaymentDate), arg.Method,
		toPgUUIDPtr(arg.DepositToAccountID), arg.Memo, toNumericDec(arg.Amount))
	return scanPayment(row)
}

const paymentColumns = `id, tenant_id, customer_id, number, payment_date, method, deposit_to_account_id, memo, amount, created_at, voided_at`

func (q *Queries) GetPayment(ctx context.Context, tenantID, id uuid.UUID) (PaymentRow, error) {
	row := q.db.QueryRow(ctx, "SELECT "+paymentColumns+" FROM payments WHERE tenant_id = $1 AND id = $2", toPgUUID(tenantID), toPgUUID(id))
	return scanPayment(row)
}

func (q *Queries) ListPayments(ctx context.Context, tenantID uuid.UUID) ([]PaymentRow, error) {
	rows, err := q.db.Query(ctx, "SELECT "+paymentColumns+" FROM payments WHERE tenant_id = $1 ORDER BY payment_date DESC, number DESC", toPgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PaymentRow
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const listPaymentApplicationsSQL = `
SELECT id, payment_id, invoice_id, amount FROM payment_applications WHERE payment_id = $1`

func (q *Queries) ListPaymentApplications(ctx context.Context, paymentID uuid.UUID) ([]PaymentApplicationRow, error) {
	rows, err := q.db.Query(ctx, listPaymentApplicationsSQL, toPgUUID(paymentID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PaymentApplicationRow
	for rows.Next() {
		var a PaymentApplicationRow
		if err := rows.Scan(&a.ID, &a.PaymentID, &a.InvoiceID, &a.Amount); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type InsertPaymentApplicationParams struct {
	PaymentID uuid.UUID
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
}

const insertPaymentApplicationSQL = `
INSERT INTO payment_applications (payment_id, invoice_id, amount)
VALUES ($1, $2, $3)
RETURNING id, payment_id, invoice_id, amount`

func (q *Queries) InsertPaymentApplication(ctx context.Context, arg InsertPaymentApplicationParams) (PaymentApplicationRow, error) {
	row := q.db.QueryRow(ctx, insertPaymentApplicationSQL, toPgUUID(arg.PaymentID), toPgUUID(arg.InvoiceID), toNumericDec(arg.Amount))
	var a PaymentApplicationRow
	err := row.Scan(&a.ID, &a.PaymentID, &a.InvoiceID, &a.Amount)
	return a, err
}

const deletePaymentApplicationsSQL = `DELETE FROM payment_applications WHERE payment_id = $1`

func (q *Queries) DeletePaymentApplications(ctx context.Context, paymentID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deletePaymentApplicationsSQL, toPgUUID(paymentID))
	return err
}

const voidPaymentSQL = `
UPDATE payments SET voided_at = now() WHERE tenant_id = $1 AND id = $2
RETURNING ` + paymentColumns

func (q *Queries) VoidPayment(ctx context.Context, tenantID, id uuid.UUID) (PaymentRow, error) {
	row := q.db.QueryRow(ctx, voidPaymentSQL, toPgUUID(tenantID), toPgUUID(id))
	return scanPayment(row)
}

const sumApplicationsForInvoiceSQL = `
SELECT coalesce(sum(pa.amount), 0)
FROM payment_applications pa
JOIN payments p ON p.id = pa.payment_id
WHERE pa.invoice_id = $1 AND p.voided_at IS NULL`

func (q *Queries) SumApplicationsForInvoice(ctx context.Context, invoiceID uuid.UUID) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	err := q.db.QueryRow(ctx, sumApplicationsForInvoiceSQL, toPgUUID(invoiceID)).Scan(&n)
	return n, err
}

func scanPayment(row rowScanner) (PaymentRow, error) {
	var p PaymentRow
	err := row.Scan(&p.ID, &p.TenantID, &p.CustomerID, &p.Number, &p.PaymentDate, &p.Method,
		&p.DepositToAccountID, &p.Memo, &p.Amount, &p.CreatedAt, &p.VoidedAt)
	return p, err
}
