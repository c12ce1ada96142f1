package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateExpenseParams struct {
	TenantID          uuid.UUID
	VendorID          *uuid.UUID
	Number            string
	ExpenseDate       time.Time
	PaidFromAccountID *uuid.UUID
	Memo              string
	Total             decimal.Decimal
}

const createExpenseSQL = `
INSERT INTO expenses (tenant_id, vendor_id, number, expense_date, paid_from_account_id, memo, total)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, tenant_id, vendor_id, number, expense_date, paid_from_account_id, memo, total, created_at, voided_at`

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (ExpenseRow, error) {
	row := q.db.QueryRow(ctx, createExpenseSQL,
		toPgUUID(arg.TenantID), toPgUUIDPtr(arg.VendorID), arg.Number, toPgDate(arg.ExpenseDate),
		toPgUUIDPtr(arg.PaidFromAccountID), arg.Memo, toNumericDec(arg.Total))
	return scanExpense(row)
}

const expenseColumns = `id, tenant_id, vendor_id, number, expense_date, paid_from_account_id, memo, total, created_at, voided_at`

func (q *Queries) GetExpense(ctx context.Context, tenantID, id uuid.UUID) (ExpenseRow, error) {
	row := q.db.QueryRow(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE tenant_id = $1 AND id = $2", toPgUUID(tenantID), toPgUUID(id))
	return scanExpense(row)
}

func (q *Queries) ListExpenses(ctx context.Context, tenantID uuid.UUID) ([]ExpenseRow, error) {
	rows, err := q.db.Query(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE tenant_id = $1 ORDER BY expense_date DESC, number DESC", toPgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ExpenseRow
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const listExpenseLineItemsSQL = `
SELECT id, expense_id, account_id, description, amount, sort_order
FROM expense_line_items WHERE expense_id = $1 ORDER BY sort_order`

func (q *Queries) ListExpenseLineItems(ctx context.Context, expenseID uuid.UUID) ([]ExpenseLineItemRow, error) {
	rows, err := q.db.Query(ctx, listExpenseLineItemsSQL, toPgUUID(expenseID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ExpenseLineItemRow
	for rows.Next() {
		var l ExpenseLineItemRow
		if err := rows.Scan(&l.ID, &l.ExpenseID, &l.AccountID, &l.Description, &l.Amount, &l.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

type InsertExpenseLineItemParams struct {
	ExpenseID   uuid.UUID
	AccountID   uuid.UUID
	Description string
	Amount      decimal.Decimal
	SortOrder   int32
}

const insertExpenseLineItemSQL = `
INSERT INTO expense_line_items (expense_id, account_id, description, amount, sort_order)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, expense_id, account_id, description, amount, sort_order`

func (q *Queries) InsertExpenseLineItem(ctx context.Context, arg InsertExpenseLineItemParams) (ExpenseLineItemRow, error) {
	row := q.db.QueryRow(ctx, insertExpenseLineItemSQL, toPgUUID(arg.ExpenseID), toPgUUID(arg.AccountID), arg.Description, toNumericDec(arg.Amount), arg.SortOrder)
	var l ExpenseLineItemRow
	err := row.Scan(&l.ID, &l.ExpenseID, &l.AccountID, &l.Description, &l.Amount, &l.SortOrder)
	return l, err
}

const voidExpenseSQL = `
UPDATE expenses SET voided_at = now() WHERE tenant_id = $1 AND id = $2
RETURNING ` + expenseColumns

func (q *Queries) VoidExpense(ctx context.Context, tenantID, id uuid.UUID) (ExpenseRow, error) {
	row := q.db.QueryRow(ctx, voidExpenseSQL, toPgUUID(tenantID), toPgUUID(id))
	return scanExpense(row)
}

func scanExpense(row rowScanner) (ExpenseRow, error) {
	var e ExpenseRow
	err := row.Scan(&e.ID, &e.TenantID, &e.VendorID, &e.Number, &e.ExpenseDate, &e.PaidFromAccountID, &e.Memo, &e.Total, &e.CreatedAt, &e.VoidedAt)
	return e, err
}
