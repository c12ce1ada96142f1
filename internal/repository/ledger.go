package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InsertLedgerEntryParams struct {
	TenantID        uuid.UUID
	AccountID       uuid.UUID
	TransactionType string
	SourceID        uuid.UUID
	EntryDate       time.Time
	Description     string
	DebitAmount     decimal.Decimal
	CreditAmount    decimal.Decimal
}

const insertLedgerEntrySQL = `
INSERT INTO ledger_entries (tenant_id, account_id, transaction_type, source_id, entry_date, description, debit_amount, credit_amount, is_posted)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
RETURNING id, tenant_id, account_id, transaction_type, source_id, entry_date, description, debit_amount, credit_amount, is_posted, created_at`

func (q *Queries) InsertLedgerEntry(ctx context.Context, arg InsertLedgerEntryParams) (LedgerEntryRow, error) {
	row := q.db.QueryRow(ctx, insertLedgerEntrySQL,
		toPgUUID(arg.TenantID), toPgUUID(arg.AccountID), arg.TransactionType, toPgUUID(arg.SourceID),
		toPgDate(arg.EntryDate), arg.Description, toNumericDec(arg.DebitAmount), toNumericDec(arg.CreditAmount))
	return scanLedgerEntry(row)
}

const ledgerEntryColumns = `id, tenant_id, account_id, transaction_type, source_id, entry_date, description, debit_amount, credit_amount, is_posted, created_at`

const listLedgerEntriesBySourceSQL = `
SELECT ` + ledgerEntryColumns + `
FROM ledger_entries WHERE tenant_id = $1 AND transaction_type = $2 AND source_id = $3
ORDER BY created_at`

func (q *Queries) ListLedgerEntriesBySource(ctx context.Context, tenantID uuid.UUID, transactionType string, sourceID uuid.UUID) ([]LedgerEntryRow, error) {
	rows, err := q.db.Query(ctx, listLedgerEntriesBySourceSQL, toPgUUID(tenantID), transactionType, toPgUUID(sourceID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LedgerEntryRow
	for rows.Next() {
		l, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

type ListLedgerEntriesInRangeParams struct {
	TenantID  uuid.UUID
	AccountID *uuid.UUID
	From      time.Time
	To        time.Time
}

func (q *Queries) ListLedgerEntriesInRange(ctx context.Context, arg ListLedgerEntriesInRangeParams) ([]LedgerEntryRow, error) {
	sql := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries
WHERE tenant_id = $1 AND is_posted AND entry_date >= $2 AND entry_date <= $3`
	args := []any{toPgUUID(arg.TenantID), toPgDate(arg.From), toPgDate(arg.To)}
	if arg.AccountID != nil {
		sql += " AND account_id = $4"
		args = append(args, toPgUUID(*arg.AccountID))
	}
	sql += " ORDER BY entry_date, created_at"

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LedgerEntryRow
	for rows.Next() {
		l, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanLedgerEntry(row rowScanner) (LedgerEntryRow, error) {
	var l LedgerEntryRow
	err := row.Scan(&l.ID, &l.TenantID, &l.AccountID, &l.TransactionType, &l.SourceID, &l.EntryDate,
		&l.Description, &l.DebitAmount, &l.CreditAmount, &l.IsPosted, &l.CreatedAt)
	return l, err
}
