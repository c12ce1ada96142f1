package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateJournalEntryParams struct {
	TenantID  uuid.UUID
	Number    string
	EntryDate time.Time
	Memo      string
}

const createJournalEntrySQL = `
INSERT INTO journal_entries (tenant_id, number, entry_date, memo)
VALUES ($1, $2, $3, $4)
RETURNING id, tenant_id, number, entry_date, memo, created_at, voided_at`

func (q *Queries) CreateJournalEntry(ctx context.Context, arg CreateJournalEntryParams) (JournalEntryRow, error) {
	row := q.db.QueryRow(ctx, createJournalEntrySQL, toPgUUID(arg.TenantID), arg.Number, toPgDate(arg.EntryDate), arg.Memo)
	return scanJournalEntry(row)
}

const journalEntryColumns = `id, tenant_id, number, entry_date, memo, created_at, voided_at`

func (q *Queries) GetJournalEntry(ctx context.Context, tenantID, id uuid.UUID) (JournalEntryRow, error) {
	row := q.db.QueryRow(ctx, "SELECT "+journalEntryColumns+" FROM journal_entries WHERE tenant_id = $1 AND id = $2", toPgUUID(tenantID), toPgUUID(id))
	return scanJournalEntry(row)
}

func (q *Queries) ListJournalEntries(ctx context.Context, tenantID uuid.UUID) ([]JournalEntryRow, error) {
	rows, err := q.db.Query(ctx, "SELECT "+journalEntryColumns+" FROM journal_entries WHERE tenant_id = $1 ORDER BY entry_date DESC, number DESC", toPgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []JournalEntryRow
	for rows.Next() {
		j, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

const listJournalEntryLinesSQL = `
SELECT id, journal_entry_id, account_id, description, debit_amount, credit_amount, sort_order
FROM journal_entry_lines WHERE journal_entry_id = $1 ORDER BY sort_order`

func (q *Queries) ListJournalEntryLines(ctx context.Context, journalEntryID uuid.UUID) ([]JournalEntryLineRow, error) {
	rows, err := q.db.Query(ctx, listJournalEntryLinesSQL, toPgUUID(journalEntryID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []JournalEntryLineRow
	for rows.Next() {
		var l JournalEntryLineRow
		if err := rows.Scan(&l.ID, &l.JournalEntryID, &l.AccountID, &l.Description, &l.DebitAmount, &l.CreditAmount, &l.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

type InsertJournalEntryLineParams struct {
	JournalEntryID uuid.UUID
	AccountID      uuid.UUID
	Description    string
	DebitAmount    decimal.Decimal
	CreditAmount   decimal.Decimal
	SortOrder      int32
}

const insertJournalEntryLineSQL = `
INSERT INTO journal_entry_lines (journal_entry_id, account_id, description, debit_amount, credit_amount, sort_order)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, journal_entry_id, account_id, description, debit_amount, credit_amount, sort_order`

func (q *Queries) InsertJournalEntryLine(ctx context.Context, arg InsertJournalEntryLineParams) (JournalEntryLineRow, error) {
	row := q.db.QueryRow(ctx, insertJournalEntryLineSQL,
		toPgUUID(arg.JournalEntryID), toPgUUID(arg.AccountID), arg.Description, toNumericDec(arg.DebitAmount), toNumericDec(arg.CreditAmount), arg.SortOrder)
	var l JournalEntryLineRow
	err := row.Scan(&l.ID, &l.JournalEntryID, &l.AccountID, &l.Description, &l.DebitAmount, &l.CreditAmount, &l.SortOrder)
	return l, err
}

const voidJournalEntrySQL = `
UPDATE journal_entries SET voided_at = now() WHERE tenant_id = $1 AND id = $2
RETURNING ` + journalEntryColumns

func (q *Queries) VoidJournalEntry(ctx context.Context, tenantID, id uuid.UUID) (JournalEntryRow, error) {
	row := q.db.QueryRow(ctx, voidJournalEntrySQL, toPgUUID(tenantID), toPgUUID(id))
	return scanJournalEntry(row)
}

func scanJournalEntry(row rowScanner) (JournalEntryRow, error) {
	var j JournalEntryRow
	err := row.Scan(&j.ID, &j.TenantID, &j.Number, &j.EntryDate, &j.Memo, &j.CreatedAt, &j.VoidedAt)
	return j, err
}
