package repository

import (
	"context"

	"github.com/google/uuid"
)

type CreateAccountParams struct {
	TenantID        uuid.UUID
	AccountNumber   string
	Name            string
	Type            string
	Subtype         string
	ParentAccountID *uuid.UUID
	Description     string
	IsSystemAccount bool
}

const createAccountSQL = `
INSERT INTO accounts (tenant_id, account_number, name, type, subtype, parent_account_id, description, is_system_account)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, tenant_id, account_number, name, type, subtype, parent_account_id, description, is_system_account, is_active, created_at, updated_at`

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (AccountRow, error) {
	row := q.db.QueryRow(ctx, createAccountSQL,
		toPgUUID(arg.TenantID), arg.AccountNumber, arg.Name, arg.Type, arg.Subtype,
		toPgUUIDPtr(arg.ParentAccountID), arg.Description, arg.IsSystemAccount)
	return scanAccount(row)
}

const getAccountSQL = `
SELECT id, tenant_id, account_number, name, type, subtype, parent_account_id, description, is_system_account, is_active, created_at, updated_at
FROM accounts WHERE tenant_id = $1 AND id = $2`

func (q *Queries) GetAccount(ctx context.Context, tenantID, id uuid.UUID) (AccountRow, error) {
	row := q.db.QueryRow(ctx, getAccountSQL, toPgUUID(tenantID), toPgUUID(id))
	return scanAccount(row)
}

const getAccountByNumberSQL = `
SELECT id, tenant_id, account_number, name, type, subtype, parent_account_id, description, is_system_account, is_active, created_at, updated_at
FROM accounts WHERE tenant_id = $1 AND account_number = $2`

func (q *Queries) GetAccountByNumber(ctx context.Context, tenantID uuid.UUID, number string) (AccountRow, error) {
	row := q.db.QueryRow(ctx, getAccountByNumberSQL, toPgUUID(tenantID), number)
	return scanAccount(row)
}

const listAccountsSQL = `
SELECT id, tenant_id, account_number, name, type, subtype, parent_account_id, description, is_system_account, is_active, created_at, updated_at
FROM accounts WHERE tenant_id = $1 ORDER BY account_number`

func (q *Queries) ListAccounts(ctx context.Context, tenantID uuid.UUID) ([]AccountRow, error) {
	rows, err := q.db.Query(ctx, listAccountsSQL, toPgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AccountRow
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

const listChildAccountsSQL = `
SELECT id, tenant_id, account_number, name, type, subtype, parent_account_id, description, is_system_account, is_active, created_at, updated_at
FROM accounts WHERE tenant_id = $1 AND parent_account_id = $2 ORDER BY account_number`

func (q *Queries) ListChildAccounts(ctx context.Context, tenantID, parentID uuid.UUID) ([]AccountRow, error) {
	rows, err := q.db.Query(ctx, listChildAccountsSQL, toPgUUID(tenantID), toPgUUID(parentID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AccountRow
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type UpdateAccountParams struct {
	TenantID    uuid.UUID
	ID          uuid.UUID
	Name        string
	Description string
	IsActive    bool
}

const updateAccountSQL = `
UPDATE accounts SET name = $3, description = $4, is_active = $5, updated_at = now()
WHERE tenant_id = $1 AND id = $2
RETURNING id, tenant_id, account_number, name, type, subtype, parent_account_id, description, is_system_account, is_active, created_at, updated_at`

func (q *Queries) UpdateAccount(ctx context.Context, arg UpdateAccountParams) (AccountRow, error) {
	row := q.db.QueryRow(ctx, updateAccountSQL, toPgUUID(arg.TenantID), toPgUUID(arg.ID), arg.Name, arg.Description, arg.IsActive)
	return scanAccount(row)
}

const deleteAccountSQL = `DELETE FROM accounts WHERE tenant_id = $1 AND id = $2`

func (q *Queries) DeleteAccount(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteAccountSQL, toPgUUID(tenantID), toPgUUID(id))
	return err
}

const countLedgerEntriesForAccountSQL = `
SELECT count(*) FROM ledger_entries WHERE tenant_id = $1 AND account_id = $2`

func (q *Queries) CountLedgerEntriesForAccount(ctx context.Context, tenantID, accountID uuid.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countLedgerEntriesForAccountSQL, toPgUUID(tenantID), toPgUUID(accountID)).Scan(&n)
	return n, err
}

const getAccountBalanceSQL = `
SELECT account_id, coalesce(sum(debit_amount), 0), coalesce(sum(credit_amount), 0)
FROM ledger_entries WHERE tenant_id = $1 AND account_id = $2 AND is_posted
GROUP BY account_id`

func (q *Queries) GetAccountBalance(ctx context.Context, tenantID, accountID uuid.UUID) (AccountBalanceRow, error) {
	row := q.db.QueryRow(ctx, getAccountBalanceSQL, toPgUUID(tenantID), toPgUUID(accountID))
	var b AccountBalanceRow
	err := row.Scan(&b.AccountID, &b.DebitTotal, &b.CreditTotal)
	if err == ErrNoRows {
		return AccountBalanceRow{AccountID: toPgUUID(accountID)}, nil
	}
	return b, err
}

const listAccountBalancesSQL = `
SELECT account_id, coalesce(sum(debit_amount), 0), coalesce(sum(credit_amount), 0)
FROM ledger_entries WHERE tenant_id = $1 AND is_posted
GROUP BY account_id`

func (q *Queries) ListAccountBalances(ctx context.Context, tenantID uuid.UUID) ([]AccountBalanceRow, error) {
	rows, err := q.db.Query(ctx, listAccountBalancesSQL, toPgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AccountBalanceRow
	for rows.Next() {
		var b AccountBalanceRow
		if err := rows.Scan(&b.AccountID, &b.DebitTotal, &b.CreditTotal); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanAccount(row rowScanner) (AccountRow, error) {
	var a AccountRow
	err := row.Scan(&a.ID, &a.TenantID, &a.AccountNumber, &a.Name, &a.Type, &a.Subtype,
		&a.ParentAccountID, &a.Description, &a.IsSystemAccount, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
