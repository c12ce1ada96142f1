package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a single-transaction cash outlay not routed through a
// vendor bill — a direct debit to one or more expense accounts and a
// credit to the paid-from account, posted on creation when a paid-from
// account is given; without one no ledger entries are written.
type Expense struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	VendorID      *uuid.UUID
	Number        string
	ExpenseDate   time.Time
	PaidFromAccountID uuid.UUID
	Memo          string
	LineItems     []ExpenseLineItem
	Total         Money
	CreatedAt     time.Time
	VoidedAt      *time.Time
}

// ExpenseLineItem is one line of an expense, debited to the given
// expense account.
type ExpenseLineItem struct {
	ID          uuid.UUID
	ExpenseID   uuid.UUID
	AccountID   uuid.UUID
	Description string
	Amount      Money
	SortOrder   int
}

// Expense-related domain errors.
var (
	ErrExpenseNotFound      = &Error{Code: ENOTFOUND, Message: "expense not found"}
	ErrExpenseNoLineItems   = &Error{Code: EINVALID, Message: "an expense must have at least one line item"}
	ErrExpenseAlreadyVoid   = &Error{Code: EPRECONDITION, Message: "expense is already void"}
)
