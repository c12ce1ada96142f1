package domain

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a manual, freeform posting used for corrections and
// transactions with no dedicated document class (depreciation, accruals,
// opening balances). Unlike the other document classes, each line
// specifies its own debit or credit side directly.
type JournalEntry struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Number    string
	EntryDate time.Time
	Memo      string
	Lines     []JournalEntryLine
	CreatedAt time.Time
	VoidedAt  *time.Time
}

// JournalEntryLine is one side of a manual journal entry. Exactly one of
// DebitAmount/CreditAmount is non-zero.
type JournalEntryLine struct {
	ID           uuid.UUID
	JournalEntryID uuid.UUID
	AccountID    uuid.UUID
	Description  string
	DebitAmount  Money
	CreditAmount Money
	SortOrder    int
}

// JournalEntry-related domain errors.
var (
	ErrJournalEntryNotFound    = &Error{Code: ENOTFOUND, Message: "journal entry not found"}
	ErrJournalEntryTooFewLines = &Error{Code: EINVALID, Message: "a journal entry must have at least two lines"}
	ErrJournalEntryAlreadyVoid = &Error{Code: EPRECONDITION, Message: "journal entry is already void"}
)
