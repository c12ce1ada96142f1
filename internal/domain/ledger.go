package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType identifies the document class that produced a group of
// ledger entries. It is stored alongside SourceID so a ledger entry can be
// traced back to the document that created it without a join on six
// different tables.
type TransactionType string

const (
	TransactionTypeInvoice         TransactionType = "invoice"
	TransactionTypeBill            TransactionType = "bill"
	TransactionTypePayment         TransactionType = "payment"
	TransactionTypeVendorPayment   TransactionType = "vendor_payment"
	TransactionTypeExpense         TransactionType = "expense"
	TransactionTypeJournalEntry    TransactionType = "journal_entry"
	TransactionTypeOpeningBalance  TransactionType = "opening_balance"
	TransactionTypeInvoiceReversal TransactionType = "invoice_reversal"
	TransactionTypeBillReversal    TransactionType = "bill_reversal"
	TransactionTypePaymentReversal TransactionType = "payment_reversal"
	TransactionTypeVendorPaymentReversal TransactionType = "vendor_payment_reversal"
	TransactionTypeExpenseReversal       TransactionType = "expense_reversal"
	TransactionTypeJournalEntryReversal  TransactionType = "journal_entry_reversal"
)

// LedgerEntry is one row of the immutable, append-only general ledger. A
// posted document produces two or more of these, with debits and credits
// summing to zero across the group sharing (TenantID, TransactionType,
// SourceID). Entries are never updated or deleted; a void is a new group
// of entries with signs reversed.
type LedgerEntry struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	AccountID       uuid.UUID
	TransactionType TransactionType
	SourceID        uuid.UUID // the document (invoice, bill, ...) this entry belongs to
	EntryDate       time.Time
	Description     string
	DebitAmount     Money // zero unless this is the debit side
	CreditAmount    Money // zero unless this is the credit side
	IsPosted        bool  // always true; kept for schema parity with the original table design
	CreatedAt       time.Time
}

// PostingGroup is a balanced set of ledger entries produced by posting a
// single document. Engine.Post validates the group before persisting it.
type PostingGroup struct {
	TenantID        uuid.UUID
	TransactionType TransactionType
	SourceID        uuid.UUID
	EntryDate       time.Time
	Description     string
	Lines           []PostingLine
}

// PostingLine is one side of a PostingGroup before it is assigned an ID.
type PostingLine struct {
	AccountID    uuid.UUID
	DebitAmount  Money
	CreditAmount Money
	Description  string
}

// Domain errors for the posting engine.
var (
	ErrUnbalancedPosting = &Error{Code: EINVALID, Message: "debits and credits do not balance"}
	ErrEmptyPosting      = &Error{Code: EINVALID, Message: "a posting group must have at least two lines"}
	ErrMixedSidedLine    = &Error{Code: EINVALID, Message: "a posting line must have exactly one non-zero side"}
	ErrLedgerEntryNotFound = &Error{Code: ENOTFOUND, Message: "ledger entry not found"}
)
