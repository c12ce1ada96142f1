package domain

import (
	"time"

	"github.com/google/uuid"
)

// PostingRequest is a closed set of variants, each corresponding to a
// document class, accepted by the posting engine. Exactly
// one of the fields below is non-nil on any given value; Kind identifies
// which.
type PostingRequest struct {
	Kind PostingKind

	InvoicePosting       *InvoicePosting
	PaymentPosting       *PaymentPosting
	BillPosting          *BillPosting
	VendorPaymentPosting *VendorPaymentPosting
	ExpensePosting       *ExpensePosting
	JournalEntryPosting  *JournalEntryPosting
	OpeningBalancePosting *OpeningBalancePosting
	VoidPosting          *VoidPosting
}

// PostingKind identifies which variant of PostingRequest is populated.
type PostingKind string

const (
	PostingKindInvoice        PostingKind = "invoice"
	PostingKindPayment        PostingKind = "payment"
	PostingKindBill           PostingKind = "bill"
	PostingKindVendorPayment  PostingKind = "vendor_payment"
	PostingKindExpense        PostingKind = "expense"
	PostingKindJournalEntry   PostingKind = "journal_entry"
	PostingKindOpeningBalance PostingKind = "opening_balance"
	PostingKindVoid           PostingKind = "void"
)

// InvoicePosting debits the AR account for Total, credits each revenue
// account for its RevenueLines contribution, and credits the tax
// account for TaxTotal when non-zero.
type InvoicePosting struct {
	InvoiceID       uuid.UUID
	ARAccountID     uuid.UUID
	RevenueLines    []AccountAmount // one per distinct revenue account implied by the line items
	TaxAccountID    uuid.UUID
	TaxTotal        Money
	Total           Money
	EntryDate       time.Time
	Description     string
}

// PaymentPosting debits DepositToAccountID and credits the tenant AR
// account for Amount. Created only when DepositToAccountID is set; a
// payment recorded without one leaves an unapplied-credit state with no
// ledger impact.
type PaymentPosting struct {
	PaymentID          uuid.UUID
	DepositToAccountID uuid.UUID
	ARAccountID        uuid.UUID
	Amount             Money
	EntryDate          time.Time
	Description        string
}

// BillPosting credits the AP account for Total and debits each
// expense/asset account implied by the line items for its contribution.
type BillPosting struct {
	BillID       uuid.UUID
	APAccountID  uuid.UUID
	ExpenseLines []AccountAmount
	TaxAccountID uuid.UUID
	TaxTotal     Money
	Total        Money
	EntryDate    time.Time
	Description  string
}

// VendorPaymentPosting debits the tenant AP account and credits
// PayFromAccountID for Amount.
type VendorPaymentPosting struct {
	VendorPaymentID  uuid.UUID
	PayFromAccountID uuid.UUID
	APAccountID      uuid.UUID
	Amount           Money
	EntryDate        time.Time
	Description      string
}

// ExpensePosting debits each of the expense's line accounts and credits
// PaidFromAccountID for Total. Only created when PaidFromAccountID is
// set.
type ExpensePosting struct {
	ExpenseID        uuid.UUID
	PaidFromAccountID uuid.UUID
	ExpenseLines     []AccountAmount
	Total            Money
	EntryDate        time.Time
	Description      string
}

// JournalEntryPosting posts one ledger entry per line, mirroring the
// line's debit or credit exactly.
type JournalEntryPosting struct {
	JournalEntryID uuid.UUID
	Lines          []PostingLine
	EntryDate      time.Time
	Description    string
}

// OpeningBalancePosting records a new account's opening balance against
// the tenant's Owner's Equity account. AccountNormalSide decides which
// side of the new account's entry carries Amount; the equity account
// always takes the opposite side, so the pair balances.
type OpeningBalancePosting struct {
	AccountID         uuid.UUID
	AccountNormalSide NormalSide
	EquityAccountID   uuid.UUID
	Amount            Money
	EntryDate         time.Time
	Description       string
}

// VoidPosting reverses a previously posted group of entries sharing
// (TransactionType, SourceID): it reposts every line with debit and
// credit swapped, under the document class's *Reversal transaction
// type, so reports filtering on is_posted see both the original and the
// compensating entries.
type VoidPosting struct {
	OriginalTransactionType TransactionType
	ReversalTransactionType TransactionType
	SourceID                uuid.UUID
	EntryDate               time.Time
	Description             string
}

// AccountAmount pairs an account with a contribution amount; used where a
// posting variant must credit or debit several distinct accounts derived
// from document line items.
type AccountAmount struct {
	AccountID uuid.UUID
	Amount    Money
}
