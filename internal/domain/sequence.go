package domain

import "github.com/google/uuid"

// DocumentClass is one of the six document classes a sequence, posting
// request, or service surface is keyed on.
type DocumentClass string

const (
	DocumentClassInvoice       DocumentClass = "invoice"
	DocumentClassBill          DocumentClass = "bill"
	DocumentClassPayment       DocumentClass = "payment"
	DocumentClassVendorPayment DocumentClass = "vendor_payment"
	DocumentClassExpense       DocumentClass = "expense"
	DocumentClassJournalEntry  DocumentClass = "journal_entry"
)

// DocumentSequence is the per (tenant, document_class) counter backing
// AllocateNumber. Numbers are monotonic but not guaranteed contiguous: a
// rolled-back transaction leaves a gap, by design.
type DocumentSequence struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	DocumentClass DocumentClass
	Prefix        string
	NextNumber    int64
	PaddingWidth  int
}

// DefaultSequences is the canonical set of sequences seeded alongside a
// tenant's default chart of accounts.
var DefaultSequences = []DocumentSequence{
	{DocumentClass: DocumentClassInvoice, Prefix: "INV-", NextNumber: 1, PaddingWidth: 4},
	{DocumentClass: DocumentClassBill, Prefix: "BILL-", NextNumber: 1, PaddingWidth: 4},
	{DocumentClass: DocumentClassPayment, Prefix: "PMT-", NextNumber: 1, PaddingWidth: 4},
	{DocumentClass: DocumentClassVendorPayment, Prefix: "VPMT-", NextNumber: 1, PaddingWidth: 4},
	{DocumentClass: DocumentClassExpense, Prefix: "EXP-", NextNumber: 1, PaddingWidth: 4},
	{DocumentClass: DocumentClassJournalEntry, Prefix: "JE-", NextNumber: 1, PaddingWidth: 4},
}
