package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// The structs below mirror the columns of migrations/00001_init.sql one
// table at a time, in sqlc-generated shape: one row struct per table,
// pgtype wire types throughout, no behavior.

type TenantRow struct {
	ID                   pgtype.UUID
	Name                 string
	BaseCurrency         string
	FiscalYearStartMonth int16
	Timezone             string
	CreatedAt            pgtype.Timestamptz
}

type UserRow struct {
	ID           pgtype.UUID
	TenantID     pgtype.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	CreatedAt    pgtype.Timestamptz
}

type AccountRow struct {
	ID              pgtype.UUID
	TenantID        pgtype.UUID
	AccountNumber   string
	Name            string
	Type            string
	Subtype         string
	ParentAccountID pgtype.UUID
	Description     string
	IsSystemAccount bool
	IsActive        bool
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type AccountBalanceRow struct {
	AccountID   pgtype.UUID
	DebitTotal  pgtype.Numeric
	CreditTotal pgtype.Numeric
}

type CustomerRow struct {
	ID        pgtype.UUID
	TenantID  pgtype.UUID
	Name      string
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type VendorRow struct {
	ID        pgtype.UUID
	TenantID  pgtype.UUID
	Name      string
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type TaxRateRow struct {
	ID        pgtype.UUID
	TenantID  pgtype.UUID
	Name      string
	Rate      pgtype.Numeric
	IsActive  bool
	CreatedAt pgtype.Timestamptz
}

type ProductRow struct {
	ID                 pgtype.UUID
	TenantID           pgtype.UUID
	Name               string
	Description        string
	DefaultUnitPrice   pgtype.Numeric
	IncomeAccountID    pgtype.UUID
	IsStocked          bool
	InventoryAccountID pgtype.UUID
	ExpenseAccountID   pgtype.UUID
	IsActive           bool
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
}

type DocumentSequenceRow struct {
	ID            pgtype.UUID
	TenantID      pgtype.UUID
	DocumentClass string
	Prefix        string
	NextNumber    int64
	PaddingWidth  int16
}

type InvoiceRow struct {
	ID             pgtype.UUID
	TenantID       pgtype.UUID
	CustomerID     pgtype.UUID
	Number         string
	Status         string
	IssueDate      pgtype.Date
	DueDate        pgtype.Date
	Memo           string
	Subtotal       pgtype.Numeric
	DiscountAmount pgtype.Numeric
	ShippingAmount pgtype.Numeric
	TaxTotal       pgtype.Numeric
	Total          pgtype.Numeric
	AmountPaid     pgtype.Numeric
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
	PostedAt       pgtype.Timestamptz
	PaidAt         pgtype.Timestamptz
	VoidedAt       pgtype.Timestamptz
}

type InvoiceLineItemRow struct {
	ID              pgtype.UUID
	InvoiceID       pgtype.UUID
	ProductID       pgtype.UUID
	Description     string
	Quantity        pgtype.Numeric
	UnitPrice       pgtype.Numeric
	DiscountPercent pgtype.Numeric
	TaxRateID       pgtype.UUID
	AccountID       pgtype.UUID
	LineTotal       pgtype.Numeric
	SortOrder       int32
}

type BillRow struct {
	ID             pgtype.UUID
	TenantID       pgtype.UUID
	VendorID       pgtype.UUID
	Number         string
	Status         string
	BillDate       pgtype.Date
	DueDate        pgtype.Date
	Memo           string
	Subtotal       pgtype.Numeric
	DiscountAmount pgtype.Numeric
	ShippingAmount pgtype.Numeric
	TaxTotal       pgtype.Numeric
	Total          pgtype.Numeric
	AmountPaid     pgtype.Numeric
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
	PostedAt       pgtype.Timestamptz
	PaidAt         pgtype.Timestamptz
	VoidedAt       pgtype.Timestamptz
}

type BillLineItemRow struct {
	ID              pgtype.UUID
	BillID          pgtype.UUID
	ProductID       pgtype.UUID
	Description     string
	Quantity        pgtype.Numeric
	UnitPrice       pgtype.Numeric
	DiscountPercent pgtype.Numeric
	TaxRateID       pgtype.UUID
	AccountID       pgtype.UUID
	LineTotal       pgtype.Numeric
	SortOrder       int32
}

type PaymentRow struct {
	ID                 pgtype.UUID
	TenantID           pgtype.UUID
	CustomerID         pgtype.UUID
	Number             string
	PaymentDate        pgtype.Date
	Method             string
	DepositToAccountID pgtype.UUID
	Memo               string
	Amount             pgtype.Numeric
	CreatedAt          pgtype.Timestamptz
	VoidedAt           pgtype.Timestamptz
}

type PaymentApplicationRow struct {
	ID        pgtype.UUID
	PaymentID pgtype.UUID
	InvoiceID pgtype.UUID
	Amount    pgtype.Numeric
}

type VendorPaymentRow struct {
	ID               pgtype.UUID
	TenantID         pgtype.UUID
	VendorID         pgtype.UUID
	Number           string
	PaymentDate      pgtype.Date
	Method           string
	PayFromAccountID pgtype.UUID
	Memo             string
	Amount           pgtype.Numeric
	CreatedAt        pgtype.Timestamptz
	VoidedAt         pgtype.Timestamptz
}

type VendorPaymentApplicationRow struct {
	ID              pgtype.UUID
	VendorPaymentID pgtype.UUID
	BillID          pgtype.UUID
	Amount          pgtype.Numeric
}

type ExpenseRow struct {
	ID                pgtype.UUID
	TenantID          pgtype.UUID
	VendorID          pgtype.UUID
	Number            string
	ExpenseDate       pgtype.Date
	PaidFromAccountID pgtype.UUID
	Memo              string
	Total             pgtype.Numeric
	CreatedAt         pgtype.Timestamptz
	VoidedAt          pgtype.Timestamptz
}

type ExpenseLineItemRow struct {
	ID          pgtype.UUID
	ExpenseID   pgtype.UUID
	AccountID   pgtype.UUID
	Description string
	Amount      pgtype.Numeric
	SortOrder   int32
}

type JournalEntryRow struct {
	ID        pgtype.UUID
	TenantID  pgtype.UUID
	Number    string
	EntryDate pgtype.Date
	Memo      string
	CreatedAt pgtype.Timestamptz
	VoidedAt  pgtype.Timestamptz
}

type JournalEntryLineRow struct {
	ID             pgtype.UUID
	JournalEntryID pgtype.UUID
	AccountID      pgtype.UUID
	Description    string
	DebitAmount    pgtype.Numeric
	CreditAmount   pgtype.Numeric
	SortOrder      int32
}

type LedgerEntryRow struct {
	ID              pgtype.UUID
	TenantID        pgtype.UUID
	AccountID       pgtype.UUID
	TransactionType string
	SourceID        pgtype.UUID
	EntryDate       pgtype.Date
	Description     string
	DebitAmount     pgtype.Numeric
	CreditAmount    pgtype.Numeric
	IsPosted        bool
	CreatedAt       pgtype.Timestamptz
}
