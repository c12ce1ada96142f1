package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillStatus is the lifecycle state of a vendor bill, mirroring
// InvoiceStatus on the AP side.
type BillStatus string

const (
	BillStatusDraft         BillStatus = "draft"
	BillStatusApproved      BillStatus = "approved"
	BillStatusPartiallyPaid BillStatus = "partially_paid"
	BillStatusPaid          BillStatus = "paid"
	BillStatusVoid          BillStatus = "void"
)

// Bill is an AP document. Posting it (on transition to Approved) credits
// Accounts Payable and debits expense/asset accounts for the full total.
type Bill struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	VendorID       uuid.UUID
	Number         string
	Status         BillStatus
	BillDate       time.Time
	DueDate        time.Time
	Memo           string
	LineItems      []BillLineItem
	Subtotal       Money
	DiscountAmount Money
	ShippingAmount Money
	TaxTotal       Money
	Total          Money
	AmountPaid     Money
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PostedAt       *time.Time
	PaidAt         *time.Time
	VoidedAt       *time.Time
}

// AmountDue is Total less AmountPaid.
func (b Bill) AmountDue() Money {
	return b.Total.Sub(b.AmountPaid)
}

// BillLineItem is one line of a bill: an expense or inventory account
// debited for a quantity at a unit cost.
type BillLineItem struct {
	ID              uuid.UUID
	BillID          uuid.UUID
	ProductID       *uuid.UUID
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       Money
	DiscountPercent decimal.Decimal
	TaxRateID       *uuid.UUID
	AccountID       uuid.UUID // expense/asset account this line posts to
	LineTotal       Money
	SortOrder       int
}

// Bill-related domain errors.
var (
	ErrBillNotFound         = &Error{Code: ENOTFOUND, Message: "bill not found"}
	ErrBillNoLineItems      = &Error{Code: EINVALID, Message: "a bill must have at least one line item"}
	ErrBillNotDraft         = &Error{Code: EPRECONDITION, Message: "only a draft bill can be edited or approved"}
	ErrBillNotPayable       = &Error{Code: EPRECONDITION, Message: "only an approved or partially paid bill can be paid"}
	ErrBillAlreadyVoid      = &Error{Code: EPRECONDITION, Message: "bill is already void"}
	ErrBillHasPayments      = &Error{Code: EPRECONDITION, Message: "cannot void a bill with applied payments; unapply them first"}
	ErrBillCannotDeleteApproved = &Error{Code: EPRECONDITION, Message: "cannot delete a bill that has been approved; void it instead"}
)
