package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice. Transitions are
// enforced by the invoice service, not by the type itself: Draft ->
// Sent -> (PartiallyPaid -> )Paid, with Void reachable from any
// non-Void state.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusVoid          InvoiceStatus = "void"
)

// Invoice is an AR document. Posting it (on transition to Sent) debits
// Accounts Receivable and credits revenue (and Sales Tax Payable, if any
// line carries tax) for the full total; it does not move cash.
type Invoice struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	CustomerID      uuid.UUID
	Number          string
	Status          InvoiceStatus
	IssueDate       time.Time
	DueDate         time.Time
	Memo            string
	LineItems       []InvoiceLineItem
	Subtotal        Money
	DiscountAmount  Money
	ShippingAmount  Money
	TaxTotal        Money
	Total           Money
	AmountPaid      Money
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PostedAt        *time.Time
	PaidAt          *time.Time
	VoidedAt        *time.Time
}

// MinLineItemQuantity is the smallest quantity a line item may carry (4
// fractional digits).
var MinLineItemQuantity = decimal.New(1, -4)

// AmountDue is Total less AmountPaid.
func (i Invoice) AmountDue() Money {
	return i.Total.Sub(i.AmountPaid)
}

// InvoiceLineItem is one line of an invoice: a quantity of a product (or
// free-text description) at a unit price, with an optional tax rate.
type InvoiceLineItem struct {
	ID              uuid.UUID
	InvoiceID       uuid.UUID
	ProductID       *uuid.UUID
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       Money
	DiscountPercent decimal.Decimal
	TaxRateID       *uuid.UUID
	AccountID       uuid.UUID // revenue account this line posts to
	LineTotal       Money
	SortOrder       int
}

// Invoice-related domain errors.
var (
	ErrInvoiceNotFound           = &Error{Code: ENOTFOUND, Message: "invoice not found"}
	ErrInvoiceNoLineItems        = &Error{Code: EINVALID, Message: "an invoice must have at least one line item"}
	ErrInvoiceNotDraft           = &Error{Code: EPRECONDITION, Message: "only a draft invoice can be edited or sent"}
	ErrInvoiceAlreadyVoid        = &Error{Code: EPRECONDITION, Message: "invoice is already void"}
	ErrInvoiceHasPayments        = &Error{Code: EPRECONDITION, Message: "cannot void an invoice with applied payments; unapply them first"}
	ErrInvoiceCannotDeleteSent   = &Error{Code: EPRECONDITION, Message: "cannot delete an invoice that has been sent; void it instead"}
)
