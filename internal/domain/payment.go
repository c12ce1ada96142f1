package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a free-form categorization of how cash was received or
// paid; it does not affect posting, only reporting and memo text.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCheck    PaymentMethod = "check"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOther    PaymentMethod = "other"
)

// Payment is cash received from a customer, applied across one or more
// of their open invoices. Posting it debits the deposit-to account (a
// bank/cash asset) and credits Accounts Receivable for the full Amount;
// without a deposit-to account no ledger entries are written.
type Payment struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	CustomerID  uuid.UUID
	Number      string
	PaymentDate time.Time
	Method      PaymentMethod
	DepositToAccountID uuid.UUID
	Memo        string
	Amount      Money
	Applications []PaymentApplication
	CreatedAt   time.Time
	VoidedAt    *time.Time
}

// PaymentApplication is the amount of a Payment applied to one invoice.
// The sum of a payment's applications must not exceed its Amount, and
// each application must not exceed the target invoice's AmountDue.
type PaymentApplication struct {
	ID        uuid.UUID
	PaymentID uuid.UUID
	InvoiceID uuid.UUID
	Amount    Money
}

// Payment-related domain errors.
var (
	ErrPaymentNotFound           = &Error{Code: ENOTFOUND, Message: "payment not found"}
	ErrPaymentAlreadyVoid        = &Error{Code: EPRECONDITION, Message: "payment is already void"}
	ErrPaymentExceedsAmount      = &Error{Code: EPRECONDITION, Message: "sum of applications exceeds payment amount"}
	ErrApplicationExceedsAmountDue = &Error{Code: EPRECONDITION, Message: "application amount exceeds invoice amount due"}
	ErrInvoiceCustomerMismatch   = &Error{Code: EINVALID, Message: "invoice does not belong to the payment's customer"}
	ErrNoApplications            = &Error{Code: EINVALID, Message: "a payment must be applied to at least one invoice"}
)
