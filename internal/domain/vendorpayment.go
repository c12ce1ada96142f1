package domain

import (
	"time"

	"github.com/google/uuid"
)

// VendorPayment is cash paid to a vendor, applied across several of
// their open bills. Posting it credits the pay-from account (a bank/cash
// asset) and debits Accounts Payable for the total applied.
type VendorPayment struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	VendorID        uuid.UUID
	Number          string
	PaymentDate     time.Time
	Method          PaymentMethod
	PayFromAccountID uuid.UUID
	Memo            string
	Amount          Money
	Applications    []VendorPaymentApplication
	CreatedAt       time.Time
	VoidedAt        *time.Time
}

// VendorPaymentApplication is the amount of a VendorPayment applied to
// one bill.
type VendorPaymentApplication struct {
	ID              uuid.UUID
	VendorPaymentID uuid.UUID
	BillID          uuid.UUID
	Amount          Money
}

// VendorPayment-related domain errors.
var (
	ErrVendorPaymentNotFound       = &Error{Code: ENOTFOUND, Message: "vendor payment not found"}
	ErrVendorPaymentAlreadyVoid    = &Error{Code: EPRECONDITION, Message: "vendor payment is already void"}
	ErrVendorPaymentExceedsAmount  = &Error{Code: EPRECONDITION, Message: "sum of applications exceeds vendor payment amount"}
	ErrApplicationExceedsBillDue   = &Error{Code: EPRECONDITION, Message: "application amount exceeds bill amount due"}
	ErrBillVendorMismatch          = &Error{Code: EINVALID, Message: "bill does not belong to the vendor payment's vendor"}
	ErrVendorNoApplications        = &Error{Code: EINVALID, Message: "a vendor payment must be applied to at least one bill"}
)
