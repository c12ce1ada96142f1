package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is an AR counterparty scoped to a tenant. Deletion is refused
// if any document references the customer; it is deactivated instead.
type Customer struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Vendor is an AP counterparty scoped to a tenant; same deletion contract
// as Customer.
type Vendor struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Party-related domain errors.
var (
	ErrCustomerNotFound    = &Error{Code: ENOTFOUND, Message: "customer not found"}
	ErrVendorNotFound      = &Error{Code: ENOTFOUND, Message: "vendor not found"}
	ErrCustomerHasDocuments = &Error{Code: EPRECONDITION, Message: "cannot delete a customer referenced by documents; deactivate instead"}
	ErrVendorHasDocuments   = &Error{Code: EPRECONDITION, Message: "cannot delete a vendor referenced by documents; deactivate instead"}
)
