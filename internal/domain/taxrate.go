package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRate is a tenant-scoped named rate referenced by invoice line items
// and booked to the tenant's Sales Tax Payable account, letting a tenant
// model more than one jurisdiction's rate rather than a single fixed
// percentage.
type TaxRate struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Rate      decimal.Decimal // e.g. 0.0725 for 7.25%
	IsActive  bool
	CreatedAt time.Time
}

// ErrTaxRateNotFound is returned when a tax rate lookup misses within the
// tenant.
var ErrTaxRateNotFound = &Error{Code: ENOTFOUND, Message: "tax rate not found"}
