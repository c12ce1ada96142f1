package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is an optional catalog entry referenced by invoice/bill line
// items. It carries a default unit price and the accounts a line should
// post to when the product is selected, so document services do not need
// to ask the caller for an account id on every line.
type Product struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	Name              string
	Description       string
	DefaultUnitPrice  Money
	IncomeAccountID   *uuid.UUID // revenue account for invoice lines
	IsStocked         bool
	InventoryAccountID *uuid.UUID // asset account, stocked items only
	ExpenseAccountID   *uuid.UUID // COGS account, stocked items only
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ErrProductNotFound is returned when a product lookup misses within the
// tenant.
var ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "product not found"}
