package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is the root isolation boundary. Every other row in the system
// carries a tenant id and is filtered by it on every access; a Tenant is
// created once and never deleted while it owns any document.
type Tenant struct {
	ID                   uuid.UUID
	Name                 string
	BaseCurrency         string // 3-letter ISO, e.g. "USD"
	FiscalYearStartMonth int    // 1..12
	Timezone             string
	CreatedAt            time.Time
}

// Sentinel errors for tenant lookups.
var (
	ErrTenantNotFound = &Error{Code: ENOTFOUND, Message: "tenant not found"}
)
