// Package tenant provides the belt-and-braces guard that sits between
// domain.Principal (the authenticated caller's claimed scope) and the
// repository layer (which must never run a query without a tenant
// predicate). Every repository method takes a tenant id explicitly;
// handlers obtain it from the Principal through domain.RequirePrincipal.
// Guard reads the same id from context without panicking; no code in the
// module calls it.
package tenant

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
)

// Guard returns the tenant id of the request's Principal, or ErrNoTenant
// if the context has none. Unlike domain.RequireTenantID, it never
// panics: a missing Principal comes back as an error for the caller to
// propagate.
func Guard(ctx context.Context) (uuid.UUID, error) {
	p := domain.PrincipalFromContext(ctx)
	if p == nil {
		return uuid.Nil, ErrNoTenant
	}
	return p.TenantID, nil
}
