// Package domain provides core business types, the accounting entity model,
// and context helpers shared by every other package in the module.
//
// Context helpers centralize request-scoped data access, making tenant
// isolation bugs harder to write: handlers take the tenant id from the
// Principal that middleware placed on the context and pass it to service
// methods explicitly, rather than trusting a tenant id from the request.
package domain

import (
	"context"

	"github.com/google/uuid"
)

// Role is a principal's permission level within a tenant.
// Only tenant scoping is enforced today; Role is carried for future RBAC
// per spec's EFORBIDDEN reservation.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleAccountant Role = "accountant"
	RoleMember     Role = "member"
)

// Principal is the already-validated caller identity threaded through every
// operation. It is constructed once, by the auth adapter, from a verified
// bearer token, and never reconstructed from a request body.
type Principal struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Role     Role
}

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	principalContextKey contextKey = iota
	requestIDContextKey
)

// NewContextWithPrincipal returns a new context with the principal attached.
func NewContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext retrieves the principal from context.
// Returns nil if no principal is present.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey).(*Principal)
	return p
}

// RequirePrincipal retrieves the principal from context, panicking if not
// present. Use this in service/repository layers where a transaction that
// did not set the tenant scope must refuse to run rather than silently
// operate tenant-less. The panic is a bug signal — handlers behind the auth
// middleware always have a principal by the time a service method runs.
func RequirePrincipal(ctx context.Context) *Principal {
	p := PrincipalFromContext(ctx)
	if p == nil {
		panic("domain: principal required in context but not found")
	}
	return p
}

// TenantIDFromContext retrieves the tenant id from context.
// Returns uuid.Nil if no principal is present.
func TenantIDFromContext(ctx context.Context) uuid.UUID {
	if p := PrincipalFromContext(ctx); p != nil {
		return p.TenantID
	}
	return uuid.Nil
}

// RequireTenantID retrieves the tenant id from context, panicking if not
// present.
func RequireTenantID(ctx context.Context) uuid.UUID {
	return RequirePrincipal(ctx).TenantID
}

// IsAuthenticated returns true if there is a principal in context.
func IsAuthenticated(ctx context.Context) bool {
	return PrincipalFromContext(ctx) != nil
}

// --- Request ID context helpers ---

// NewContextWithRequestID returns a new context with the request id attached.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFromContext retrieves the request id from context.
// Returns empty string if no request id is present.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}
