package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is a tenant-scoped login identity. Credential verification and
// token issuance are adapter concerns; the core only ever consumes an
// already-validated Principal built from a User row.
type User struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	CreatedAt    time.Time
}

// AuthService registers tenants/users and issues bearer tokens. It is the
// one place password hashing and token issuance are exercised; everything
// downstream of login only ever sees an already-validated Principal.
type AuthService interface {
	// Register creates a new tenant (seeded with its default chart of
	// accounts and document sequences), its first user as owner, and
	// returns a bearer token for the new session.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login verifies email/password within a tenant-less lookup (email is
	// globally unique across tenants) and returns a bearer token.
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// RegisterParams contains parameters for registering a new tenant+user.
type RegisterParams struct {
	Email            string
	Password         string
	FirstName        string
	LastName         string
	OrganizationName string
}

// AuthResult is the response to a successful register/login.
type AuthResult struct {
	Token   string
	User    User
	Tenant  Tenant
}

// Auth-related domain errors.
var (
	ErrEmailInUse          = &Error{Code: ECONFLICT, Message: "an account with that email already exists"}
	ErrInvalidCredentials  = &Error{Code: EUNAUTHORIZED, Message: "invalid email or password"}
	ErrUserNotFound        = &Error{Code: ENOTFOUND, Message: "user not found"}
)
