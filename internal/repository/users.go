package repository

import (
	"context"

	"github.com/google/uuid"
)

type CreateUserParams struct {
	TenantID     uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
}

const createUserSQL = `
INSERT INTO users (tenant_id, email, password_hash, first_name, last_name, role)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, tenant_id, email, password_hash, first_name, last_name, role, created_at`

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (UserRow, error) {
	row := q.db.QueryRow(ctx, createUserSQL, toPgUUID(arg.TenantID), arg.Email, arg.PasswordHash, arg.FirstName, arg.LastName, arg.Role)
	return scanUser(row)
}

const getUserByEmailSQL = `
SELECT id, tenant_id, email, password_hash, first_name, last_name, role, created_at
FROM users WHERE email = $1`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (UserRow, error) {
	row := q.db.QueryRow(ctx, getUserByEmailSQL, email)
	return scanUser(row)
}

const getUserByIDSQL = `
SELECT id, tenant_id, email, password_hash, first_name, last_name, role, created_at
FROM users WHERE tenant_id = $1 AND id = $2`

func (q *Queries) GetUserByID(ctx context.Context, tenantID, id uuid.UUID) (UserRow, error) {
	row := q.db.QueryRow(ctx, getUserByIDSQL, toPgUUID(tenantID), toPgUUID(id))
	return scanUser(row)
}

func scanUser(row rowScanner) (UserRow, error) {
	var u UserRow
	err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt)
	return u, err
}
