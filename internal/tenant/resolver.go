package tenant

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

// Lookup resolves a tenant by id. The auth middleware calls it once per
// request, after decoding the bearer token's tenant claim, so a token
// for a tenant that no longer exists is rejected at the edge rather than
// surfacing as a confusing not-found deeper in a handler.
type Lookup interface {
	GetTenant(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

// DBLookup implements Lookup against the repository layer.
type DBLookup struct {
	repo TenantRepository
}

// TenantRepository is the subset of the repository layer DBLookup needs;
// kept narrow so this package does not import the full repository.Querier
// surface.
type TenantRepository interface {
	GetTenantByID(ctx context.Context, id uuid.UUID) (repository.TenantRow, error)
}

// NewDBLookup builds a DBLookup over repo.
func NewDBLookup(repo TenantRepository) *DBLookup {
	return &DBLookup{repo: repo}
}

// GetTenant resolves a tenant by id, translating a repository miss into
// domain.ErrTenantNotFound.
func (l *DBLookup) GetTenant(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	row, err := l.repo.GetTenantByID(ctx, id)
	if err != nil {
		return nil, domain.ErrTenantNotFound
	}
	t := domain.Tenant{
		ID:                   uuid.UUID(row.ID.Bytes),
		Name:                 row.Name,
		BaseCurrency:         row.BaseCurrency,
		FiscalYearStartMonth: int(row.FiscalYearStartMonth),
		Timezone:             row.Timezone,
		CreatedAt:            row.CreatedAt.Time,
	}
	return &t, nil
}

var _ Lookup = (*DBLookup)(nil)
