package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

// TaxRateService manages the named jurisdiction rates line items reference.
type TaxRateService interface {
	Create(ctx context.Context, tenantID uuid.UUID, name string, rate decimal.Decimal) (domain.TaxRate, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (domain.TaxRate, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.TaxRate, error)
}

type taxRateService struct {
	repo repository.Querier
}

func NewTaxRateService(repo repository.Querier) TaxRateService {
	return &taxRateService{repo: repo}
}

func (s *taxRateService) Create(ctx context.Context, tenantID uuid.UUID, name string, rate decimal.Decimal) (domain.TaxRate, error) {
	if name == "" {
		return domain.TaxRate{}, domain.Invalid("taxrate.Create", "tax rate name is required")
	}
	if rate.IsNegative() {
		return domain.TaxRate{}, domain.Invalid("taxrate.Create", "tax rate cannot be negative")
	}
	row, err := s.repo.CreateTaxRate(ctx, repository.CreateTaxRateParams{TenantID: tenantID, Name: name, Rate: rate})
	if err != nil {
		return domain.TaxRate{}, domain.Internal(err, "taxrate.Create", "failed to create tax rate")
	}
	return toDomainTaxRate(row), nil
}

func (s *taxRateService) Get(ctx context.Context, tenantID, id uuid.UUID) (domain.TaxRate, error) {
	row, err := s.repo.GetTaxRate(ctx, tenantID, id)
	if err != nil {
		return domain.TaxRate{}, domain.ErrTaxRateNotFound
	}
	return toDomainTaxRate(row), nil
}

func (s *taxRateService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.TaxRate, error) {
	rows, err := s.repo.ListTaxRates(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "taxrate.List", "failed to list tax rates")
	}
	out := make([]domain.TaxRate, len(rows))
	for i, r := range rows {
		out[i] = toDomainTaxRate(r)
	}
	return out, nil
}

func toDomainTaxRate(row repository.TaxRateRow) domain.TaxRate {
	return domain.TaxRate{
		ID: uuid.UUID(row.ID.Bytes), TenantID: uuid.UUID(row.TenantID.Bytes),
		Name: row.Name, Rate: domain.FromNumeric(row.Rate), IsActive: row.IsActive,
		CreatedAt: row.CreatedAt.Time,
	}
}
