package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

// CustomerService manages AR counterparties.
type CustomerService interface {
	Create(ctx context.Context, tenantID uuid.UUID, params PartyParams) (domain.Customer, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Customer, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.Customer, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, params PartyParams) (domain.Customer, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// VendorService manages AP counterparties.
type VendorService interface {
	Create(ctx context.Context, tenantID uuid.UUID, params PartyParams) (domain.Vendor, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Vendor, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.Vendor, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, params PartyParams) (domain.Vendor, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// PartyParams is the shared field set for creating or updating a
// customer or vendor; both are identical counterparty records scoped to
// opposite sides of the ledger.
type PartyParams struct {
	Name     string
	Email    string
	Phone    string
	IsActive bool
}

type customerService struct {
	repo repository.Querier
}

func NewCustomerService(repo repository.Querier) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, tenantID uuid.UUID, params PartyParams) (domain.Customer, error) {
	if params.Name == "" {
		return domain.Customer{}, domain.Invalid("customer.Create", "customer name is required")
	}
	row, err := s.repo.CreateCustomer(ctx, repository.CreateCustomerParams{
		TenantID: tenantID, Name: params.Name, Email: params.Email, Phone: params.Phone,
	})
	if err != nil {
		return domain.Customer{}, domain.Internal(err, "customer.Create", "failed to create customer")
	}
	return toDomainCustomer(row), nil
}

func (s *customerService) Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Customer, error) {
	row, err := s.repo.GetCustomer(ctx, tenantID, id)
	if err != nil {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return toDomainCustomer(row), nil
}

func (s *customerService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Customer, error) {
	rows, err := s.repo.ListCustomers(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "customer.List", "failed to list customers")
	}
	out := make([]domain.Customer, len(rows))
	for i, r := range rows {
		out[i] = toDomainCustomer(r)
	}
	return out, nil
}

func (s *customerService) Update(ctx context.Context, tenantID, id uuid.UUID, params PartyParams) (domain.Customer, error) {
	row, err := s.repo.UpdateCustomer(ctx, repository.UpdateCustomerParams{
		TenantID: tenantID, ID: id, Name: params.Name, Email: params.Email, Phone: params.Phone, IsActive: params.IsActive,
	})
	if err != nil {
		return domain.Customer{}, domain.Internal(err, "customer.Update", "failed to update customer")
	}
	return toDomainCustomer(row), nil
}

func (s *customerService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	has, err := s.repo.CustomerHasDocuments(ctx, tenantID, id)
	if err != nil {
		return domain.Internal(err, "customer.Delete", "failed to check referencing documents")
	}
	if has {
		return domain.ErrCustomerHasDocuments
	}
	if err := s.repo.DeleteCustomer(ctx, tenantID, id); err != nil {
		return domain.Internal(err, "customer.Delete", "failed to delete customer")
	}
	return nil
}

func toDomainCustomer(row repository.CustomerRow) domain.Customer {
	return domain.Customer{
		ID: uuid.UUID(row.ID.Bytes), TenantID: uuid.UUID(row.TenantID.Bytes),
		Name: row.Name, Email: row.Email, Phone: row.Phone, IsActive: row.IsActive,
		CreatedAt: row.CreatedAt.Time, UpdatedAt: row.UpdatedAt.Time,
	}
}

type vendorService struct {
	repo repository.Querier
}

func NewVendorService(repo repository.Querier) VendorService {
	return &vendorService{repo: repo}
}

func (s *vendorService) Create(ctx context.Context, tenantID uuid.UUID, params PartyParams) (domain.Vendor, error) {
	if params.Name == "" {
		return domain.Vendor{}, domain.Invalid("vendor.Create", "vendor name is required")
	}
	row, err := s.repo.CreateVendor(ctx, repository.CreateVendorParams{
		TenantID: tenantID, Name: params.Name, Email: params.Email, Phone: params.Phone,
	})
	if err != nil {
		return domain.Vendor{}, domain.Internal(err, "vendor.Create", "failed to create vendor")
	}
	return toDomainVendor(row), nil
}

func (s *vendorService) Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Vendor, error) {
	row, err := s.repo.GetVendor(ctx, tenantID, id)
	if err != nil {
		return domain.Vendor{}, domain.ErrVendorNotFound
	}
	return toDomainVendor(row), nil
}

func (s *vendorService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Vendor, error) {
	rows, err := s.repo.ListVendors(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "vendor.List", "failed to list vendors")
	}
	out := make([]domain.Vendor, len(rows))
	for i, r := range rows {
		out[i] = toDomainVendor(r)
	}
	return out, nil
}

func (s *vendorService) Update(ctx context.Context, tenantID, id uuid.UUID, params PartyParams) (domain.Vendor, error) {
	row, err := s.repo.UpdateVendor(ctx, repository.UpdateVendorParams{
		TenantID: tenantID, ID: id, Name: params.Name, Email: params.Email, Phone: params.Phone, IsActive: params.IsActive,
	})
	if err != nil {
		return domain.Vendor{}, domain.Internal(err, "vendor.Update", "failed to update vendor")
	}
	return toDomainVendor(row), nil
}

func (s *vendorService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	has, err := s.repo.VendorHasDocuments(ctx, tenantID, id)
	if err != nil {
		return domain.Internal(err, "vendor.Delete", "failed to check referencing documents")
	}
	if has {
		return domain.ErrVendorHasDocuments
	}
	if err := s.repo.DeleteVendor(ctx, tenantID, id); err != nil {
		return domain.Internal(err, "vendor.Delete", "failed to delete vendor")
	}
	return nil
}

func toDomainVendor(row repository.VendorRow) domain.Vendor {
	return domain.Vendor{
		ID: uuid.UUID(row.ID.Bytes), TenantID: uuid.UUID(row.TenantID.Bytes),
		Name: row.Name, Email: row.Email, Phone: row.Phone, IsActive: row.IsActive,
		CreatedAt: row.CreatedAt.Time, UpdatedAt: row.UpdatedAt.Time,
	}
}
