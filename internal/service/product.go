package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

// ProductService manages the optional line-item catalog.
type ProductService interface {
	Create(ctx context.Context, tenantID uuid.UUID, params ProductParams) (domain.Product, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Product, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.Product, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, params ProductParams) (domain.Product, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type ProductParams struct {
	Name               string
	Description        string
	DefaultUnitPrice   decimal.Decimal
	IncomeAccountID    *uuid.UUID
	IsStocked          bool
	InventoryAccountID *uuid.UUID
	ExpenseAccountID   *uuid.UUID
	IsActive           bool
}

type productService struct {
	repo repository.Querier
}

func NewProductService(repo repository.Querier) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, tenantID uuid.UUID, params ProductParams) (domain.Product, error) {
	if params.Name == "" {
		return domain.Product{}, domain.Invalid("product.Create", "product name is required")
	}
	if params.IsStocked && params.InventoryAccountID == nil {
		return domain.Product{}, domain.Invalid("product.Create", "stocked products require an inventory account")
	}
	row, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		TenantID: tenantID, Name: params.Name, Description: params.Description,
		DefaultUnitPrice: params.DefaultUnitPrice, IncomeAccountID: params.IncomeAccountID,
		IsStocked: params.IsStocked, InventoryAccountID: params.InventoryAccountID, ExpenseAccountID: params.ExpenseAccountID,
	})
	if err != nil {
		return domain.Product{}, domain.Internal(err, "product.Create", "failed to create product")
	}
	return toDomainProduct(row), nil
}

func (s *productService) Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Product, error) {
	row, err := s.repo.GetProduct(ctx, tenantID, id)
	if err != nil {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return toDomainProduct(row), nil
}

func (s *productService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Product, error) {
	rows, err := s.repo.ListProducts(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "product.List", "failed to list products")
	}
	out := make([]domain.Product, len(rows))
	for i, r := range rows {
		out[i] = toDomainProduct(r)
	}
	return out, nil
}

func (s *productService) Update(ctx context.Context, tenantID, id uuid.UUID, params ProductParams) (domain.Product, error) {
	row, err := s.repo.UpdateProduct(ctx, repository.UpdateProductParams{
		TenantID: tenantID, ID: id, Name: params.Name, Description: params.Description,
		DefaultUnitPrice: params.DefaultUnitPrice, IsActive: params.IsActive,
	})
	if err != nil {
		return domain.Product{}, domain.Internal(err, "product.Update", "failed to update product")
	}
	return toDomainProduct(row), nil
}

func (s *productService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, tenantID, id); err != nil {
		return domain.Internal(err, "product.Delete", "failed to delete product")
	}
	return nil
}

func toDomainProduct(row repository.ProductRow) domain.Product {
	return domain.Product{
		ID: uuid.UUID(row.ID.Bytes), TenantID: uuid.UUID(row.TenantID.Bytes),
		Name: row.Name, Description: row.Description,
		DefaultUnitPrice:   domain.Money{Amount: domain.FromNumeric(row.DefaultUnitPrice), Currency: "USD"},
		IncomeAccountID:    uuidPtrFromPg(row.IncomeAccountID),
		IsStocked:          row.IsStocked,
		InventoryAccountID: uuidPtrFromPg(row.InventoryAccountID),
		ExpenseAccountID:   uuidPtrFromPg(row.ExpenseAccountID),
		IsActive:           row.IsActive,
		CreatedAt:          row.CreatedAt.Time,
		UpdatedAt:          row.UpdatedAt.Time,
	}
}
