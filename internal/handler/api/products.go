package api

import (
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/service"
)

// ProductHandler exposes the optional line-item catalog.
type ProductHandler struct {
	products service.ProductService
}

func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	Name               string  `json:"name" validate:"required"`
	Description        string  `json:"description"`
	DefaultUnitPrice   string  `json:"default_unit_price" validate:"required"`
	IncomeAccountID    *string `json:"income_account_id"`
	IsStocked          bool    `json:"is_stocked"`
	InventoryAccountID *string `json:"inventory_account_id"`
	ExpenseAccountID   *string `json:"expense_account_id"`
	IsActive           bool    `json:"is_active"`
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	params, err := toProductParams(req)
	if err != nil {
		return err
	}
	product, err := h.products.Create(c.Request().Context(), principal(c).TenantID, params)
	if err != nil {
		return err
	}
	return created(c, product)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.products.Get(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, product)
}

func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.List(c.Request().Context(), principal(c).TenantID)
	if err != nil {
		return err
	}
	return ok(c, products)
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	params, err := toProductParams(req)
	if err != nil {
		return err
	}
	product, err := h.products.Update(c.Request().Context(), principal(c).TenantID, id, params)
	if err != nil {
		return err
	}
	return ok(c, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.products.Delete(c.Request().Context(), principal(c).TenantID, id); err != nil {
		return err
	}
	return noContent(c)
}

func toProductParams(req productRequest) (service.ProductParams, error) {
	price, err := decimal.NewFromString(req.DefaultUnitPrice)
	if err != nil {
		return service.ProductParams{}, domain.Invalid("api.toProductParams", "default_unit_price must be a decimal string")
	}
	incomeID, err := parseOptionalUUID(req.IncomeAccountID)
	if err != nil {
		return service.ProductParams{}, err
	}
	inventoryID, err := parseOptionalUUID(req.InventoryAccountID)
	if err != nil {
		return service.ProductParams{}, err
	}
	expenseID, err := parseOptionalUUID(req.ExpenseAccountID)
	if err != nil {
		return service.ProductParams{}, err
	}
	return service.ProductParams{
		Name:               req.Name,
		Description:        req.Description,
		DefaultUnitPrice:   price,
		IncomeAccountID:    incomeID,
		IsStocked:          req.IsStocked,
		InventoryAccountID: inventoryID,
		ExpenseAccountID:   expenseID,
		IsActive:           req.IsActive,
	}, nil
}
