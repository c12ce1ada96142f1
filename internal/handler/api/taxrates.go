package api

import (
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/service"
)

// TaxRateHandler exposes the tenant's named sales tax rates.
type TaxRateHandler struct {
	taxRates service.TaxRateService
}

func NewTaxRateHandler(taxRates service.TaxRateService) *TaxRateHandler {
	return &TaxRateHandler{taxRates: taxRates}
}

type createTaxRateRequest struct {
	Name string `json:"name" validate:"required"`
	Rate string `json:"rate" validate:"required"`
}

func (h *TaxRateHandler) Create(c echo.Context) error {
	var req createTaxRateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return domain.Invalid("api.TaxRateHandler.Create", "rate must be a decimal string")
	}
	taxRate, err := h.taxRates.Create(c.Request().Context(), principal(c).TenantID, req.Name, rate)
	if err != nil {
		return err
	}
	return created(c, taxRate)
}

func (h *TaxRateHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	taxRate, err := h.taxRates.Get(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, taxRate)
}

func (h *TaxRateHandler) List(c echo.Context) error {
	taxRates, err := h.taxRates.List(c.Request().Context(), principal(c).TenantID)
	if err != nil {
		return err
	}
	return ok(c, taxRates)
}
