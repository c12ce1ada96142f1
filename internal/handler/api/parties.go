package api

import (
	"github.com/labstack/echo/v4"

	"github.com/ledgerkeep/core/internal/service"
)

// CustomerHandler exposes AR counterparties.
type CustomerHandler struct {
	customers service.CustomerService
}

func NewCustomerHandler(customers service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// VendorHandler exposes AP counterparties.
type VendorHandler struct {
	vendors service.VendorService
}

func NewVendorHandler(vendors service.VendorService) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

type partyRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}

func (h *CustomerHandler) Create(c echo.Context) error {
	var req partyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	customer, err := h.customers.Create(c.Request().Context(), principal(c).TenantID, service.PartyParams{
		Name: req.Name, Email: req.Email, Phone: req.Phone, IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return created(c, customer)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.customers.Get(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, customer)
}

func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.customers.List(c.Request().Context(), principal(c).TenantID)
	if err != nil {
		return err
	}
	return ok(c, customers)
}

func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req partyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	customer, err := h.customers.Update(c.Request().Context(), principal(c).TenantID, id, service.PartyParams{
		Name: req.Name, Email: req.Email, Phone: req.Phone, IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return ok(c, customer)
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.customers.Delete(c.Request().Context(), principal(c).TenantID, id); err != nil {
		return err
	}
	return noContent(c)
}

func (h *VendorHandler) Create(c echo.Context) error {
	var req partyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	vendor, err := h.vendors.Create(c.Request().Context(), principal(c).TenantID, service.PartyParams{
		Name: req.Name, Email: req.Email, Phone: req.Phone, IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return created(c, vendor)
}

func (h *VendorHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	vendor, err := h.vendors.Get(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, vendor)
}

func (h *VendorHandler) List(c echo.Context) error {
	vendors, err := h.vendors.List(c.Request().Context(), principal(c).TenantID)
	if err != nil {
		return err
	}
	return ok(c, vendors)
}

func (h *VendorHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req partyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	vendor, err := h.vendors.Update(c.Request().Context(), principal(c).TenantID, id, service.PartyParams{
		Name: req.Name, Email: req.Email, Phone: req.Phone, IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return ok(c, vendor)
}

func (h *VendorHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.vendors.Delete(c.Request().Context(), principal(c).TenantID, id); err != nil {
		return err
	}
	return noContent(c)
}
