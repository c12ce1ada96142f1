package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/service"
)

// AccountHandler exposes the chart of accounts.
type AccountHandler struct {
	accounts service.AccountService
}

func NewAccountHandler(accounts service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type createAccountRequest struct {
	AccountNumber   string  `json:"account_number"`
	Name            string  `json:"name" validate:"required"`
	Type            string  `json:"type" validate:"required"`
	Subtype         string  `json:"subtype"`
	ParentAccountID *string `json:"parent_account_id"`
	Description     string  `json:"description"`
	OpeningBalance  string  `json:"opening_balance"`
}

// Create handles POST /accounts.
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	parentID, err := parseOptionalUUID(req.ParentAccountID)
	if err != nil {
		return err
	}
	openingBalance := decimal.Zero
	if req.OpeningBalance != "" {
		openingBalance, err = decimal.NewFromString(req.OpeningBalance)
		if err != nil {
			return domain.Invalid("api.AccountHandler.Create", "opening_balance must be a decimal string")
		}
	}

	account, err := h.accounts.Create(c.Request().Context(), principal(c).TenantID, service.CreateAccountParams{
		AccountNumber:   req.AccountNumber,
		Name:            req.Name,
		Type:            domain.AccountType(req.Type),
		Subtype:         domain.AccountSubtype(req.Subtype),
		ParentAccountID: parentID,
		Description:     req.Description,
		OpeningBalance:  openingBalance,
	})
	if err != nil {
		return err
	}
	return created(c, account)
}

// Get handles GET /accounts/:id.
func (h *AccountHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	account, err := h.accounts.Get(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, account)
}

// List handles GET /accounts.
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accounts.List(c.Request().Context(), principal(c).TenantID)
	if err != nil {
		return err
	}
	return ok(c, accounts)
}

type updateAccountRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// Update handles PATCH /accounts/:id.
func (h *AccountHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req updateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.accounts.Update(c.Request().Context(), principal(c).TenantID, id, service.UpdateAccountParams{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return ok(c, account)
}

// Deactivate handles POST /accounts/:id/deactivate.
func (h *AccountHandler) Deactivate(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	account, err := h.accounts.Deactivate(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, account)
}

// Delete handles DELETE /accounts/:id.
func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.accounts.Delete(c.Request().Context(), principal(c).TenantID, id); err != nil {
		return err
	}
	return noContent(c)
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, domain.Invalid("api.parseOptionalUUID", "id must be a valid uuid")
	}
	return &id, nil
}
