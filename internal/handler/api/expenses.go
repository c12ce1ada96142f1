package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/service"
)

// ExpenseHandler exposes direct cash outlay operations.
type ExpenseHandler struct {
	expenses service.ExpenseService
}

func NewExpenseHandler(expenses service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type expenseLineItemRequest struct {
	AccountID   string `json:"account_id" validate:"required,uuid"`
	Description string `json:"description"`
	Amount      string `json:"amount" validate:"required"`
}

type expenseRequest struct {
	VendorID          *string                  `json:"vendor_id"`
	ExpenseDate       string                   `json:"expense_date" validate:"required"`
	PaidFromAccountID *string                  `json:"paid_from_account_id"`
	Memo              string                   `json:"memo"`
	LineItems         []expenseLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

func toExpenseParams(req expenseRequest) (service.ExpenseParams, error) {
	vendorID, err := parseOptionalUUID(req.VendorID)
	if err != nil {
		return service.ExpenseParams{}, err
	}
	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return service.ExpenseParams{}, domain.Invalid("api.toExpenseParams", "expense_date must be YYYY-MM-DD")
	}
	paidFromAccountID, err := parseOptionalUUID(req.PaidFromAccountID)
	if err != nil {
		return service.ExpenseParams{}, err
	}

	lines := make([]service.ExpenseLineItemParams, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		accountID, err := parseOptionalUUID(&li.AccountID)
		if err != nil {
			return service.ExpenseParams{}, err
		}
		amount, err := decimal.NewFromString(li.Amount)
		if err != nil {
			return service.ExpenseParams{}, domain.Invalid("api.toExpenseParams", "line_items.amount must be a decimal string")
		}
		lines = append(lines, service.ExpenseLineItemParams{
			AccountID:   *accountID,
			Description: li.Description,
			Amount:      amount,
		})
	}

	return service.ExpenseParams{
		VendorID:          vendorID,
		ExpenseDate:       expenseDate,
		PaidFromAccountID: paidFromAccountID,
		Memo:              req.Memo,
		LineItems:         lines,
	}, nil
}

func (h *ExpenseHandler) Create(c echo.Context) error {
	var req expenseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	params, err := toExpenseParams(req)
	if err != nil {
		return err
	}
	expense, err := h.expenses.Create(c.Request().Context(), principal(c).TenantID, params)
	if err != nil {
		return err
	}
	return created(c, expense)
}

func (h *ExpenseHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	expense, err := h.expenses.Get(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, expense)
}

func (h *ExpenseHandler) List(c echo.Context) error {
	expenses, err := h.expenses.List(c.Request().Context(), principal(c).TenantID)
	if err != nil {
		return err
	}
	return ok(c, expenses)
}

func (h *ExpenseHandler) Void(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req voidRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	expense, err := h.expenses.Void(c.Request().Context(), principal(c).TenantID, id, req.Reason)
	if err != nil {
		return err
	}
	return ok(c, expense)
}
