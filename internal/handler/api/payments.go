package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/service"
)

// PaymentHandler exposes AR cash receipt operations.
type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type paymentApplicationRequest struct {
	InvoiceID string `json:"invoice_id" validate:"required,uuid"`
	Amount    string `json:"amount" validate:"required"`
}

type paymentRequest struct {
	CustomerID         string                       `json:"customer_id" validate:"required,uuid"`
	PaymentDate        string                       `json:"payment_date" validate:"required"`
	Method             string                       `json:"method" validate:"required"`
	DepositToAccountID *string                      `json:"deposit_to_account_id"`
	Memo               string                       `json:"memo"`
	Amount             string                       `json:"amount" validate:"required"`
	Applications       []paymentApplicationRequest  `json:"applications" validate:"required,min=1,dive"`
}

func toPaymentParams(req paymentRequest) (service.PaymentParams, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return service.PaymentParams{}, domain.Invalid("api.toPaymentParams", "customer_id must be a valid uuid")
	}
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return service.PaymentParams{}, domain.Invalid("api.toPaymentParams", "payment_date must be YYYY-MM-DD")
	}
	depositToAccountID, err := parseOptionalUUID(req.DepositToAccountID)
	if err != nil {
		return service.PaymentParams{}, err
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return service.PaymentParams{}, domain.Invalid("api.toPaymentParams", "amount must be a decimal string")
	}

	applications := make([]service.PaymentApplicationParams, 0, len(req.Applications))
	for _, a := range req.Applications {
		invoiceID, err := uuid.Parse(a.InvoiceID)
		if err != nil {
			return service.PaymentParams{}, domain.Invalid("api.toPaymentParams", "applications.invoice_id must be a valid uuid")
		}
		appAmount, err := decimal.NewFromString(a.Amount)
		if err != nil {
			return service.PaymentParams{}, domain.Invalid("api.toPaymentParams", "applications.amount must be a decimal string")
		}
		applications = append(applications, service.PaymentApplicationParams{InvoiceID: invoiceID, Amount: appAmount})
	}

	return service.PaymentParams{
		CustomerID:         customerID,
		PaymentDate:        paymentDate,
		Method:             domain.PaymentMethod(req.Method),
		DepositToAccountID: depositToAccountID,
		Memo:               req.Memo,
		Amount:             amount,
		Applications:       applications,
	}, nil
}

func (h *PaymentHandler) Create(c echo.Context) error {
	var req paymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	params, err := toPaymentParams(req)
	if err != nil {
		return err
	}
	payment, err := h.payments.Create(c.Request().Context(), principal(c).TenantID, params)
	if err != nil {
		return err
	}
	return created(c, payment)
}

func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	payment, err := h.payments.Get(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, payment)
}

func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.payments.List(c.Request().Context(), principal(c).TenantID)
	if err != nil {
		return err
	}
	return ok(c, payments)
}

func (h *PaymentHandler) Void(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	payment, err := h.payments.Void(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, payment)
}
