package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/service"
)

// VendorPaymentHandler exposes AP cash disbursement operations.
type VendorPaymentHandler struct {
	vendorPayments service.VendorPaymentService
}

func NewVendorPaymentHandler(vendorPayments service.VendorPaymentService) *VendorPaymentHandler {
	return &VendorPaymentHandler{vendorPayments: vendorPayments}
}

type vendorPaymentApplicationRequest struct {
	BillID string `json:"bill_id" validate:"required,uuid"`
	Amount string `json:"amount" validate:"required"`
}

type vendorPaymentRequest struct {
	VendorID         string                            `json:"vendor_id" validate:"required,uuid"`
	PaymentDate      string                            `json:"payment_date" validate:"required"`
	Method           string                            `json:"method" validate:"required"`
	PayFromAccountID *string                           `json:"pay_from_account_id"`
	Memo             string                            `json:"memo"`
	Amount           string                            `json:"amount" validate:"required"`
	Applications     []vendorPaymentApplicationRequest `json:"applications" validate:"required,min=1,dive"`
}

func toVendorPaymentParams(req vendorPaymentRequest) (service.VendorPaymentParams, error) {
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return service.VendorPaymentParams{}, domain.Invalid("api.toVendorPaymentParams", "vendor_id must be a valid uuid")
	}
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return service.VendorPaymentParams{}, domain.Invalid("api.toVendorPaymentParams", "payment_date must be YYYY-MM-DD")
	}
	payFromAccountID, err := parseOptionalUUID(req.PayFromAccountID)
	if err != nil {
		return service.VendorPaymentParams{}, err
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return service.VendorPaymentParams{}, domain.Invalid("api.toVendorPaymentParams", "amount must be a decimal string")
	}

	applications := make([]service.VendorPaymentApplicationParams, 0, len(req.Applications))
	for _, a := range req.Applications {
		billID, err := uuid.Parse(a.BillID)
		if err != nil {
			return service.VendorPaymentParams{}, domain.Invalid("api.toVendorPaymentParams", "applications.bill_id must be a valid uuid")
		}
		appAmount, err := decimal.NewFromString(a.Amount)
		if err != nil {
			return service.VendorPaymentParams{}, domain.Invalid("api.toVendorPaymentParams", "applications.amount must be a decimal string")
		}
		applications = append(applications, service.VendorPaymentApplicationParams{BillID: billID, Amount: appAmount})
	}

	return service.VendorPaymentParams{
		VendorID:         vendorID,
		PaymentDate:      paymentDate,
		Method:           domain.PaymentMethod(req.Method),
		PayFromAccountID: payFromAccountID,
		Memo:             req.Memo,
		Amount:           amount,
		Applications:     applications,
	}, nil
}

func (h *VendorPaymentHandler) Create(c echo.Context) error {
	var req vendorPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	params, err := toVendorPaymentParams(req)
	if err != nil {
		return err
	}
	payment, err := h.vendorPayments.Create(c.Request().Context(), principal(c).TenantID, params)
	if err != nil {
		return err
	}
	return created(c, payment)
}

func (h *VendorPaymentHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	payment, err := h.vendorPayments.Get(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, payment)
}

func (h *VendorPaymentHandler) List(c echo.Context) error {
	payments, err := h.vendorPayments.List(c.Request().Context(), principal(c).TenantID)
	if err != nil {
		return err
	}
	return ok(c, payments)
}

func (h *VendorPaymentHandler) Void(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	payment, err := h.vendorPayments.Void(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, payment)
}
