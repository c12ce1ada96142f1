package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/service"
)

// BillHandler exposes AP document operations.
type BillHandler struct {
	bills service.BillService
}

func NewBillHandler(bills service.BillService) *BillHandler {
	return &BillHandler{bills: bills}
}

type billRequest struct {
	VendorID       string            `json:"vendor_id" validate:"required,uuid"`
	BillDate       string            `json:"bill_date" validate:"required"`
	DueDate        string            `json:"due_date" validate:"required"`
	Memo           string            `json:"memo"`
	DiscountAmount string            `json:"discount_amount"`
	ShippingAmount string            `json:"shipping_amount"`
	LineItems      []lineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

type billPayRequest struct {
	PaymentDate      string  `json:"payment_date" validate:"required"`
	Method           string  `json:"method" validate:"required"`
	PayFromAccountID *string `json:"pay_from_account_id"`
	Memo             string  `json:"memo"`
	Amount           string  `json:"amount" validate:"required"`
}

func toBillParams(req billRequest) (service.BillParams, error) {
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return service.BillParams{}, domain.Invalid("api.toBillParams", "vendor_id must be a valid uuid")
	}
	billDate, err := time.Parse("2006-01-02", req.BillDate)
	if err != nil {
		return service.BillParams{}, domain.Invalid("api.toBillParams", "bill_date must be YYYY-MM-DD")
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return service.BillParams{}, domain.Invalid("api.toBillParams", "due_date must be YYYY-MM-DD")
	}
	discountAmount, err := parseOptionalAmount("api.toBillParams", req.DiscountAmount)
	if err != nil {
		return service.BillParams{}, err
	}
	shippingAmount, err := parseOptionalAmount("api.toBillParams", req.ShippingAmount)
	if err != nil {
		return service.BillParams{}, err
	}

	lines := make([]service.BillLineItemParams, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		invoiceLine, err := toInvoiceLine(li)
		if err != nil {
			return service.BillParams{}, err
		}
		lines = append(lines, service.BillLineItemParams(invoiceLine))
	}

	return service.BillParams{
		VendorID:       vendorID,
		BillDate:       billDate,
		DueDate:        dueDate,
		Memo:           req.Memo,
		DiscountAmount: discountAmount,
		ShippingAmount: shippingAmount,
		LineItems:      lines,
	}, nil
}

func toBillPayParams(req billPayRequest) (service.BillPayParams, error) {
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return service.BillPayParams{}, domain.Invalid("api.toBillPayParams", "payment_date must be YYYY-MM-DD")
	}
	payFromAccountID, err := parseOptionalUUID(req.PayFromAccountID)
	if err != nil {
		return service.BillPayParams{}, err
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return service.BillPayParams{}, domain.Invalid("api.toBillPayParams", "amount must be a decimal string")
	}
	return service.BillPayParams{
		PaymentDate:      paymentDate,
		Method:           domain.PaymentMethod(req.Method),
		PayFromAccountID: payFromAccountID,
		Memo:             req.Memo,
		Amount:           amount,
	}, nil
}

func (h *BillHandler) Create(c echo.Context) error {
	var req billRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	params, err := toBillParams(req)
	if err != nil {
		return err
	}
	bill, err := h.bills.Create(c.Request().Context(), principal(c).TenantID, params)
	if err != nil {
		return err
	}
	return created(c, bill)
}

func (h *BillHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	bill, err := h.bills.Get(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, bill)
}

func (h *BillHandler) List(c echo.Context) error {
	vendorID, err := optionalQueryUUID(c, "vendor_id")
	if err != nil {
		return err
	}
	bills, err := h.bills.List(c.Request().Context(), principal(c).TenantID, vendorID, c.QueryParam("status"))
	if err != nil {
		return err
	}
	return ok(c, bills)
}

func (h *BillHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req billRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	params, err := toBillParams(req)
	if err != nil {
		return err
	}
	bill, err := h.bills.Update(c.Request().Context(), principal(c).TenantID, id, params)
	if err != nil {
		return err
	}
	return ok(c, bill)
}

// Approve handles POST /bills/:id/approve, posting the bill to the ledger.
func (h *BillHandler) Approve(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	bill, err := h.bills.Approve(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, bill)
}

// Pay handles POST /bills/:id/pay, the single-bill vendor payment
// shorthand.
func (h *BillHandler) Pay(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req billPayRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	params, err := toBillPayParams(req)
	if err != nil {
		return err
	}
	bill, err := h.bills.Pay(c.Request().Context(), principal(c).TenantID, id, params)
	if err != nil {
		return err
	}
	return ok(c, bill)
}

func (h *BillHandler) Void(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req voidRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	bill, err := h.bills.Void(c.Request().Context(), principal(c).TenantID, id, req.Reason)
	if err != nil {
		return err
	}
	return ok(c, bill)
}

func (h *BillHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.bills.Delete(c.Request().Context(), principal(c).TenantID, id); err != nil {
		return err
	}
	return noContent(c)
}
