package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/service"
)

// InvoiceHandler exposes AR document operations.
type InvoiceHandler struct {
	invoices service.InvoiceService
}

func NewInvoiceHandler(invoices service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

type lineItemRequest struct {
	ProductID       *string `json:"product_id"`
	Description     string  `json:"description"`
	Quantity        string  `json:"quantity" validate:"required"`
	UnitPrice       string  `json:"unit_price" validate:"required"`
	DiscountPercent string  `json:"discount_percent"`
	TaxRateID       *string `json:"tax_rate_id"`
	AccountID       *string `json:"account_id"`
}

type invoiceRequest struct {
	CustomerID     string            `json:"customer_id" validate:"required,uuid"`
	IssueDate      string            `json:"issue_date" validate:"required"`
	DueDate        string            `json:"due_date" validate:"required"`
	Memo           string            `json:"memo"`
	DiscountAmount string            `json:"discount_amount"`
	ShippingAmount string            `json:"shipping_amount"`
	LineItems      []lineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

// parseOptionalAmount parses raw as a decimal string, treating "" as zero.
func parseOptionalAmount(op, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, domain.Invalid(op, "must be a decimal string")
	}
	return amount, nil
}

func toInvoiceParams(req invoiceRequest) (service.InvoiceParams, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return service.InvoiceParams{}, domain.Invalid("api.toInvoiceParams", "customer_id must be a valid uuid")
	}
	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		return service.InvoiceParams{}, domain.Invalid("api.toInvoiceParams", "issue_date must be YYYY-MM-DD")
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return service.InvoiceParams{}, domain.Invalid("api.toInvoiceParams", "due_date must be YYYY-MM-DD")
	}
	discountAmount, err := parseOptionalAmount("api.toInvoiceParams", req.DiscountAmount)
	if err != nil {
		return service.InvoiceParams{}, err
	}
	shippingAmount, err := parseOptionalAmount("api.toInvoiceParams", req.ShippingAmount)
	if err != nil {
		return service.InvoiceParams{}, err
	}

	lines := make([]service.InvoiceLineItemParams, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		line, err := toInvoiceLine(li)
		if err != nil {
			return service.InvoiceParams{}, err
		}
		lines = append(lines, line)
	}

	return service.InvoiceParams{
		CustomerID:     customerID,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		Memo:           req.Memo,
		DiscountAmount: discountAmount,
		ShippingAmount: shippingAmount,
		LineItems:      lines,
	}, nil
}

func toInvoiceLine(li lineItemRequest) (service.InvoiceLineItemParams, error) {
	productID, err := parseOptionalUUID(li.ProductID)
	if err != nil {
		return service.InvoiceLineItemParams{}, err
	}
	taxRateID, err := parseOptionalUUID(li.TaxRateID)
	if err != nil {
		return service.InvoiceLineItemParams{}, err
	}
	accountID, err := parseOptionalUUID(li.AccountID)
	if err != nil {
		return service.InvoiceLineItemParams{}, err
	}
	quantity, err := decimal.NewFromString(li.Quantity)
	if err != nil {
		return service.InvoiceLineItemParams{}, domain.Invalid("api.toInvoiceLine", "quantity must be a decimal string")
	}
	unitPrice, err := decimal.NewFromString(li.UnitPrice)
	if err != nil {
		return service.InvoiceLineItemParams{}, domain.Invalid("api.toInvoiceLine", "unit_price must be a decimal string")
	}
	discountPercent, err := parseOptionalAmount("api.toInvoiceLine", li.DiscountPercent)
	if err != nil {
		return service.InvoiceLineItemParams{}, err
	}
	return service.InvoiceLineItemParams{
		ProductID:       productID,
		Description:     li.Description,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		TaxRateID:       taxRateID,
		AccountID:       accountID,
	}, nil
}

func (h *InvoiceHandler) Create(c echo.Context) error {
	var req invoiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	params, err := toInvoiceParams(req)
	if err != nil {
		return err
	}
	invoice, err := h.invoices.Create(c.Request().Context(), principal(c).TenantID, params)
	if err != nil {
		return err
	}
	return created(c, invoice)
}

func (h *InvoiceHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	invoice, err := h.invoices.Get(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, invoice)
}

func (h *InvoiceHandler) List(c echo.Context) error {
	customerID, err := optionalQueryUUID(c, "customer_id")
	if err != nil {
		return err
	}
	invoices, err := h.invoices.List(c.Request().Context(), principal(c).TenantID, customerID, c.QueryParam("status"))
	if err != nil {
		return err
	}
	return ok(c, invoices)
}

func (h *InvoiceHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req invoiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	params, err := toInvoiceParams(req)
	if err != nil {
		return err
	}
	invoice, err := h.invoices.Update(c.Request().Context(), principal(c).TenantID, id, params)
	if err != nil {
		return err
	}
	return ok(c, invoice)
}

// Send handles POST /invoices/:id/send, posting the invoice to the ledger.
func (h *InvoiceHandler) Send(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	invoice, err := h.invoices.Send(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, invoice)
}

type voidRequest struct {
	Reason string `json:"reason"`
}

func (h *InvoiceHandler) Void(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req voidRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	invoice, err := h.invoices.Void(c.Request().Context(), principal(c).TenantID, id, req.Reason)
	if err != nil {
		return err
	}
	return ok(c, invoice)
}

func (h *InvoiceHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.invoices.Delete(c.Request().Context(), principal(c).TenantID, id); err != nil {
		return err
	}
	return noContent(c)
}
