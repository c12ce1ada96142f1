package api

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/core/internal/domain"
)

func TestToInvoiceParams_Valid(t *testing.T) {
	customerID := uuid.New().String()
	productID := uuid.New().String()

	req := invoiceRequest{
		CustomerID: customerID,
		IssueDate:  "2026-01-15",
		DueDate:    "2026-02-14",
		Memo:       "January services",
		LineItems: []lineItemRequest{
			{ProductID: &productID, Description: "Consulting", Quantity: "2", UnitPrice: "125.00"},
		},
	}

	params, err := toInvoiceParams(req)
	require.NoError(t, err)
	assert.Equal(t, customerID, params.CustomerID.String())
	require.Len(t, params.LineItems, 1)
	assert.True(t, params.LineItems[0].Quantity.Equal(mustDecimal("2")))
	assert.True(t, params.LineItems[0].UnitPrice.Equal(mustDecimal("125.00")))
	require.NotNil(t, params.LineItems[0].ProductID)
	assert.Equal(t, productID, params.LineItems[0].ProductID.String())
}

func TestToInvoiceParams_InvalidCustomerID(t *testing.T) {
	req := invoiceRequest{
		CustomerID: "not-a-uuid",
		IssueDate:  "2026-01-15",
		DueDate:    "2026-02-14",
		LineItems:  []lineItemRequest{{Quantity: "1", UnitPrice: "10.00"}},
	}
	_, err := toInvoiceParams(req)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestToInvoiceParams_MalformedDate(t *testing.T) {
	req := invoiceRequest{
		CustomerID: uuid.New().String(),
		IssueDate:  "01/15/2026",
		DueDate:    "2026-02-14",
		LineItems:  []lineItemRequest{{Quantity: "1", UnitPrice: "10.00"}},
	}
	_, err := toInvoiceParams(req)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestToInvoiceLine_MalformedUnitPrice(t *testing.T) {
	_, err := toInvoiceLine(lineItemRequest{Quantity: "1", UnitPrice: "not-a-number"})
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestToInvoiceLine_OptionalFieldsDefaultNil(t *testing.T) {
	line, err := toInvoiceLine(lineItemRequest{Description: "Flat fee", Quantity: "1", UnitPrice: "50.00"})
	require.NoError(t, err)
	assert.Nil(t, line.ProductID)
	assert.Nil(t, line.TaxRateID)
	assert.Nil(t, line.AccountID)
}
