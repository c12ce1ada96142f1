package api

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/core/internal/domain"
)

func TestToPaymentParams_Valid(t *testing.T) {
	customerID := uuid.New().String()
	invoiceID := uuid.New().String()
	depositAccount := uuid.New().String()

	req := paymentRequest{
		CustomerID:         customerID,
		PaymentDate:        "2026-03-01",
		Method:             "check",
		DepositToAccountID: &depositAccount,
		Amount:             "500.00",
		Applications: []paymentApplicationRequest{
			{InvoiceID: invoiceID, Amount: "500.00"},
		},
	}

	params, err := toPaymentParams(req)
	require.NoError(t, err)
	assert.Equal(t, customerID, params.CustomerID.String())
	assert.Equal(t, domain.PaymentMethod("check"), params.Method)
	require.NotNil(t, params.DepositToAccountID)
	assert.Equal(t, depositAccount, params.DepositToAccountID.String())
	require.Len(t, params.Applications, 1)
	assert.Equal(t, invoiceID, params.Applications[0].InvoiceID.String())
	assert.True(t, params.Applications[0].Amount.Equal(mustDecimal("500.00")))
}

func TestToPaymentParams_MalformedAmount(t *testing.T) {
	req := paymentRequest{
		CustomerID:  uuid.New().String(),
		PaymentDate: "2026-03-01",
		Method:      "cash",
		Amount:      "not-a-number",
		Applications: []paymentApplicationRequest{
			{InvoiceID: uuid.New().String(), Amount: "10.00"},
		},
	}
	_, err := toPaymentParams(req)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestToPaymentParams_MalformedApplicationInvoiceID(t *testing.T) {
	req := paymentRequest{
		CustomerID:  uuid.New().String(),
		PaymentDate: "2026-03-01",
		Method:      "cash",
		Amount:      "10.00",
		Applications: []paymentApplicationRequest{
			{InvoiceID: "not-a-uuid", Amount: "10.00"},
		},
	}
	_, err := toPaymentParams(req)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestToPaymentParams_NoDepositAccountLeavesNil(t *testing.T) {
	req := paymentRequest{
		CustomerID:  uuid.New().String(),
		PaymentDate: "2026-03-01",
		Method:      "cash",
		Amount:      "10.00",
		Applications: []paymentApplicationRequest{
			{InvoiceID: uuid.New().String(), Amount: "10.00"},
		},
	}
	params, err := toPaymentParams(req)
	require.NoError(t, err)
	assert.Nil(t, params.DepositToAccountID)
}
