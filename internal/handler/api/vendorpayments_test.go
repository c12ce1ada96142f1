package api

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/core/internal/domain"
)

func TestToVendorPaymentParams_Valid(t *testing.T) {
	vendorID := uuid.New().String()
	billID := uuid.New().String()

	req := vendorPaymentRequest{
		VendorID:    vendorID,
		PaymentDate: "2026-06-15",
		Method:      "transfer",
		Amount:      "250.00",
		Applications: []vendorPaymentApplicationRequest{
			{BillID: billID, Amount: "250.00"},
		},
	}

	params, err := toVendorPaymentParams(req)
	require.NoError(t, err)
	assert.Equal(t, vendorID, params.VendorID.String())
	assert.Equal(t, domain.PaymentMethod("transfer"), params.Method)
	require.Len(t, params.Applications, 1)
	assert.Equal(t, billID, params.Applications[0].BillID.String())
}

func TestToVendorPaymentParams_MalformedApplicationAmount(t *testing.T) {
	req := vendorPaymentRequest{
		VendorID:    uuid.New().String(),
		PaymentDate: "2026-06-15",
		Method:      "transfer",
		Amount:      "250.00",
		Applications: []vendorPaymentApplicationRequest{
			{BillID: uuid.New().String(), Amount: "garbage"},
		},
	}
	_, err := toVendorPaymentParams(req)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
