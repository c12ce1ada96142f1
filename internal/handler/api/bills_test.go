package api

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/core/internal/domain"
)

func TestToBillParams_Valid(t *testing.T) {
	vendorID := uuid.New().String()

	req := billRequest{
		VendorID: vendorID,
		BillDate: "2026-06-01",
		DueDate:  "2026-07-01",
		Memo:     "Monthly supply order",
		LineItems: []lineItemRequest{
			{Description: "Beans", Quantity: "10", UnitPrice: "9.50"},
		},
	}

	params, err := toBillParams(req)
	require.NoError(t, err)
	assert.Equal(t, vendorID, params.VendorID.String())
	require.Len(t, params.LineItems, 1)
	assert.True(t, params.LineItems[0].Quantity.Equal(mustDecimal("10")))
	assert.True(t, params.LineItems[0].UnitPrice.Equal(mustDecimal("9.50")))
}

func TestToBillParams_InvalidVendorID(t *testing.T) {
	req := billRequest{
		VendorID:  "not-a-uuid",
		BillDate:  "2026-06-01",
		DueDate:   "2026-07-01",
		LineItems: []lineItemRequest{{Quantity: "1", UnitPrice: "1.00"}},
	}
	_, err := toBillParams(req)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestToBillParams_PropagatesLineItemErrors(t *testing.T) {
	req := billRequest{
		VendorID:  uuid.New().String(),
		BillDate:  "2026-06-01",
		DueDate:   "2026-07-01",
		LineItems: []lineItemRequest{{Quantity: "1", UnitPrice: "garbage"}},
	}
	_, err := toBillParams(req)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
