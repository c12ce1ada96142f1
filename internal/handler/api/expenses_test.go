package api

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/core/internal/domain"
)

func TestToExpenseParams_Valid(t *testing.T) {
	vendorID := uuid.New().String()
	accountID := uuid.New().String()

	req := expenseRequest{
		VendorID:    &vendorID,
		ExpenseDate: "2026-05-10",
		Memo:        "Office supplies",
		LineItems: []expenseLineItemRequest{
			{AccountID: accountID, Description: "Paper", Amount: "42.50"},
		},
	}

	params, err := toExpenseParams(req)
	require.NoError(t, err)
	require.NotNil(t, params.VendorID)
	assert.Equal(t, vendorID, params.VendorID.String())
	require.Len(t, params.LineItems, 1)
	assert.Equal(t, accountID, params.LineItems[0].AccountID.String())
	assert.True(t, params.LineItems[0].Amount.Equal(mustDecimal("42.50")))
}

func TestToExpenseParams_NoVendorLeavesNil(t *testing.T) {
	req := expenseRequest{
		ExpenseDate: "2026-05-10",
		LineItems: []expenseLineItemRequest{
			{AccountID: uuid.New().String(), Amount: "10.00"},
		},
	}
	params, err := toExpenseParams(req)
	require.NoError(t, err)
	assert.Nil(t, params.VendorID)
}

func TestToExpenseParams_MalformedLineAmount(t *testing.T) {
	req := expenseRequest{
		ExpenseDate: "2026-05-10",
		LineItems: []expenseLineItemRequest{
			{AccountID: uuid.New().String(), Amount: "garbage"},
		},
	}
	_, err := toExpenseParams(req)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
