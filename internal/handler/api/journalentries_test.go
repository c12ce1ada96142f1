package api

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJournalAmount_EmptyIsZero(t *testing.T) {
	amount, err := parseJournalAmount("")
	require.NoError(t, err)
	assert.True(t, amount.IsZero())
}

func TestParseJournalAmount_Malformed(t *testing.T) {
	_, err := parseJournalAmount("not-a-number")
	require.Error(t, err)
}

func TestToJournalEntryParams_Valid(t *testing.T) {
	debitAccount := uuid.New().String()
	creditAccount := uuid.New().String()

	req := journalEntryRequest{
		EntryDate: "2026-04-01",
		Memo:      "Owner contribution",
		Lines: []journalEntryLineRequest{
			{AccountID: debitAccount, Description: "Cash in", DebitAmount: "1000.00"},
			{AccountID: creditAccount, Description: "Owner equity", CreditAmount: "1000.00"},
		},
	}

	params, err := toJournalEntryParams(req)
	require.NoError(t, err)
	require.Len(t, params.Lines, 2)
	assert.True(t, params.Lines[0].DebitAmount.Equal(mustDecimal("1000.00")))
	assert.True(t, params.Lines[0].CreditAmount.IsZero())
	assert.True(t, params.Lines[1].CreditAmount.Equal(mustDecimal("1000.00")))
	assert.True(t, params.Lines[1].DebitAmount.IsZero())
}

func TestToJournalEntryParams_MalformedEntryDate(t *testing.T) {
	req := journalEntryRequest{
		EntryDate: "not-a-date",
		Lines: []journalEntryLineRequest{
			{AccountID: uuid.New().String(), DebitAmount: "1.00"},
			{AccountID: uuid.New().String(), CreditAmount: "1.00"},
		},
	}
	_, err := toJournalEntryParams(req)
	require.Error(t, err)
}
