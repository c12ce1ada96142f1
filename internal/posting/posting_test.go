package posting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

type fakeRepo struct {
	inserted []repository.InsertLedgerEntryParams
	bySource []repository.LedgerEntryRow
	err      error
}

func (f *fakeRepo) InsertLedgerEntry(ctx context.Context, arg repository.InsertLedgerEntryParams) (repository.LedgerEntryRow, error) {
	if f.err != nil {
		return repository.LedgerEntryRow{}, f.err
	}
	f.inserted = append(f.inserted, arg)
	return repository.LedgerEntryRow{
		ID:              pgtype.UUID{Bytes: uuid.New(), Valid: true},
		TenantID:        pgtype.UUID{Bytes: arg.TenantID, Valid: true},
		AccountID:       pgtype.UUID{Bytes: arg.AccountID, Valid: true},
		TransactionType: arg.TransactionType,
		SourceID:        pgtype.UUID{Bytes: arg.SourceID, Valid: true},
		EntryDate:       pgtype.Date{Time: arg.EntryDate, Valid: true},
		Description:     arg.Description,
		DebitAmount:     domain.ToNumeric(arg.DebitAmount),
		CreditAmount:    domain.ToNumeric(arg.CreditAmount),
		IsPosted:        true,
	}, nil
}

func (f *fakeRepo) ListLedgerEntriesBySource(ctx context.Context, tenantID uuid.UUID, transactionType string, sourceID uuid.UUID) ([]repository.LedgerEntryRow, error) {
	return f.bySource, nil
}

func mustMoney(t *testing.T, amount string) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(amount, "USD")
	require.NoError(t, err)
	return m
}

func TestPost_Invoice_BalancesAcrossRevenueAndTax(t *testing.T) {
	repo := &fakeRepo{}
	engine := New(repo)
	tenantID := uuid.New()
	arAccount, revenueAccount, taxAccount := uuid.New(), uuid.New(), uuid.New()

	req := domain.PostingRequest{
		Kind: domain.PostingKindInvoice,
		InvoicePosting: &domain.InvoicePosting{
			InvoiceID:    uuid.New(),
			ARAccountID:  arAccount,
			RevenueLines: []domain.AccountAmount{{AccountID: revenueAccount, Amount: mustMoney(t, "100.00")}},
			TaxAccountID: taxAccount,
			TaxTotal:     mustMoney(t, "8.00"),
			Total:        mustMoney(t, "108.00"),
			Description:  "invoice INV-0001",
		},
	}

	entries, err := engine.Post(context.Background(), tenantID, req)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.TransactionTypeInvoice, entries[0].TransactionType)
}

func TestPost_RejectsUnbalancedGroup(t *testing.T) {
	repo := &fakeRepo{}
	engine := New(repo)

	req := domain.PostingRequest{
		Kind: domain.PostingKindJournalEntry,
		JournalEntryPosting: &domain.JournalEntryPosting{
			JournalEntryID: uuid.New(),
			Lines: []domain.PostingLine{
				{AccountID: uuid.New(), DebitAmount: mustMoney(t, "50.00")},
				{AccountID: uuid.New(), CreditAmount: mustMoney(t, "40.00")},
			},
		},
	}

	_, err := engine.Post(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, domain.ErrUnbalancedPosting)
}

func TestPost_RejectsMixedSidedLine(t *testing.T) {
	repo := &fakeRepo{}
	engine := New(repo)

	req := domain.PostingRequest{
		Kind: domain.PostingKindJournalEntry,
		JournalEntryPosting: &domain.JournalEntryPosting{
			JournalEntryID: uuid.New(),
			Lines: []domain.PostingLine{
				{AccountID: uuid.New(), DebitAmount: mustMoney(t, "50.00"), CreditAmount: mustMoney(t, "50.00")},
				{AccountID: uuid.New(), CreditAmount: mustMoney(t, "50.00")},
			},
		},
	}

	_, err := engine.Post(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, domain.ErrMixedSidedLine)
}

func TestPost_RejectsFewerThanTwoLines(t *testing.T) {
	repo := &fakeRepo{}
	engine := New(repo)

	req := domain.PostingRequest{
		Kind: domain.PostingKindJournalEntry,
		JournalEntryPosting: &domain.JournalEntryPosting{
			JournalEntryID: uuid.New(),
			Lines:          []domain.PostingLine{{AccountID: uuid.New(), DebitAmount: mustMoney(t, "50.00")}},
		},
	}

	_, err := engine.Post(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, domain.ErrEmptyPosting)
}

func TestPost_Void_ReversesOriginalEntries(t *testing.T) {
	sourceID := uuid.New()
	accountA, accountB := uuid.New(), uuid.New()
	repo := &fakeRepo{
		bySource: []repository.LedgerEntryRow{
			{AccountID: pgtype.UUID{Bytes: accountA, Valid: true}, DebitAmount: domain.ToNumeric(mustMoney(t, "100.00").Amount), CreditAmount: domain.ToNumeric(mustMoney(t, "0").Amount)},
			{AccountID: pgtype.UUID{Bytes: accountB, Valid: true}, DebitAmount: domain.ToNumeric(mustMoney(t, "0").Amount), CreditAmount: domain.ToNumeric(mustMoney(t, "100.00").Amount)},
		},
	}
	engine := New(repo)

	req := domain.PostingRequest{
		Kind: domain.PostingKindVoid,
		VoidPosting: &domain.VoidPosting{
			OriginalTransactionType: domain.TransactionTypeInvoice,
			ReversalTransactionType: domain.TransactionTypeInvoiceReversal,
			SourceID:                sourceID,
		},
	}

	entries, err := engine.Post(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, domain.TransactionTypeInvoiceReversal, e.TransactionType)
	}
	assert.True(t, entries[0].CreditAmount.Amount.IsPositive())
	assert.True(t, entries[1].DebitAmount.Amount.IsPositive())
}

func TestPost_Void_FailsWhenNoOriginalEntries(t *testing.T) {
	repo := &fakeRepo{}
	engine := New(repo)

	req := domain.PostingRequest{
		Kind: domain.PostingKindVoid,
		VoidPosting: &domain.VoidPosting{
			OriginalTransactionType: domain.TransactionTypeExpense,
			ReversalTransactionType: domain.TransactionTypeExpenseReversal,
			SourceID:                uuid.New(),
		},
	}

	_, err := engine.Post(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, domain.EPRECONDITION, domain.ErrorCode(err))
}
