package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

// TransactionJournalLine is one ledger entry within a source group.
type TransactionJournalLine struct {
	AccountID    uuid.UUID
	Description  string
	DebitAmount  domain.Money
	CreditAmount domain.Money
}

// TransactionJournalGroup is every ledger entry written by a single
// posting (shared source_id), with its own balanced totals.
type TransactionJournalGroup struct {
	SourceID        uuid.UUID
	TransactionType string
	EntryDate       time.Time
	Lines           []TransactionJournalLine
	DebitTotal      domain.Money
	CreditTotal     domain.Money
}

// TransactionJournal is a flat window of posted activity grouped by
// source document, plus grand totals that must balance to the cent.
type TransactionJournal struct {
	StartDate   time.Time
	EndDate     time.Time
	Groups      []TransactionJournalGroup
	DebitTotal  domain.Money
	CreditTotal domain.Money
}

// TransactionJournal lists posted ledger entries between start and end,
// inclusive, optionally restricted to one account, grouped by the
// document that produced them in the order each first appears.
func (s *Service) TransactionJournal(ctx context.Context, tenantID uuid.UUID, start, end time.Time, accountID *uuid.UUID) (TransactionJournal, error) {
	entries, err := s.repo.ListLedgerEntriesInRange(ctx, repository.ListLedgerEntriesInRangeParams{
		TenantID: tenantID, AccountID: accountID, From: start, To: end,
	})
	if err != nil {
		return TransactionJournal{}, domain.Internal(err, "reporting.TransactionJournal", "failed to list ledger entries")
	}

	groups := make(map[uuid.UUID]*TransactionJournalGroup)
	var order []uuid.UUID
	report := TransactionJournal{StartDate: start, EndDate: end}
	for _, e := range entries {
		sourceID := uuid.UUID(e.SourceID.Bytes)
		g, ok := groups[sourceID]
		if !ok {
			g = &TransactionJournalGroup{SourceID: sourceID, TransactionType: e.TransactionType, EntryDate: e.EntryDate.Time}
			groups[sourceID] = g
			order = append(order, sourceID)
		}
		debit := domain.Money{Amount: domain.FromNumeric(e.DebitAmount)}
		credit := domain.Money{Amount: domain.FromNumeric(e.CreditAmount)}
		g.Lines = append(g.Lines, TransactionJournalLine{
			AccountID: uuid.UUID(e.AccountID.Bytes), Description: e.Description, DebitAmount: debit, CreditAmount: credit,
		})
		g.DebitTotal = g.DebitTotal.Add(debit)
		g.CreditTotal = g.CreditTotal.Add(credit)
		report.DebitTotal = report.DebitTotal.Add(debit)
		report.CreditTotal = report.CreditTotal.Add(credit)
	}
	for _, sourceID := range order {
		report.Groups = append(report.Groups, *groups[sourceID])
	}
	return report, nil
}
