package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

// accountTotal is the raw posted debit/credit movement for one account,
// unsigned — callers sign it by normal side for the report they build.
type accountTotal struct {
	debit  domain.Money
	credit domain.Money
}

// accountTotals returns the posted debit/credit totals for every
// account with activity, either over all history (asOf nil) or through
// the end of asOf.
func (s *Service) accountTotals(ctx context.Context, tenantID uuid.UUID, asOf *time.Time) (map[uuid.UUID]accountTotal, error) {
	if asOf == nil {
		rows, err := s.repo.ListAccountBalances(ctx, tenantID)
		if err != nil {
			return nil, domain.Internal(err, "reporting.accountTotals", "failed to list account balances")
		}
		out := make(map[uuid.UUID]accountTotal, len(rows))
		for _, r := range rows {
			out[uuid.UUID(r.AccountID.Bytes)] = accountTotal{
				debit:  domain.Money{Amount: domain.FromNumeric(r.DebitTotal)},
				credit: domain.Money{Amount: domain.FromNumeric(r.CreditTotal)},
			}
		}
		return out, nil
	}
	return s.accountTotalsInRange(ctx, tenantID, nil, time.Time{}, *asOf)
}

// accountTotalsInRange sums posted ledger entries between from and to,
// inclusive, optionally restricted to a single account.
func (s *Service) accountTotalsInRange(ctx context.Context, tenantID uuid.UUID, accountID *uuid.UUID, from, to time.Time) (map[uuid.UUID]accountTotal, error) {
	entries, err := s.repo.ListLedgerEntriesInRange(ctx, repository.ListLedgerEntriesInRangeParams{
		TenantID: tenantID, AccountID: accountID, From: from, To: to,
	})
	if err != nil {
		return nil, domain.Internal(err, "reporting.accountTotalsInRange", "failed to list ledger entries")
	}
	out := make(map[uuid.UUID]accountTotal)
	for _, e := range entries {
		id := uuid.UUID(e.AccountID.Bytes)
		t := out[id]
		t.debit = t.debit.Add(domain.Money{Amount: domain.FromNumeric(e.DebitAmount)})
		t.credit = t.credit.Add(domain.Money{Amount: domain.FromNumeric(e.CreditAmount)})
		out[id] = t
	}
	return out, nil
}

// accountsByID loads the tenant's chart of accounts keyed by id, for
// reports that need to join balances back to account metadata.
func (s *Service) accountsByID(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]repository.AccountRow, error) {
	accounts, err := s.repo.ListAccounts(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "reporting.accountsByID", "failed to list accounts")
	}
	out := make(map[uuid.UUID]repository.AccountRow, len(accounts))
	for _, a := range accounts {
		out[uuid.UUID(a.ID.Bytes)] = a
	}
	return out, nil
}
