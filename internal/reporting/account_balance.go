package reporting

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

// AccountBalance reports the signed balance of a single account: debit
// total, credit total, and the net balance signed so it is positive
// when the account carries its normal side.
func (s *Service) AccountBalance(ctx context.Context, tenantID, accountID uuid.UUID) (domain.AccountBalance, error) {
	acct, err := s.repo.GetAccount(ctx, tenantID, accountID)
	if err != nil {
		return domain.AccountBalance{}, domain.ErrAccountNotFound
	}
	row, err := s.repo.GetAccountBalance(ctx, tenantID, accountID)
	if err != nil {
		return domain.AccountBalance{}, domain.Internal(err, "reporting.AccountBalance", "failed to load account balance")
	}
	return signedBalance(domain.AccountType(acct.Type), row), nil
}

// ListAccountBalances reports the signed balance of every account in
// the tenant that has posted ledger activity.
func (s *Service) ListAccountBalances(ctx context.Context, tenantID uuid.UUID) ([]domain.AccountBalance, error) {
	accounts, err := s.accountsByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListAccountBalances(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "reporting.ListAccountBalances", "failed to list account balances")
	}
	out := make([]domain.AccountBalance, 0, len(rows))
	for _, r := range rows {
		id := uuid.UUID(r.AccountID.Bytes)
		out = append(out, signedBalance(domain.AccountType(accounts[id].Type), r))
	}
	return out, nil
}

func signedBalance(accountType domain.AccountType, row repository.AccountBalanceRow) domain.AccountBalance {
	debit := domain.Money{Amount: domain.FromNumeric(row.DebitTotal)}
	credit := domain.Money{Amount: domain.FromNumeric(row.CreditTotal)}
	balance := debit.Sub(credit)
	if domain.NormalSideFor(accountType) == domain.NormalSideCredit {
		balance = balance.Neg()
	}
	return domain.AccountBalance{
		AccountID:   uuid.UUID(row.AccountID.Bytes),
		DebitTotal:  debit,
		CreditTotal: credit,
		Balance:     balance,
	}
}
