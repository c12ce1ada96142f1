package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
)

// TrialBalanceLine is one account's net position: whichever side —
// debit or credit — the account nets to after offsetting the other,
// so exactly one of the two amounts on a line is non-zero.
type TrialBalanceLine struct {
	AccountID     uuid.UUID
	AccountNumber string
	AccountName   string
	Type          domain.AccountType
	DebitAmount   domain.Money
	CreditAmount  domain.Money
}

// TrialBalance is the full report: one line per account with net
// activity, plus the two column totals a caller compares to confirm
// the ledger still balances.
type TrialBalance struct {
	AsOf        *time.Time
	Lines       []TrialBalanceLine
	DebitTotal  domain.Money
	CreditTotal domain.Money
}

// TrialBalance builds the report as of asOf, or over all posted
// history when asOf is nil.
func (s *Service) TrialBalance(ctx context.Context, tenantID uuid.UUID, asOf *time.Time) (TrialBalance, error) {
	accounts, err := s.accountsByID(ctx, tenantID)
	if err != nil {
		return TrialBalance{}, err
	}
	totals, err := s.accountTotals(ctx, tenantID, asOf)
	if err != nil {
		return TrialBalance{}, err
	}

	report := TrialBalance{AsOf: asOf}
	for accountID, t := range totals {
		acct, ok := accounts[accountID]
		if !ok {
			continue
		}
		net := t.debit.Sub(t.credit)
		line := TrialBalanceLine{
			AccountID: accountID, AccountNumber: acct.AccountNumber, AccountName: acct.Name,
			Type: domain.AccountType(acct.Type), DebitAmount: domain.Zero(""), CreditAmount: domain.Zero(""),
		}
		switch {
		case net.IsPositive():
			line.DebitAmount = net
			report.DebitTotal = report.DebitTotal.Add(net)
		case net.IsNegative():
			line.CreditAmount = net.Neg()
			report.CreditTotal = report.CreditTotal.Add(net.Neg())
		default:
			continue
		}
		report.Lines = append(report.Lines, line)
	}
	return report, nil
}
