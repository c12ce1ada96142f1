package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
)

// BalanceSheetLine is one asset, liability, or equity account's balance
// as of the report date, signed so it is positive on its normal side.
type BalanceSheetLine struct {
	AccountID     uuid.UUID
	AccountNumber string
	AccountName   string
	Balance       domain.Money
}

// BalanceSheet is the point-in-time statement of financial position: the
// asset, liability, and equity accounts with a non-zero balance as of
// AsOf, plus their section totals.
type BalanceSheet struct {
	AsOf           time.Time
	Assets         []BalanceSheetLine
	Liabilities    []BalanceSheetLine
	Equity         []BalanceSheetLine
	AssetTotal     domain.Money
	LiabilityTotal domain.Money
	EquityTotal    domain.Money
}

// BalanceSheet builds the report as of asOf, inclusive.
func (s *Service) BalanceSheet(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (BalanceSheet, error) {
	accounts, err := s.accountsByID(ctx, tenantID)
	if err != nil {
		return BalanceSheet{}, err
	}
	totals, err := s.accountTotals(ctx, tenantID, &asOf)
	if err != nil {
		return BalanceSheet{}, err
	}

	report := BalanceSheet{AsOf: asOf}
	for accountID, t := range totals {
		acct, ok := accounts[accountID]
		if !ok {
			continue
		}
		accountType := domain.AccountType(acct.Type)
		balance := t.debit.Sub(t.credit)
		if domain.NormalSideFor(accountType) == domain.NormalSideCredit {
			balance = balance.Neg()
		}
		if balance.IsZero() {
			continue
		}
		line := BalanceSheetLine{AccountID: accountID, AccountNumber: acct.AccountNumber, AccountName: acct.Name, Balance: balance}
		switch accountType {
		case domain.AccountTypeAsset:
			report.Assets = append(report.Assets, line)
			report.AssetTotal = report.AssetTotal.Add(balance)
		case domain.AccountTypeLiability:
			report.Liabilities = append(report.Liabilities, line)
			report.LiabilityTotal = report.LiabilityTotal.Add(balance)
		case domain.AccountTypeEquity:
			report.Equity = append(report.Equity, line)
			report.EquityTotal = report.EquityTotal.Add(balance)
		}
	}
	return report, nil
}
