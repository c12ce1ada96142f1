package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
)

// ProfitAndLossLine is one income or expense account's movement within
// the reporting period.
type ProfitAndLossLine struct {
	AccountID     uuid.UUID
	AccountNumber string
	AccountName   string
	Amount        domain.Money
}

// ProfitAndLoss is the income statement for [StartDate, EndDate]: income
// and expense account movements, and the net income they produce.
// Accounts with zero movement in the period are omitted from detail.
type ProfitAndLoss struct {
	StartDate    time.Time
	EndDate      time.Time
	Income       []ProfitAndLossLine
	Expenses     []ProfitAndLossLine
	IncomeTotal  domain.Money
	ExpenseTotal domain.Money
	NetIncome    domain.Money
}

// ProfitAndLoss sums income (credits − debits) and expense (debits −
// credits) account movements between start and end, inclusive.
func (s *Service) ProfitAndLoss(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (ProfitAndLoss, error) {
	accounts, err := s.accountsByID(ctx, tenantID)
	if err != nil {
		return ProfitAndLoss{}, err
	}
	totals, err := s.accountTotalsInRange(ctx, tenantID, nil, start, end)
	if err != nil {
		return ProfitAndLoss{}, err
	}

	report := ProfitAndLoss{StartDate: start, EndDate: end}
	for accountID, t := range totals {
		acct, ok := accounts[accountID]
		if !ok {
			continue
		}
		line := ProfitAndLossLine{AccountID: accountID, AccountNumber: acct.AccountNumber, AccountName: acct.Name}
		switch domain.AccountType(acct.Type) {
		case domain.AccountTypeIncome:
			line.Amount = t.credit.Sub(t.debit)
			if line.Amount.IsZero() {
				continue
			}
			report.Income = append(report.Income, line)
			report.IncomeTotal = report.IncomeTotal.Add(line.Amount)
		case domain.AccountTypeExpense:
			line.Amount = t.debit.Sub(t.credit)
			if line.Amount.IsZero() {
				continue
			}
			report.Expenses = append(report.Expenses, line)
			report.ExpenseTotal = report.ExpenseTotal.Add(line.Amount)
		}
	}
	report.NetIncome = report.IncomeTotal.Sub(report.ExpenseTotal)
	return report, nil
}
