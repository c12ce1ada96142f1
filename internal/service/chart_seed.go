package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

// defaultChartEntry is one row of the canonical starter chart seeded for
// every new tenant, keyed by the subtype other components (posting,
// document services) look accounts up by.
type defaultChartEntry struct {
	Number  string
	Name    string
	Type    domain.AccountType
	Subtype domain.AccountSubtype
	System  bool
}

var defaultChart = []defaultChartEntry{
	{Number: "1000", Name: "Cash and Bank", Type: domain.AccountTypeAsset, Subtype: domain.SubtypeBank, System: true},
	{Number: "1100", Name: "Accounts Receivable", Type: domain.AccountTypeAsset, Subtype: domain.SubtypeAccountsReceivable, System: true},
	{Number: "1200", Name: "Inventory", Type: domain.AccountTypeAsset, Subtype: domain.SubtypeInventory, System: false},
	{Number: "1500", Name: "Fixed Assets", Type: domain.AccountTypeAsset, Subtype: domain.SubtypeFixedAsset, System: false},
	{Number: "2000", Name: "Accounts Payable", Type: domain.AccountTypeLiability, Subtype: domain.SubtypeAccountsPayable, System: true},
	{Number: "2100", Name: "Sales Tax Payable", Type: domain.AccountTypeLiability, Subtype: domain.SubtypeSalesTaxPayable, System: true},
	{Number: "3000", Name: "Owner's Equity", Type: domain.AccountTypeEquity, Subtype: domain.SubtypeOwnersEquity, System: false},
	{Number: "3900", Name: "Retained Earnings", Type: domain.AccountTypeEquity, Subtype: domain.SubtypeRetainedEarnings, System: true},
	{Number: "4000", Name: "Sales Revenue", Type: domain.AccountTypeIncome, Subtype: domain.SubtypeSales, System: true},
	{Number: "5000", Name: "Cost of Goods Sold", Type: domain.AccountTypeExpense, Subtype: domain.SubtypeCostOfGoodsSold, System: false},
	{Number: "6000", Name: "Operating Expenses", Type: domain.AccountTypeExpense, Subtype: domain.SubtypeOperatingExpense, System: true},
}

// SeedDefaultChart creates the canonical starter chart of accounts for a
// freshly registered tenant and returns a lookup from subtype to the
// created account's id; AuthService.Register, its one caller, discards
// that lookup. Inserts directly through s.repo
// rather than going through Create: the default chart entries never carry
// an opening balance, and AuthService.Register calls this from inside its
// own transaction, so this must write through that same tx-bound repo
// instead of opening a second one against the pool.
func (s *accountService) SeedDefaultChart(ctx context.Context, tenantID uuid.UUID) (map[domain.AccountSubtype]uuid.UUID, error) {
	out := make(map[domain.AccountSubtype]uuid.UUID, len(defaultChart))
	for _, entry := range defaultChart {
		row, err := s.repo.CreateAccount(ctx, repository.CreateAccountParams{
			TenantID:        tenantID,
			AccountNumber:   entry.Number,
			Name:            entry.Name,
			Type:            string(entry.Type),
			Subtype:         string(entry.Subtype),
			IsSystemAccount: entry.System,
		})
		if err != nil {
			return nil, domain.Internal(err, "account.SeedDefaultChart", "failed to seed default chart of accounts")
		}
		out[entry.Subtype] = uuid.UUID(row.ID.Bytes)
	}
	return out, nil
}
