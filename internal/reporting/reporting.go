// Package reporting implements the read-side aggregation views over the
// ledger and document tables (account balance, trial balance, profit &
// loss, balance sheet, AR/AP aging, transaction journal). Every method
// is a pure read: none acquires a write lock or mutates a row, and none
// takes part in the transactional boundary that document services open.
package reporting

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/repository"
)

// Repository is the subset of repository.Querier the reporting layer
// needs, kept narrow the same way internal/posting.Repository is.
type Repository interface {
	GetAccount(ctx context.Context, tenantID, id uuid.UUID) (repository.AccountRow, error)
	ListAccounts(ctx context.Context, tenantID uuid.UUID) ([]repository.AccountRow, error)
	GetAccountBalance(ctx context.Context, tenantID, accountID uuid.UUID) (repository.AccountBalanceRow, error)
	ListAccountBalances(ctx context.Context, tenantID uuid.UUID) ([]repository.AccountBalanceRow, error)
	ListLedgerEntriesInRange(ctx context.Context, arg repository.ListLedgerEntriesInRangeParams) ([]repository.LedgerEntryRow, error)

	ListCustomers(ctx context.Context, tenantID uuid.UUID) ([]repository.CustomerRow, error)
	ListVendors(ctx context.Context, tenantID uuid.UUID) ([]repository.VendorRow, error)
	ListInvoices(ctx context.Context, arg repository.ListInvoicesParams) ([]repository.InvoiceRow, error)
	ListBills(ctx context.Context, arg repository.ListBillsParams) ([]repository.BillRow, error)
	ListPayments(ctx context.Context, tenantID uuid.UUID) ([]repository.PaymentRow, error)
	ListPaymentApplications(ctx context.Context, paymentID uuid.UUID) ([]repository.PaymentApplicationRow, error)
	ListVendorPayments(ctx context.Context, tenantID uuid.UUID) ([]repository.VendorPaymentRow, error)
	ListVendorPaymentApplications(ctx context.Context, vendorPaymentID uuid.UUID) ([]repository.VendorPaymentApplicationRow, error)
}

// Service is the reporting layer. It holds no per-tenant state; every
// method takes an explicit tenantID like the rest of the core.
type Service struct {
	repo Repository
}

// New builds a Service over repo.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}
