package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

type fakeRepo struct {
	accounts      map[uuid.UUID]repository.AccountRow
	balances      map[uuid.UUID]repository.AccountBalanceRow
	ledgerEntries []repository.LedgerEntryRow

	customers map[uuid.UUID]string
	vendors   map[uuid.UUID]string

	invoices []repository.InvoiceRow
	bills    []repository.BillRow

	payments       []repository.PaymentRow
	paymentApps    map[uuid.UUID][]repository.PaymentApplicationRow
	vendorPayments []repository.VendorPaymentRow
	vendorPayApps  map[uuid.UUID][]repository.VendorPaymentApplicationRow
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts:      map[uuid.UUID]repository.AccountRow{},
		balances:      map[uuid.UUID]repository.AccountBalanceRow{},
		customers:     map[uuid.UUID]string{},
		vendors:       map[uuid.UUID]string{},
		paymentApps:   map[uuid.UUID][]repository.PaymentApplicationRow{},
		vendorPayApps: map[uuid.UUID][]repository.VendorPaymentApplicationRow{},
	}
}

func (f *fakeRepo) addAccount(t *testing.T, id uuid.UUID, number, name string, typ domain.AccountType) {
	t.Helper()
	f.accounts[id] = repository.AccountRow{
		ID: pgtype.UUID{Bytes: id, Valid: true}, AccountNumber: number, Name: name, Type: string(typ), IsActive: true,
	}
}

func (f *fakeRepo) setBalance(id uuid.UUID, debit, credit string) {
	f.balances[id] = repository.AccountBalanceRow{
		AccountID: pgtype.UUID{Bytes: id, Valid: true}, DebitTotal: mustNumeric(debit), CreditTotal: mustNumeric(credit),
	}
}

func mustNumeric(s string) pgtype.Numeric {
	return domain.ToNumeric(decimal.RequireFromString(s))
}

func (f *fakeRepo) GetAccount(ctx context.Context, tenantID, id uuid.UUID) (repository.AccountRow, error) {
	a, ok := f.accounts[id]
	if !ok {
		return repository.AccountRow{}, repository.ErrNoRows
	}
	return a, nil
}

func (f *fakeRepo) ListAccounts(ctx context.Context, tenantID uuid.UUID) ([]repository.AccountRow, error) {
	out := make([]repository.AccountRow, 0, len(f.accounts))
	for _, a := range f.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) GetAccountBalance(ctx context.Context, tenantID, accountID uuid.UUID) (repository.AccountBalanceRow, error) {
	b, ok := f.balances[accountID]
	if !ok {
		return repository.AccountBalanceRow{AccountID: pgtype.UUID{Bytes: accountID, Valid: true}}, nil
	}
	return b, nil
}

func (f *fakeRepo) ListAccountBalances(ctx context.Context, tenantID uuid.UUID) ([]repository.AccountBalanceRow, error) {
	out := make([]repository.AccountBalanceRow, 0, len(f.balances))
	for _, b := range f.balances {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) ListLedgerEntriesInRange(ctx context.Context, arg repository.ListLedgerEntriesInRangeParams) ([]repository.LedgerEntryRow, error) {
	var out []repository.LedgerEntryRow
	for _, e := range f.ledgerEntries {
		if arg.AccountID != nil && uuid.UUID(e.AccountID.Bytes) != *arg.AccountID {
			continue
		}
		d := e.EntryDate.Time
		if d.Before(arg.From) || d.After(arg.To) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeRepo) ListCustomers(ctx context.Context, tenantID uuid.UUID) ([]repository.CustomerRow, error) {
	out := make([]repository.CustomerRow, 0, len(f.customers))
	for id, name := range f.customers {
		out = append(out, repository.CustomerRow{ID: pgtype.UUID{Bytes: id, Valid: true}, Name: name, IsActive: true})
	}
	return out, nil
}

func (f *fakeRepo) ListVendors(ctx context.Context, tenantID uuid.UUID) ([]repository.VendorRow, error) {
	out := make([]repository.VendorRow, 0, len(f.vendors))
	for id, name := range f.vendors {
		out = append(out, repository.VendorRow{ID: pgtype.UUID{Bytes: id, Valid: true}, Name: name, IsActive: true})
	}
	return out, nil
}

func (f *fakeRepo) ListInvoices(ctx context.Context, arg repository.ListInvoicesParams) ([]repository.InvoiceRow, error) {
	return f.invoices, nil
}

func (f *fakeRepo) ListBills(ctx context.Context, arg repository.ListBillsParams) ([]repository.BillRow, error) {
	return f.bills, nil
}

func (f *fakeRepo) ListPayments(ctx context.Context, tenantID uuid.UUID) ([]repository.PaymentRow, error) {
	return f.payments, nil
}

func (f *fakeRepo) ListPaymentApplications(ctx context.Context, paymentID uuid.UUID) ([]repository.PaymentApplicationRow, error) {
	return f.paymentApps[paymentID], nil
}

func (f *fakeRepo) ListVendorPayments(ctx context.Context, tenantID uuid.UUID) ([]repository.VendorPaymentRow, error) {
	return f.vendorPayments, nil
}

func (f *fakeRepo) ListVendorPaymentApplications(ctx context.Context, vendorPaymentID uuid.UUID) ([]repository.VendorPaymentApplicationRow, error) {
	return f.vendorPayApps[vendorPaymentID], nil
}

var _ Repository = (*fakeRepo)(nil)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAccountBalance_SignsByNormalSide(t *testing.T) {
	repo := newFakeRepo()
	bank := uuid.New()
	repo.addAccount(t, bank, "1000", "Bank", domain.AccountTypeAsset)
	repo.setBalance(bank, "500.00", "100.00")

	ap := uuid.New()
	repo.addAccount(t, ap, "2000", "Accounts Payable", domain.AccountTypeLiability)
	repo.setBalance(ap, "20.00", "300.00")

	svc := New(repo)

	bankBalance, err := svc.AccountBalance(context.Background(), uuid.New(), bank)
	require.NoError(t, err)
	assert.True(t, bankBalance.Balance.Amount.Equal(decimal.RequireFromString("400.00")))

	apBalance, err := svc.AccountBalance(context.Background(), uuid.New(), ap)
	require.NoError(t, err)
	assert.True(t, apBalance.Balance.Amount.Equal(decimal.RequireFromString("280.00")))
}

func TestTrialBalance_DebitsEqualCredits(t *testing.T) {
	repo := newFakeRepo()
	bank := uuid.New()
	repo.addAccount(t, bank, "1000", "Bank", domain.AccountTypeAsset)
	repo.setBalance(bank, "1000.00", "0")

	revenue := uuid.New()
	repo.addAccount(t, revenue, "4000", "Sales", domain.AccountTypeIncome)
	repo.setBalance(revenue, "0", "1000.00")

	svc := New(repo)
	report, err := svc.TrialBalance(context.Background(), uuid.New(), nil)
	require.NoError(t, err)

	assert.Len(t, report.Lines, 2)
	assert.True(t, report.DebitTotal.EqualWithinTolerance(report.CreditTotal))
	assert.True(t, report.DebitTotal.Amount.Equal(decimal.RequireFromString("1000.00")))
}

func TestProfitAndLoss_ComputesNetIncome(t *testing.T) {
	repo := newFakeRepo()
	tenantID := uuid.New()
	revenue := uuid.New()
	repo.addAccount(t, revenue, "4000", "Sales", domain.AccountTypeIncome)
	expense := uuid.New()
	repo.addAccount(t, expense, "6000", "Rent", domain.AccountTypeExpense)

	repo.ledgerEntries = []repository.LedgerEntryRow{
		{AccountID: pgtype.UUID{Bytes: revenue, Valid: true}, EntryDate: pgtype.Date{Time: date("2026-01-15"), Valid: true},
			DebitAmount: mustNumeric("0"), CreditAmount: mustNumeric("500.00")},
		{AccountID: pgtype.UUID{Bytes: expense, Valid: true}, EntryDate: pgtype.Date{Time: date("2026-01-20"), Valid: true},
			DebitAmount: mustNumeric("150.00"), CreditAmount: mustNumeric("0")},
	}

	svc := New(repo)
	report, err := svc.ProfitAndLoss(context.Background(), tenantID, date("2026-01-01"), date("2026-01-31"))
	require.NoError(t, err)

	assert.True(t, report.IncomeTotal.Amount.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, report.ExpenseTotal.Amount.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, report.NetIncome.Amount.Equal(decimal.RequireFromString("350.00")))
}

func TestBalanceSheet_ExcludesZeroBalances(t *testing.T) {
	repo := newFakeRepo()
	bank := uuid.New()
	repo.addAccount(t, bank, "1000", "Bank", domain.AccountTypeAsset)
	wash := uuid.New()
	repo.addAccount(t, wash, "1100", "Clearing", domain.AccountTypeAsset)

	repo.ledgerEntries = []repository.LedgerEntryRow{
		{AccountID: pgtype.UUID{Bytes: bank, Valid: true}, EntryDate: pgtype.Date{Time: date("2026-02-01"), Valid: true},
			DebitAmount: mustNumeric("1000.00"), CreditAmount: mustNumeric("0")},
		{AccountID: pgtype.UUID{Bytes: wash, Valid: true}, EntryDate: pgtype.Date{Time: date("2026-02-01"), Valid: true},
			DebitAmount: mustNumeric("50.00"), CreditAmount: mustNumeric("50.00")},
	}

	svc := New(repo)
	report, err := svc.BalanceSheet(context.Background(), uuid.New(), date("2026-02-28"))
	require.NoError(t, err)

	assert.Len(t, report.Assets, 1)
	assert.Equal(t, bank, report.Assets[0].AccountID)
	assert.True(t, report.AssetTotal.Amount.Equal(decimal.RequireFromString("1000.00")))
}

func TestARAging_BucketsByDueDateAndNetsUnappliedCredit(t *testing.T) {
	repo := newFakeRepo()
	customerID := uuid.New()
	repo.customers[customerID] = "Acme Co"

	repo.invoices = []repository.InvoiceRow{
		{
			ID: pgtype.UUID{Bytes: uuid.New(), Valid: true}, CustomerID: pgtype.UUID{Bytes: customerID, Valid: true},
			Status: string(domain.InvoiceStatusSent), DueDate: pgtype.Date{Time: date("2026-06-01"), Valid: true},
			Total: mustNumeric("1000.00"), AmountPaid: mustNumeric("0"),
		},
		{
			ID: pgtype.UUID{Bytes: uuid.New(), Valid: true}, CustomerID: pgtype.UUID{Bytes: customerID, Valid: true},
			Status: string(domain.InvoiceStatusPaid), DueDate: pgtype.Date{Time: date("2026-05-01"), Valid: true},
			Total: mustNumeric("500.00"), AmountPaid: mustNumeric("500.00"),
		},
	}

	paymentID := uuid.New()
	repo.payments = []repository.PaymentRow{
		{ID: pgtype.UUID{Bytes: paymentID, Valid: true}, CustomerID: pgtype.UUID{Bytes: customerID, Valid: true}, Amount: mustNumeric("100.00")},
	}
	repo.paymentApps[paymentID] = nil

	svc := New(repo)
	// 2026-07-29 is 58 days past the 2026-06-01 due date -> 31-60 bucket.
	report, err := svc.ARAging(context.Background(), uuid.New(), date("2026-07-29"))
	require.NoError(t, err)

	require.Len(t, report.Lines, 1)
	line := report.Lines[0]
	assert.Equal(t, "Acme Co", line.PartyName)
	assert.True(t, line.Buckets.Days31To60.Amount.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, line.Total.Amount.Equal(decimal.RequireFromString("900.00")), "unapplied credit nets out of the total")
}

func TestTransactionJournal_GroupsBySourceAndBalances(t *testing.T) {
	repo := newFakeRepo()
	sourceID := uuid.New()
	accountA, accountB := uuid.New(), uuid.New()

	repo.ledgerEntries = []repository.LedgerEntryRow{
		{SourceID: pgtype.UUID{Bytes: sourceID, Valid: true}, AccountID: pgtype.UUID{Bytes: accountA, Valid: true},
			TransactionType: "invoice", EntryDate: pgtype.Date{Time: date("2026-03-01"), Valid: true},
			DebitAmount: mustNumeric("200.00"), CreditAmount: mustNumeric("0")},
		{SourceID: pgtype.UUID{Bytes: sourceID, Valid: true}, AccountID: pgtype.UUID{Bytes: accountB, Valid: true},
			TransactionType: "invoice", EntryDate: pgtype.Date{Time: date("2026-03-01"), Valid: true},
			DebitAmount: mustNumeric("0"), CreditAmount: mustNumeric("200.00")},
	}

	svc := New(repo)
	journal, err := svc.TransactionJournal(context.Background(), uuid.New(), date("2026-03-01"), date("2026-03-31"), nil)
	require.NoError(t, err)

	require.Len(t, journal.Groups, 1)
	group := journal.Groups[0]
	assert.Equal(t, sourceID, group.SourceID)
	assert.Len(t, group.Lines, 2)
	assert.True(t, journal.DebitTotal.EqualWithinTolerance(journal.CreditTotal))
}
