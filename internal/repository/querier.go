package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the full set of persistence operations the service,
// posting, numbering, and reporting layers depend on. Queries is its
// only implementation; tests substitute a fake built from the same
// interface.
type Querier interface {
	// Tenants
	CreateTenant(ctx context.Context, arg CreateTenantParams) (TenantRow, error)
	GetTenantByID(ctx context.Context, id uuid.UUID) (TenantRow, error)

	// Users
	CreateUser(ctx context.Context, arg CreateUserParams) (UserRow, error)
	GetUserByEmail(ctx context.Context, email string) (UserRow, error)
	GetUserByID(ctx context.Context, tenantID, id uuid.UUID) (UserRow, error)

	// Accounts
	CreateAccount(ctx context.Context, arg CreateAccountParams) (AccountRow, error)
	GetAccount(ctx context.Context, tenantID, id uuid.UUID) (AccountRow, error)
	GetAccountByNumber(ctx context.Context, tenantID uuid.UUID, number string) (AccountRow, error)
	ListAccounts(ctx context.Context, tenantID uuid.UUID) ([]AccountRow, error)
	ListChildAccounts(ctx context.Context, tenantID, parentID uuid.UUID) ([]AccountRow, error)
	UpdateAccount(ctx context.Context, arg UpdateAccountParams) (AccountRow, error)
	DeleteAccount(ctx context.Context, tenantID, id uuid.UUID) error
	CountLedgerEntriesForAccount(ctx context.Context, tenantID, accountID uuid.UUID) (int64, error)
	GetAccountBalance(ctx context.Context, tenantID, accountID uuid.UUID) (AccountBalanceRow, error)
	ListAccountBalances(ctx context.Context, tenantID uuid.UUID) ([]AccountBalanceRow, error)

	// Customers
	CreateCustomer(ctx context.Context, arg CreateCustomerParams) (CustomerRow, error)
	GetCustomer(ctx context.Context, tenantID, id uuid.UUID) (CustomerRow, error)
	ListCustomers(ctx context.Context, tenantID uuid.UUID) ([]CustomerRow, error)
	UpdateCustomer(ctx context.Context, arg UpdateCustomerParams) (CustomerRow, error)
	DeleteCustomer(ctx context.Context, tenantID, id uuid.UUID) error
	CustomerHasDocuments(ctx context.Context, tenantID, id uuid.UUID) (bool, error)

	// Vendors
	CreateVendor(ctx context.Context, arg CreateVendorParams) (VendorRow, error)
	GetVendor(ctx context.Context, tenantID, id uuid.UUID) (VendorRow, error)
	ListVendors(ctx context.Context, tenantID uuid.UUID) ([]VendorRow, error)
	UpdateVendor(ctx context.Context, arg UpdateVendorParams) (VendorRow, error)
	DeleteVendor(ctx context.Context, tenantID, id uuid.UUID) error
	VendorHasDocuments(ctx context.Context, tenantID, id uuid.UUID) (bool, error)

	// Tax rates
	CreateTaxRate(ctx context.Context, arg CreateTaxRateParams) (TaxRateRow, error)
	GetTaxRate(ctx context.Context, tenantID, id uuid.UUID) (TaxRateRow, error)
	ListTaxRates(ctx context.Context, tenantID uuid.UUID) ([]TaxRateRow, error)

	// Products
	CreateProduct(ctx context.Context, arg CreateProductParams) (ProductRow, error)
	GetProduct(ctx context.Context, tenantID, id uuid.UUID) (ProductRow, error)
	ListProducts(ctx context.Context, tenantID uuid.UUID) ([]ProductRow, error)
	UpdateProduct(ctx context.Context, arg UpdateProductParams) (ProductRow, error)
	DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error

	// Document sequences
	GetOrCreateSequence(ctx context.Context, tenantID uuid.UUID, class, prefix string, padding int16) (DocumentSequenceRow, error)
	AllocateSequenceNumber(ctx context.Context, tenantID uuid.UUID, class string) (DocumentSequenceRow, error)

	// Invoices
	CreateInvoice(ctx context.Context, arg CreateInvoiceParams) (InvoiceRow, error)
	GetInvoice(ctx context.Context, tenantID, id uuid.UUID) (InvoiceRow, error)
	GetInvoiceForUpdate(ctx context.Context, tenantID, id uuid.UUID) (InvoiceRow, error)
	ListInvoices(ctx context.Context, arg ListInvoicesParams) ([]InvoiceRow, error)
	ListInvoiceLineItems(ctx context.Context, invoiceID uuid.UUID) ([]InvoiceLineItemRow, error)
	InsertInvoiceLineItem(ctx context.Context, arg InsertInvoiceLineItemParams) (InvoiceLineItemRow, error)
	DeleteInvoiceLineItems(ctx context.Context, invoiceID uuid.UUID) error
	UpdateInvoiceHeader(ctx context.Context, arg UpdateInvoiceHeaderParams) (InvoiceRow, error)
	UpdateInvoiceStatus(ctx context.Context, arg UpdateInvoiceStatusParams) (InvoiceRow, error)
	DeleteInvoice(ctx context.Context, tenantID, id uuid.UUID) error

	// Bills
	CreateBill(ctx context.Context, arg CreateBillParams) (BillRow, error)
	GetBill(ctx context.Context, tenantID, id uuid.UUID) (BillRow, error)
	GetBillForUpdate(ctx context.Context, tenantID, id uuid.UUID) (BillRow, error)
	ListBills(ctx context.Context, arg ListBillsParams) ([]BillRow, error)
	ListBillLineItems(ctx context.Context, billID uuid.UUID) ([]BillLineItemRow, error)
	InsertBillLineItem(ctx context.Context, arg InsertBillLineItemParams) (BillLineItemRow, error)
	DeleteBillLineItems(ctx context.Context, billID uuid.UUID) error
	UpdateBillHeader(ctx context.Context, arg UpdateBillHeaderParams) (BillRow, error)
	UpdateBillStatus(ctx context.Context, arg UpdateBillStatusParams) (BillRow, error)
	DeleteBill(ctx context.Context, tenantID, id uuid.UUID) error

	// Payments
	CreatePayment(ctx context.Context, arg CreatePaymentParams) (PaymentRow, error)
	GetPayment(ctx context.Context, tenantID, id uuid.UUID) (PaymentRow, error)
	ListPayments(ctx context.Context, tenantID uuid.UUID) ([]PaymentRow, error)
	ListPaymentApplications(ctx context.Context, paymentID uuid.UUID) ([]PaymentApplicationRow, error)
	InsertPaymentApplication(ctx context.Context, arg InsertPaymentApplicationParams) (PaymentApplicationRow, error)
	DeletePaymentApplications(ctx context.Context, paymentID uuid.UUID) error
	VoidPayment(ctx context.Context, tenantID, id uuid.UUID) (PaymentRow, error)

	// Vendor payments
	CreateVendorPayment(ctx context.Context, arg CreateVendorPaymentParams) (VendorPaymentRow, error)
	GetVendorPayment(ctx context.Context, tenantID, id uuid.UUID) (VendorPaymentRow, error)
	ListVendorPayments(ctx context.Context, tenantID uuid.UUID) ([]VendorPaymentRow, error)
	ListVendorPaymentApplications(ctx context.Context, vendorPaymentID uuid.UUID) ([]VendorPaymentApplicationRow, error)
	InsertVendorPaymentApplication(ctx context.Context, arg InsertVendorPaymentApplicationParams) (VendorPaymentApplicationRow, error)
	DeleteVendorPaymentApplications(ctx context.Context, vendorPaymentID uuid.UUID) error
	VoidVendorPayment(ctx context.Context, tenantID, id uuid.UUID) (VendorPaymentRow, error)

	// Expenses
	CreateExpense(ctx context.Context, arg CreateExpenseParams) (ExpenseRow, error)
	GetExpense(ctx context.Context, tenantID, id uuid.UUID) (ExpenseRow, error)
	ListExpenses(ctx context.Context, tenantID uuid.UUID) ([]ExpenseRow, error)
	ListExpenseLineItems(ctx context.Context, expenseID uuid.UUID) ([]ExpenseLineItemRow, error)
	InsertExpenseLineItem(ctx context.Context, arg InsertExpenseLineItemParams) (ExpenseLineItemRow, error)
	VoidExpense(ctx context.Context, tenantID, id uuid.UUID) (ExpenseRow, error)

	// Journal entries
	CreateJournalEntry(ctx context.Context, arg CreateJournalEntryParams) (JournalEntryRow, error)
	GetJournalEntry(ctx context.Context, tenantID, id uuid.UUID) (JournalEntryRow, error)
	ListJournalEntries(ctx context.Context, tenantID uuid.UUID) ([]JournalEntryRow, error)
	ListJournalEntryLines(ctx context.Context, journalEntryID uuid.UUID) ([]JournalEntryLineRow, error)
	InsertJournalEntryLine(ctx context.Context, arg InsertJournalEntryLineParams) (JournalEntryLineRow, error)
	VoidJournalEntry(ctx context.Context, tenantID, id uuid.UUID) (JournalEntryRow, error)

	// Ledger
	InsertLedgerEntry(ctx context.Context, arg InsertLedgerEntryParams) (LedgerEntryRow, error)
	ListLedgerEntriesBySource(ctx context.Context, tenantID uuid.UUID, transactionType string, sourceID uuid.UUID) ([]LedgerEntryRow, error)
	ListLedgerEntriesInRange(ctx context.Context, arg ListLedgerEntriesInRangeParams) ([]LedgerEntryRow, error)
	SumApplicationsForInvoice(ctx context.Context, invoiceID uuid.UUID) (pgtype.Numeric, error)
	SumApplicationsForBill(ctx context.Context, billID uuid.UUID) (pgtype.Numeric, error)
}
