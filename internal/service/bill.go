package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/numbering"
	"github.com/ledgerkeep/core/internal/posting"
	"github.com/ledgerkeep/core/internal/repository"
)

// BillService manages the AP document lifecycle: Draft -> Approved ->
// (Partially Paid -> ) Paid, with Void reachable from any non-void state
// that has no payments applied.
// Mirrors InvoiceService on the opposite side of the ledger.
type BillService interface {
	Create(ctx context.Context, tenantID uuid.UUID, params BillParams) (domain.Bill, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Bill, error)
	List(ctx context.Context, tenantID uuid.UUID, vendorID *uuid.UUID, status string) ([]domain.Bill, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, params BillParams) (domain.Bill, error)
	Approve(ctx context.Context, tenantID, id uuid.UUID) (domain.Bill, error)
	Pay(ctx context.Context, tenantID, id uuid.UUID, params BillPayParams) (domain.Bill, error)
	Void(ctx context.Context, tenantID, id uuid.UUID, reason string) (domain.Bill, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type BillLineItemParams struct {
	ProductID       *uuid.UUID
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRateID       *uuid.UUID
	AccountID       *uuid.UUID
}

type BillParams struct {
	VendorID       uuid.UUID
	BillDate       time.Time
	DueDate        time.Time
	Memo           string
	DiscountAmount decimal.Decimal
	ShippingAmount decimal.Decimal
	LineItems      []BillLineItemParams
}

// BillPayParams is the single-bill vendor payment shorthand: it pays
// exactly one bill in full or in part without the caller assembling a
// VendorPaymentParams.Applications slice.
type BillPayParams struct {
	PaymentDate      time.Time
	Method           domain.PaymentMethod
	PayFromAccountID *uuid.UUID
	Memo             string
	Amount           decimal.Decimal
}

type billService struct {
	pool           *pgxpool.Pool
	repo           repository.Querier
	numbers        *numbering.Service
	accounts       AccountService
	vendorPayments VendorPaymentService
}

func NewBillService(pool *pgxpool.Pool, repo repository.Querier, numbers *numbering.Service, accounts AccountService, vendorPayments VendorPaymentService) BillService {
	return &billService{pool: pool, repo: repo, numbers: numbers, accounts: accounts, vendorPayments: vendorPayments}
}

func (s *billService) Create(ctx context.Context, tenantID uuid.UUID, params BillParams) (domain.Bill, error) {
	if _, err := s.repo.GetVendor(ctx, tenantID, params.VendorID); err != nil {
		return domain.Bill{}, domain.ErrVendorNotFound
	}

	number, err := s.numbers.Allocate(ctx, tenantID, domain.DocumentClassBill)
	if err != nil {
		return domain.Bill{}, err
	}

	var bill domain.Bill
	err = withTx(ctx, s.pool, func(repo repository.Querier, _ *posting.Engine) error {
		built, err := buildBillLines(ctx, repo, tenantID, params.LineItems)
		if err != nil {
			return err
		}

		total := built.subtotal.Add(built.taxTotal).Add(params.ShippingAmount).Sub(params.DiscountAmount)
		row, err := repo.CreateBill(ctx, repository.CreateBillParams{
			TenantID: tenantID, VendorID: params.VendorID, Number: number, Status: string(domain.BillStatusDraft),
			BillDate: params.BillDate, DueDate: params.DueDate, Memo: params.Memo,
			Subtotal: built.subtotal, DiscountAmount: params.DiscountAmount, ShippingAmount: params.ShippingAmount,
			TaxTotal: built.taxTotal, Total: total,
		})
		if err != nil {
			return domain.Internal(err, "bill.Create", "failed to create bill")
		}

		lineRows, err := insertBillLines(ctx, repo, uuid.UUID(row.ID.Bytes), built.lines)
		if err != nil {
			return err
		}

		bill = toDomainBill(row, lineRows)
		return nil
	})
	return bill, err
}

func (s *billService) Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Bill, error) {
	row, err := s.repo.GetBill(ctx, tenantID, id)
	if err != nil {
		return domain.Bill{}, domain.ErrBillNotFound
	}
	lineRows, err := s.repo.ListBillLineItems(ctx, id)
	if err != nil {
		return domain.Bill{}, domain.Internal(err, "bill.Get", "failed to load line items")
	}
	return toDomainBill(row, lineRows), nil
}

func (s *billService) List(ctx context.Context, tenantID uuid.UUID, vendorID *uuid.UUID, status string) ([]domain.Bill, error) {
	rows, err := s.repo.ListBills(ctx, repository.ListBillsParams{TenantID: tenantID, VendorID: vendorID, Status: status})
	if err != nil {
		return nil, domain.Internal(err, "bill.List", "failed to list bills")
	}
	out := make([]domain.Bill, len(rows))
	for i, r := range rows {
		lineRows, err := s.repo.ListBillLineItems(ctx, uuid.UUID(r.ID.Bytes))
		if err != nil {
			return nil, domain.Internal(err, "bill.List", "failed to load line items")
		}
		out[i] = toDomainBill(r, lineRows)
	}
	return out, nil
}

func (s *billService) Update(ctx context.Context, tenantID, id uuid.UUID, params BillParams) (domain.Bill, error) {
	existing, err := s.repo.GetBill(ctx, tenantID, id)
	if err != nil {
		return domain.Bill{}, domain.ErrBillNotFound
	}
	if domain.BillStatus(existing.Status) != domain.BillStatusDraft {
		return domain.Bill{}, domain.ErrBillNotDraft
	}

	var bill domain.Bill
	err = withTx(ctx, s.pool, func(repo repository.Querier, _ *posting.Engine) error {
		built, err := buildBillLines(ctx, repo, tenantID, params.LineItems)
		if err != nil {
			return err
		}
		if err := repo.DeleteBillLineItems(ctx, id); err != nil {
			return domain.Internal(err, "bill.Update", "failed to clear line items")
		}

		total := built.subtotal.Add(built.taxTotal).Add(params.ShippingAmount).Sub(params.DiscountAmount)
		row, err := repo.UpdateBillHeader(ctx, repository.UpdateBillHeaderParams{
			TenantID: tenantID, ID: id, DueDate: params.DueDate, Memo: params.Memo,
			Subtotal: built.subtotal, DiscountAmount: params.DiscountAmount, ShippingAmount: params.ShippingAmount,
			TaxTotal: built.taxTotal, Total: total,
		})
		if err != nil {
			return domain.Internal(err, "bill.Update", "failed to update bill")
		}

		lineRows, err := insertBillLines(ctx, repo, id, built.lines)
		if err != nil {
			return err
		}

		bill = toDomainBill(row, lineRows)
		return nil
	})
	return bill, err
}

func (s *billService) Approve(ctx context.Context, tenantID, id uuid.UUID) (domain.Bill, error) {
	existing, err := s.repo.GetBill(ctx, tenantID, id)
	if err != nil {
		return domain.Bill{}, domain.ErrBillNotFound
	}
	if domain.BillStatus(existing.Status) != domain.BillStatusDraft {
		return domain.Bill{}, domain.ErrBillNotDraft
	}

	lineRows, err := s.repo.ListBillLineItems(ctx, id)
	if err != nil {
		return domain.Bill{}, domain.Internal(err, "bill.Approve", "failed to load line items")
	}
	bill := toDomainBill(existing, lineRows)

	apAccount, err := s.accounts.GetBySubtype(ctx, tenantID, domain.SubtypeAccountsPayable)
	if err != nil {
		return domain.Bill{}, err
	}

	expenseByAccount := map[uuid.UUID]domain.Money{}
	for _, l := range bill.LineItems {
		expenseByAccount[l.AccountID] = expenseByAccount[l.AccountID].Add(l.LineTotal)
	}
	expenseLines := make([]domain.AccountAmount, 0, len(expenseByAccount))
	for accountID, amount := range expenseByAccount {
		expenseLines = append(expenseLines, domain.AccountAmount{AccountID: accountID, Amount: amount})
	}

	var taxAccountID uuid.UUID
	if bill.TaxTotal.IsPositive() {
		taxAccount, err := s.accounts.GetBySubtype(ctx, tenantID, domain.SubtypeSalesTaxPayable)
		if err != nil {
			return domain.Bill{}, err
		}
		taxAccountID = taxAccount.ID
	}

	var updated domain.Bill
	err = withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
			Kind: domain.PostingKindBill,
			BillPosting: &domain.BillPosting{
				BillID: id, APAccountID: apAccount.ID, ExpenseLines: expenseLines,
				TaxAccountID: taxAccountID, TaxTotal: bill.TaxTotal, Total: bill.Total,
				EntryDate: bill.BillDate, Description: "Bill " + bill.Number,
			},
		}); err != nil {
			return err
		}

		now := time.Now()
		row, err := repo.UpdateBillStatus(ctx, repository.UpdateBillStatusParams{
			TenantID: tenantID, ID: id, Status: string(domain.BillStatusApproved),
			AmountPaid: bill.AmountPaid.Amount, PostedAt: &now,
		})
		if err != nil {
			return domain.Internal(err, "bill.Approve", "failed to update bill status")
		}
		updated = toDomainBill(row, lineRows)
		return nil
	})
	return updated, err
}

// Pay is a shorthand for recording a vendor payment applied entirely to
// this bill; it refuses an amount greater than the bill's current
// amount due and otherwise delegates to VendorPaymentService.Create.
func (s *billService) Pay(ctx context.Context, tenantID, id uuid.UUID, params BillPayParams) (domain.Bill, error) {
	existing, err := s.repo.GetBill(ctx, tenantID, id)
	if err != nil {
		return domain.Bill{}, domain.ErrBillNotFound
	}
	status := domain.BillStatus(existing.Status)
	if status != domain.BillStatusApproved && status != domain.BillStatusPartiallyPaid {
		return domain.Bill{}, domain.ErrBillNotPayable
	}

	lineRows, err := s.repo.ListBillLineItems(ctx, id)
	if err != nil {
		return domain.Bill{}, domain.Internal(err, "bill.Pay", "failed to load line items")
	}
	bill := toDomainBill(existing, lineRows)
	if params.Amount.GreaterThan(bill.AmountDue().Amount) {
		return domain.Bill{}, domain.ErrApplicationExceedsBillDue
	}

	if _, err := s.vendorPayments.Create(ctx, tenantID, VendorPaymentParams{
		VendorID: bill.VendorID, PaymentDate: params.PaymentDate, Method: params.Method,
		PayFromAccountID: params.PayFromAccountID, Memo: params.Memo, Amount: params.Amount,
		Applications: []VendorPaymentApplicationParams{{BillID: id, Amount: params.Amount}},
	}); err != nil {
		return domain.Bill{}, err
	}

	return s.Get(ctx, tenantID, id)
}

func (s *billService) Void(ctx context.Context, tenantID, id uuid.UUID, reason string) (domain.Bill, error) {
	existing, err := s.repo.GetBill(ctx, tenantID, id)
	if err != nil {
		return domain.Bill{}, domain.ErrBillNotFound
	}
	status := domain.BillStatus(existing.Status)
	if status == domain.BillStatusVoid {
		return domain.Bill{}, domain.ErrBillAlreadyVoid
	}
	amountPaid := domain.Money{Amount: domain.FromNumeric(existing.AmountPaid)}
	if amountPaid.IsPositive() {
		return domain.Bill{}, domain.ErrBillHasPayments
	}

	var updated domain.Bill
	err = withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		if status != domain.BillStatusDraft {
			if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
				Kind: domain.PostingKindVoid,
				VoidPosting: &domain.VoidPosting{
					OriginalTransactionType: domain.TransactionTypeBill,
					ReversalTransactionType: domain.TransactionTypeBillReversal,
					SourceID:                id, EntryDate: time.Now(), Description: reason,
				},
			}); err != nil {
				return err
			}
		}

		now := time.Now()
		row, err := repo.UpdateBillStatus(ctx, repository.UpdateBillStatusParams{
			TenantID: tenantID, ID: id, Status: string(domain.BillStatusVoid),
			AmountPaid: amountPaid.Amount, PaidAt: nil, VoidedAt: &now,
		})
		if err != nil {
			return domain.Internal(err, "bill.Void", "failed to update bill status")
		}
		lineRows, err := repo.ListBillLineItems(ctx, id)
		if err != nil {
			return domain.Internal(err, "bill.Void", "failed to load line items")
		}
		updated = toDomainBill(row, lineRows)
		return nil
	})
	return updated, err
}

func (s *billService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	existing, err := s.repo.GetBill(ctx, tenantID, id)
	if err != nil {
		return domain.ErrBillNotFound
	}
	if domain.BillStatus(existing.Status) != domain.BillStatusDraft {
		return domain.ErrBillCannotDeleteApproved
	}
	return withTx(ctx, s.pool, func(repo repository.Querier, _ *posting.Engine) error {
		if err := repo.DeleteBillLineItems(ctx, id); err != nil {
			return domain.Internal(err, "bill.Delete", "failed to delete line items")
		}
		if err := repo.DeleteBill(ctx, tenantID, id); err != nil {
			return domain.Internal(err, "bill.Delete", "failed to delete bill")
		}
		return nil
	})
}

type builtBillLines struct {
	lines    []preparedBillLine
	subtotal decimal.Decimal
	taxTotal decimal.Decimal
}

type preparedBillLine struct {
	params    BillLineItemParams
	accountID uuid.UUID
	lineTotal decimal.Decimal
	taxAmount decimal.Decimal
	sortOrder int32
}

func buildBillLines(ctx context.Context, repo repository.Querier, tenantID uuid.UUID, items []BillLineItemParams) (builtBillLines, error) {
	if len(items) == 0 {
		return builtBillLines{}, domain.ErrBillNoLineItems
	}

	var out builtBillLines
	for i, item := range items {
		if item.Quantity.LessThan(domain.MinLineItemQuantity) {
			return builtBillLines{}, domain.Invalid("bill.lines", "quantity must be at least 0.0001")
		}
		if item.DiscountPercent.IsNegative() || item.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
			return builtBillLines{}, domain.Invalid("bill.lines", "discount_percent must be between 0 and 100")
		}

		accountID := item.AccountID
		if accountID == nil && item.ProductID != nil {
			product, err := repo.GetProduct(ctx, tenantID, *item.ProductID)
			if err != nil {
				return builtBillLines{}, domain.ErrProductNotFound
			}
			if product.ExpenseAccountID.Valid {
				id := uuid.UUID(product.ExpenseAccountID.Bytes)
				accountID = &id
			} else if product.InventoryAccountID.Valid {
				id := uuid.UUID(product.InventoryAccountID.Bytes)
				accountID = &id
			}
		}
		if accountID == nil {
			return builtBillLines{}, domain.Invalid("bill.lines", "a line item requires an account, directly or via its product")
		}

		discountFactor := decimal.NewFromInt(1).Sub(item.DiscountPercent.Div(decimal.NewFromInt(100)))
		lineTotal := item.UnitPrice.Mul(item.Quantity).Mul(discountFactor).Round(2)
		var taxAmount decimal.Decimal
		if item.TaxRateID != nil {
			rate, err := repo.GetTaxRate(ctx, tenantID, *item.TaxRateID)
			if err != nil {
				return builtBillLines{}, domain.ErrTaxRateNotFound
			}
			taxAmount = lineTotal.Mul(domain.FromNumeric(rate.Rate)).Round(2)
		}

		out.lines = append(out.lines, preparedBillLine{
			params: item, accountID: *accountID, lineTotal: lineTotal, taxAmount: taxAmount, sortOrder: int32(i),
		})
		out.subtotal = out.subtotal.Add(lineTotal)
		out.taxTotal = out.taxTotal.Add(taxAmount)
	}
	return out, nil
}

func insertBillLines(ctx context.Context, repo repository.Querier, billID uuid.UUID, lines []preparedBillLine) ([]repository.BillLineItemRow, error) {
	out := make([]repository.BillLineItemRow, 0, len(lines))
	for _, l := range lines {
		row, err := repo.InsertBillLineItem(ctx, repository.InsertBillLineItemParams{
			BillID: billID, ProductID: l.params.ProductID, Description: l.params.Description,
			Quantity: l.params.Quantity, UnitPrice: l.params.UnitPrice, DiscountPercent: l.params.DiscountPercent,
			TaxRateID: l.params.TaxRateID, AccountID: l.accountID, LineTotal: l.lineTotal, SortOrder: l.sortOrder,
		})
		if err != nil {
			return nil, domain.Internal(err, "bill.lines", "failed to insert line item")
		}
		out = append(out, row)
	}
	return out, nil
}

func toDomainBill(row repository.BillRow, lineRows []repository.BillLineItemRow) domain.Bill {
	lines := make([]domain.BillLineItem, len(lineRows))
	for i, l := range lineRows {
		lines[i] = domain.BillLineItem{
			ID: uuid.UUID(l.ID.Bytes), BillID: uuid.UUID(l.BillID.Bytes),
			ProductID: uuidPtrFromPg(l.ProductID), Description: l.Description, Quantity: domain.FromNumeric(l.Quantity),
			UnitPrice: domain.Money{Amount: domain.FromNumeric(l.UnitPrice)}, DiscountPercent: domain.FromNumeric(l.DiscountPercent),
			TaxRateID: uuidPtrFromPg(l.TaxRateID), AccountID: uuid.UUID(l.AccountID.Bytes),
			LineTotal: domain.Money{Amount: domain.FromNumeric(l.LineTotal)}, SortOrder: int(l.SortOrder),
		}
	}
	postedAt := pgTimePtr(row.PostedAt)
	paidAt := pgTimePtr(row.PaidAt)
	voidedAt := pgTimePtr(row.VoidedAt)
	return domain.Bill{
		ID: uuid.UUID(row.ID.Bytes), TenantID: uuid.UUID(row.TenantID.Bytes), VendorID: uuid.UUID(row.VendorID.Bytes),
		Number: row.Number, Status: domain.BillStatus(row.Status), BillDate: row.BillDate.Time, DueDate: row.DueDate.Time,
		Memo: row.Memo, LineItems: lines,
		Subtotal: domain.Money{Amount: domain.FromNumeric(row.Subtotal)}, DiscountAmount: domain.Money{Amount: domain.FromNumeric(row.DiscountAmount)},
		ShippingAmount: domain.Money{Amount: domain.FromNumeric(row.ShippingAmount)}, TaxTotal: domain.Money{Amount: domain.FromNumeric(row.TaxTotal)},
		Total: domain.Money{Amount: domain.FromNumeric(row.Total)}, AmountPaid: domain.Money{Amount: domain.FromNumeric(row.AmountPaid)},
		CreatedAt: row.CreatedAt.Time, UpdatedAt: row.UpdatedAt.Time, PostedAt: postedAt, PaidAt: paidAt, VoidedAt: voidedAt,
	}
}
