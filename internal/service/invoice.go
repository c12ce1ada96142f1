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

// InvoiceService manages the AR document lifecycle: Draft -> Sent -> (Partially
// Paid -> ) Paid, with Void reachable from any non-void state that has no
// payments applied.
type InvoiceService interface {
	Create(ctx context.Context, tenantID uuid.UUID, params InvoiceParams) (domain.Invoice, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, customerID *uuid.UUID, status string) ([]domain.Invoice, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, params InvoiceParams) (domain.Invoice, error)
	Send(ctx context.Context, tenantID, id uuid.UUID) (domain.Invoice, error)
	Void(ctx context.Context, tenantID, id uuid.UUID, reason string) (domain.Invoice, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// InvoiceLineItemParams is one caller-supplied line. Either ProductID or
// AccountID must resolve to a revenue account; a product supplies one by
// default, an explicit AccountID overrides it.
type InvoiceLineItemParams struct {
	ProductID       *uuid.UUID
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRateID       *uuid.UUID
	AccountID       *uuid.UUID
}

type InvoiceParams struct {
	CustomerID     uuid.UUID
	IssueDate      time.Time
	DueDate        time.Time
	Memo           string
	DiscountAmount decimal.Decimal
	ShippingAmount decimal.Decimal
	LineItems      []InvoiceLineItemParams
}

type invoiceService struct {
	pool     *pgxpool.Pool
	repo     repository.Querier
	numbers  *numbering.Service
	accounts AccountService
}

func NewInvoiceService(pool *pgxpool.Pool, repo repository.Querier, numbers *numbering.Service, accounts AccountService) InvoiceService {
	return &invoiceService{pool: pool, repo: repo, numbers: numbers, accounts: accounts}
}

func (s *invoiceService) Create(ctx context.Context, tenantID uuid.UUID, params InvoiceParams) (domain.Invoice, error) {
	if _, err := s.repo.GetCustomer(ctx, tenantID, params.CustomerID); err != nil {
		return domain.Invoice{}, domain.ErrCustomerNotFound
	}

	number, err := s.numbers.Allocate(ctx, tenantID, domain.DocumentClassInvoice)
	if err != nil {
		return domain.Invoice{}, err
	}

	var invoice domain.Invoice
	err = withTx(ctx, s.pool, func(repo repository.Querier, _ *posting.Engine) error {
		built, err := buildInvoiceLines(ctx, repo, tenantID, params.LineItems)
		if err != nil {
			return err
		}

		total := built.subtotal.Add(built.taxTotal).Add(params.ShippingAmount).Sub(params.DiscountAmount)
		row, err := repo.CreateInvoice(ctx, repository.CreateInvoiceParams{
			TenantID: tenantID, CustomerID: params.CustomerID, Number: number,
			IssueDate: params.IssueDate, DueDate: params.DueDate, Memo: params.Memo,
			Subtotal: built.subtotal, DiscountAmount: params.DiscountAmount, ShippingAmount: params.ShippingAmount,
			TaxTotal: built.taxTotal, Total: total,
		})
		if err != nil {
			return domain.Internal(err, "invoice.Create", "failed to create invoice")
		}

		lineRows, err := insertInvoiceLines(ctx, repo, uuid.UUID(row.ID.Bytes), built.lines)
		if err != nil {
			return err
		}

		invoice = toDomainInvoice(row, lineRows)
		return nil
	})
	return invoice, err
}

func (s *invoiceService) Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Invoice, error) {
	row, err := s.repo.GetInvoice(ctx, tenantID, id)
	if err != nil {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	lineRows, err := s.repo.ListInvoiceLineItems(ctx, id)
	if err != nil {
		return domain.Invoice{}, domain.Internal(err, "invoice.Get", "failed to load line items")
	}
	return toDomainInvoice(row, lineRows), nil
}

func (s *invoiceService) List(ctx context.Context, tenantID uuid.UUID, customerID *uuid.UUID, status string) ([]domain.Invoice, error) {
	rows, err := s.repo.ListInvoices(ctx, repository.ListInvoicesParams{TenantID: tenantID, CustomerID: customerID, Status: status})
	if err != nil {
		return nil, domain.Internal(err, "invoice.List", "failed to list invoices")
	}
	out := make([]domain.Invoice, len(rows))
	for i, r := range rows {
		lineRows, err := s.repo.ListInvoiceLineItems(ctx, uuid.UUID(r.ID.Bytes))
		if err != nil {
			return nil, domain.Internal(err, "invoice.List", "failed to load line items")
		}
		out[i] = toDomainInvoice(r, lineRows)
	}
	return out, nil
}

func (s *invoiceService) Update(ctx context.Context, tenantID, id uuid.UUID, params InvoiceParams) (domain.Invoice, error) {
	existing, err := s.repo.GetInvoice(ctx, tenantID, id)
	if err != nil {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	if domain.InvoiceStatus(existing.Status) != domain.InvoiceStatusDraft {
		return domain.Invoice{}, domain.ErrInvoiceNotDraft
	}

	var invoice domain.Invoice
	err = withTx(ctx, s.pool, func(repo repository.Querier, _ *posting.Engine) error {
		built, err := buildInvoiceLines(ctx, repo, tenantID, params.LineItems)
		if err != nil {
			return err
		}
		if err := repo.DeleteInvoiceLineItems(ctx, id); err != nil {
			return domain.Internal(err, "invoice.Update", "failed to clear line items")
		}

		total := built.subtotal.Add(built.taxTotal).Add(params.ShippingAmount).Sub(params.DiscountAmount)
		row, err := repo.UpdateInvoiceHeader(ctx, repository.UpdateInvoiceHeaderParams{
			TenantID: tenantID, ID: id, DueDate: params.DueDate, Memo: params.Memo,
			Subtotal: built.subtotal, DiscountAmount: params.DiscountAmount, ShippingAmount: params.ShippingAmount,
			TaxTotal: built.taxTotal, Total: total,
		})
		if err != nil {
			return domain.Internal(err, "invoice.Update", "failed to update invoice")
		}

		lineRows, err := insertInvoiceLines(ctx, repo, id, built.lines)
		if err != nil {
			return err
		}

		invoice = toDomainInvoice(row, lineRows)
		return nil
	})
	return invoice, err
}

func (s *invoiceService) Send(ctx context.Context, tenantID, id uuid.UUID) (domain.Invoice, error) {
	existing, err := s.repo.GetInvoice(ctx, tenantID, id)
	if err != nil {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	if domain.InvoiceStatus(existing.Status) != domain.InvoiceStatusDraft {
		return domain.Invoice{}, domain.ErrInvoiceNotDraft
	}

	lineRows, err := s.repo.ListInvoiceLineItems(ctx, id)
	if err != nil {
		return domain.Invoice{}, domain.Internal(err, "invoice.Send", "failed to load line items")
	}
	invoice := toDomainInvoice(existing, lineRows)

	arAccount, err := s.accounts.GetBySubtype(ctx, tenantID, domain.SubtypeAccountsReceivable)
	if err != nil {
		return domain.Invoice{}, err
	}

	revenueByAccount := map[uuid.UUID]domain.Money{}
	for _, l := range invoice.LineItems {
		revenueByAccount[l.AccountID] = revenueByAccount[l.AccountID].Add(l.LineTotal)
	}
	revenueLines := make([]domain.AccountAmount, 0, len(revenueByAccount))
	for accountID, amount := range revenueByAccount {
		revenueLines = append(revenueLines, domain.AccountAmount{AccountID: accountID, Amount: amount})
	}

	var taxAccountID uuid.UUID
	if invoice.TaxTotal.IsPositive() {
		taxAccount, err := s.accounts.GetBySubtype(ctx, tenantID, domain.SubtypeSalesTaxPayable)
		if err != nil {
			return domain.Invoice{}, err
		}
		taxAccountID = taxAccount.ID
	}

	var updated domain.Invoice
	err = withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
			Kind: domain.PostingKindInvoice,
			InvoicePosting: &domain.InvoicePosting{
				InvoiceID: id, ARAccountID: arAccount.ID, RevenueLines: revenueLines,
				TaxAccountID: taxAccountID, TaxTotal: invoice.TaxTotal, Total: invoice.Total,
				EntryDate: invoice.IssueDate, Description: "Invoice " + invoice.Number,
			},
		}); err != nil {
			return err
		}

		now := time.Now()
		row, err := repo.UpdateInvoiceStatus(ctx, repository.UpdateInvoiceStatusParams{
			TenantID: tenantID, ID: id, Status: string(domain.InvoiceStatusSent),
			AmountPaid: invoice.AmountPaid.Amount, PostedAt: &now,
		})
		if err != nil {
			return domain.Internal(err, "invoice.Send", "failed to update invoice status")
		}
		updated = toDomainInvoice(row, lineRows)
		return nil
	})
	return updated, err
}

func (s *invoiceService) Void(ctx context.Context, tenantID, id uuid.UUID, reason string) (domain.Invoice, error) {
	existing, err := s.repo.GetInvoice(ctx, tenantID, id)
	if err != nil {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	status := domain.InvoiceStatus(existing.Status)
	if status == domain.InvoiceStatusVoid {
		return domain.Invoice{}, domain.ErrInvoiceAlreadyVoid
	}
	amountPaid := domain.Money{Amount: domain.FromNumeric(existing.AmountPaid)}
	if amountPaid.IsPositive() {
		return domain.Invoice{}, domain.ErrInvoiceHasPayments
	}

	var updated domain.Invoice
	err = withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		if status != domain.InvoiceStatusDraft {
			if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
				Kind: domain.PostingKindVoid,
				VoidPosting: &domain.VoidPosting{
					OriginalTransactionType: domain.TransactionTypeInvoice,
					ReversalTransactionType: domain.TransactionTypeInvoiceReversal,
					SourceID:                id, EntryDate: time.Now(), Description: reason,
				},
			}); err != nil {
				return err
			}
		}

		now := time.Now()
		row, err := repo.UpdateInvoiceStatus(ctx, repository.UpdateInvoiceStatusParams{
			TenantID: tenantID, ID: id, Status: string(domain.InvoiceStatusVoid),
			AmountPaid: amountPaid.Amount, PaidAt: nil, VoidedAt: &now,
		})
		if err != nil {
			return domain.Internal(err, "invoice.Void", "failed to update invoice status")
		}
		lineRows, err := repo.ListInvoiceLineItems(ctx, id)
		if err != nil {
			return domain.Internal(err, "invoice.Void", "failed to load line items")
		}
		updated = toDomainInvoice(row, lineRows)
		return nil
	})
	return updated, err
}

func (s *invoiceService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	existing, err := s.repo.GetInvoice(ctx, tenantID, id)
	if err != nil {
		return domain.ErrInvoiceNotFound
	}
	if domain.InvoiceStatus(existing.Status) != domain.InvoiceStatusDraft {
		return domain.ErrInvoiceCannotDeleteSent
	}
	return withTx(ctx, s.pool, func(repo repository.Querier, _ *posting.Engine) error {
		if err := repo.DeleteInvoiceLineItems(ctx, id); err != nil {
			return domain.Internal(err, "invoice.Delete", "failed to delete line items")
		}
		if err := repo.DeleteInvoice(ctx, tenantID, id); err != nil {
			return domain.Internal(err, "invoice.Delete", "failed to delete invoice")
		}
		return nil
	})
}

type builtInvoiceLines struct {
	lines    []preparedLine
	subtotal decimal.Decimal
	taxTotal decimal.Decimal
}

type preparedLine struct {
	params    InvoiceLineItemParams
	accountID uuid.UUID
	lineTotal decimal.Decimal
	taxAmount decimal.Decimal
	sortOrder int32
}

func buildInvoiceLines(ctx context.Context, repo repository.Querier, tenantID uuid.UUID, items []InvoiceLineItemParams) (builtInvoiceLines, error) {
	if len(items) == 0 {
		return builtInvoiceLines{}, domain.ErrInvoiceNoLineItems
	}

	var out builtInvoiceLines
	for i, item := range items {
		if item.Quantity.LessThan(domain.MinLineItemQuantity) {
			return builtInvoiceLines{}, domain.Invalid("invoice.lines", "quantity must be at least 0.0001")
		}
		if item.DiscountPercent.IsNegative() || item.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
			return builtInvoiceLines{}, domain.Invalid("invoice.lines", "discount_percent must be between 0 and 100")
		}

		accountID := item.AccountID
		if accountID == nil && item.ProductID != nil {
			product, err := repo.GetProduct(ctx, tenantID, *item.ProductID)
			if err != nil {
				return builtInvoiceLines{}, domain.ErrProductNotFound
			}
			if product.IncomeAccountID.Valid {
				id := uuid.UUID(product.IncomeAccountID.Bytes)
				accountID = &id
			}
		}
		if accountID == nil {
			return builtInvoiceLines{}, domain.Invalid("invoice.lines", "a line item requires an account, directly or via its product")
		}

		discountFactor := decimal.NewFromInt(1).Sub(item.DiscountPercent.Div(decimal.NewFromInt(100)))
		lineTotal := item.UnitPrice.Mul(item.Quantity).Mul(discountFactor).Round(2)
		var taxAmount decimal.Decimal
		if item.TaxRateID != nil {
			rate, err := repo.GetTaxRate(ctx, tenantID, *item.TaxRateID)
			if err != nil {
				return builtInvoiceLines{}, domain.ErrTaxRateNotFound
			}
			taxAmount = lineTotal.Mul(domain.FromNumeric(rate.Rate)).Round(2)
		}

		out.lines = append(out.lines, preparedLine{
			params: item, accountID: *accountID, lineTotal: lineTotal, taxAmount: taxAmount, sortOrder: int32(i),
		})
		out.subtotal = out.subtotal.Add(lineTotal)
		out.taxTotal = out.taxTotal.Add(taxAmount)
	}
	return out, nil
}

func insertInvoiceLines(ctx context.Context, repo repository.Querier, invoiceID uuid.UUID, lines []preparedLine) ([]repository.InvoiceLineItemRow, error) {
	out := make([]repository.InvoiceLineItemRow, 0, len(lines))
	for _, l := range lines {
		row, err := repo.InsertInvoiceLineItem(ctx, repository.InsertInvoiceLineItemParams{
			InvoiceID: invoiceID, ProductID: l.params.ProductID, Description: l.params.Description,
			Quantity: l.params.Quantity, UnitPrice: l.params.UnitPrice, DiscountPercent: l.params.DiscountPercent,
			TaxRateID: l.params.TaxRateID, AccountID: l.accountID, LineTotal: l.lineTotal, SortOrder: l.sortOrder,
		})
		if err != nil {
			return nil, domain.Internal(err, "invoice.lines", "failed to insert line item")
		}
		out = append(out, row)
	}
	return out, nil
}

func toDomainInvoice(row repository.InvoiceRow, lineRows []repository.InvoiceLineItemRow) domain.Invoice {
	lines := make([]domain.InvoiceLineItem, len(lineRows))
	for i, l := range lineRows {
		lines[i] = domain.InvoiceLineItem{
			ID: uuid.UUID(l.ID.Bytes), InvoiceID: uuid.UUID(l.InvoiceID.Bytes),
			ProductID: uuidPtrFromPg(l.ProductID), Description: l.Description, Quantity: domain.FromNumeric(l.Quantity),
			UnitPrice: domain.Money{Amount: domain.FromNumeric(l.UnitPrice)}, DiscountPercent: domain.FromNumeric(l.DiscountPercent),
			TaxRateID: uuidPtrFromPg(l.TaxRateID), AccountID: uuid.UUID(l.AccountID.Bytes),
			LineTotal: domain.Money{Amount: domain.FromNumeric(l.LineTotal)}, SortOrder: int(l.SortOrder),
		}
	}
	postedAt := pgTimePtr(row.PostedAt)
	paidAt := pgTimePtr(row.PaidAt)
	voidedAt := pgTimePtr(row.VoidedAt)
	return domain.Invoice{
		ID: uuid.UUID(row.ID.Bytes), TenantID: uuid.UUID(row.TenantID.Bytes), CustomerID: uuid.UUID(row.CustomerID.Bytes),
		Number: row.Number, Status: domain.InvoiceStatus(row.Status), IssueDate: row.IssueDate.Time, DueDate: row.DueDate.Time,
		Memo: row.Memo, LineItems: lines,
		Subtotal: domain.Money{Amount: domain.FromNumeric(row.Subtotal)}, DiscountAmount: domain.Money{Amount: domain.FromNumeric(row.DiscountAmount)},
		ShippingAmount: domain.Money{Amount: domain.FromNumeric(row.ShippingAmount)}, TaxTotal: domain.Money{Amount: domain.FromNumeric(row.TaxTotal)},
		Total: domain.Money{Amount: domain.FromNumeric(row.Total)}, AmountPaid: domain.Money{Amount: domain.FromNumeric(row.AmountPaid)},
		CreatedAt: row.CreatedAt.Time, UpdatedAt: row.UpdatedAt.Time, PostedAt: postedAt, PaidAt: paidAt, VoidedAt: voidedAt,
	}
}
