// Package posting is the posting engine: it turns a
// closed set of PostingRequest variants into a balanced PostingGroup,
// validates it, and persists the resulting ledger entries. Callers are
// expected to invoke Post inside a transaction already open on the
// document write it accompanies, so a posting failure rolls the whole
// document operation back.
package posting

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

// Repository is the subset of repository.Querier the posting engine
// needs: append a ledger entry, and look up a document's existing
// entries (for Void).
type Repository interface {
	InsertLedgerEntry(ctx context.Context, arg repository.InsertLedgerEntryParams) (repository.LedgerEntryRow, error)
	ListLedgerEntriesBySource(ctx context.Context, tenantID uuid.UUID, transactionType string, sourceID uuid.UUID) ([]repository.LedgerEntryRow, error)
}

// Engine posts PostingRequest variants to the general ledger.
type Engine struct {
	repo Repository
}

func New(repo Repository) *Engine {
	return &Engine{repo: repo}
}

// Post validates req and persists its ledger entries, returning them in
// the order written. Every call posts a single document's worth of
// entries as one balanced group; two distinct documents are never
// merged into a single call.
func (e *Engine) Post(ctx context.Context, tenantID uuid.UUID, req domain.PostingRequest) ([]domain.LedgerEntry, error) {
	group, err := e.buildGroup(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	if err := validateGroup(group); err != nil {
		return nil, err
	}

	entries := make([]domain.LedgerEntry, 0, len(group.Lines))
	for _, line := range group.Lines {
		row, err := e.repo.InsertLedgerEntry(ctx, repository.InsertLedgerEntryParams{
			TenantID:        tenantID,
			AccountID:       line.AccountID,
			TransactionType: string(group.TransactionType),
			SourceID:        group.SourceID,
			EntryDate:       group.EntryDate,
			Description:     pick(line.Description, group.Description),
			DebitAmount:     line.DebitAmount.Amount,
			CreditAmount:    line.CreditAmount.Amount,
		})
		if err != nil {
			return nil, domain.Internal(err, "posting.Post", "failed to write ledger entry")
		}
		entries = append(entries, toDomainEntry(row))
	}

	return entries, nil
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// buildGroup dispatches on req.Kind to assemble the balanced group of
// lines each variant implies. Void is the only variant requiring a
// repository round trip (it reposts the original document's entries
// with sides swapped), so it alone takes ctx.
func (e *Engine) buildGroup(ctx context.Context, tenantID uuid.UUID, req domain.PostingRequest) (domain.PostingGroup, error) {
	switch req.Kind {
	case domain.PostingKindInvoice:
		return buildInvoiceGroup(tenantID, req.InvoicePosting)
	case domain.PostingKindPayment:
		return buildPaymentGroup(tenantID, req.PaymentPosting)
	case domain.PostingKindBill:
		return buildBillGroup(tenantID, req.BillPosting)
	case domain.PostingKindVendorPayment:
		return buildVendorPaymentGroup(tenantID, req.VendorPaymentPosting)
	case domain.PostingKindExpense:
		return buildExpenseGroup(tenantID, req.ExpensePosting)
	case domain.PostingKindJournalEntry:
		return buildJournalEntryGroup(tenantID, req.JournalEntryPosting)
	case domain.PostingKindOpeningBalance:
		return buildOpeningBalanceGroup(tenantID, req.OpeningBalancePosting)
	case domain.PostingKindVoid:
		return e.buildVoidGroup(ctx, tenantID, req.VoidPosting)
	default:
		return domain.PostingGroup{}, domain.Invalid("posting.buildGroup", "unknown posting kind")
	}
}

func buildInvoiceGroup(tenantID uuid.UUID, p *domain.InvoicePosting) (domain.PostingGroup, error) {
	if p == nil {
		return domain.PostingGroup{}, domain.Invalid("posting.buildInvoiceGroup", "invoice posting is required")
	}
	lines := []domain.PostingLine{debitLine(p.ARAccountID, p.Total)}
	for _, rl := range p.RevenueLines {
		lines = append(lines, creditLine(rl.AccountID, rl.Amount))
	}
	if p.TaxTotal.IsPositive() {
		lines = append(lines, creditLine(p.TaxAccountID, p.TaxTotal))
	}
	return domain.PostingGroup{
		TenantID:        tenantID,
		TransactionType: domain.TransactionTypeInvoice,
		SourceID:        p.InvoiceID,
		EntryDate:       p.EntryDate,
		Description:     p.Description,
		Lines:           lines,
	}, nil
}

func buildPaymentGroup(tenantID uuid.UUID, p *domain.PaymentPosting) (domain.PostingGroup, error) {
	if p == nil {
		return domain.PostingGroup{}, domain.Invalid("posting.buildPaymentGroup", "payment posting is required")
	}
	return domain.PostingGroup{
		TenantID:        tenantID,
		TransactionType: domain.TransactionTypePayment,
		SourceID:        p.PaymentID,
		EntryDate:       p.EntryDate,
		Description:     p.Description,
		Lines: []domain.PostingLine{
			debitLine(p.DepositToAccountID, p.Amount),
			creditLine(p.ARAccountID, p.Amount),
		},
	}, nil
}

func buildBillGroup(tenantID uuid.UUID, p *domain.BillPosting) (domain.PostingGroup, error) {
	if p == nil {
		return domain.PostingGroup{}, domain.Invalid("posting.buildBillGroup", "bill posting is required")
	}
	lines := []domain.PostingLine{creditLine(p.APAccountID, p.Total)}
	for _, el := range p.ExpenseLines {
		lines = append(lines, debitLine(el.AccountID, el.Amount))
	}
	if p.TaxTotal.IsPositive() {
		lines = append(lines, debitLine(p.TaxAccountID, p.TaxTotal))
	}
	return domain.PostingGroup{
		TenantID:        tenantID,
		TransactionType: domain.TransactionTypeBill,
		SourceID:        p.BillID,
		EntryDate:       p.EntryDate,
		Description:     p.Description,
		Lines:           lines,
	}, nil
}

func buildVendorPaymentGroup(tenantID uuid.UUID, p *domain.VendorPaymentPosting) (domain.PostingGroup, error) {
	if p == nil {
		return domain.PostingGroup{}, domain.Invalid("posting.buildVendorPaymentGroup", "vendor payment posting is required")
	}
	return domain.PostingGroup{
		TenantID:        tenantID,
		TransactionType: domain.TransactionTypeVendorPayment,
		SourceID:        p.VendorPaymentID,
		EntryDate:       p.EntryDate,
		Description:     p.Description,
		Lines: []domain.PostingLine{
			debitLine(p.APAccountID, p.Amount),
			creditLine(p.PayFromAccountID, p.Amount),
		},
	}, nil
}

func buildExpenseGroup(tenantID uuid.UUID, p *domain.ExpensePosting) (domain.PostingGroup, error) {
	if p == nil {
		return domain.PostingGroup{}, domain.Invalid("posting.buildExpenseGroup", "expense posting is required")
	}
	lines := make([]domain.PostingLine, 0, len(p.ExpenseLines)+1)
	for _, el := range p.ExpenseLines {
		lines = append(lines, debitLine(el.AccountID, el.Amount))
	}
	lines = append(lines, creditLine(p.PaidFromAccountID, p.Total))
	return domain.PostingGroup{
		TenantID:        tenantID,
		TransactionType: domain.TransactionTypeExpense,
		SourceID:        p.ExpenseID,
		EntryDate:       p.EntryDate,
		Description:     p.Description,
		Lines:           lines,
	}, nil
}

func buildJournalEntryGroup(tenantID uuid.UUID, p *domain.JournalEntryPosting) (domain.PostingGroup, error) {
	if p == nil {
		return domain.PostingGroup{}, domain.Invalid("posting.buildJournalEntryGroup", "journal entry posting is required")
	}
	return domain.PostingGroup{
		TenantID:        tenantID,
		TransactionType: domain.TransactionTypeJournalEntry,
		SourceID:        p.JournalEntryID,
		EntryDate:       p.EntryDate,
		Description:     p.Description,
		Lines:           p.Lines,
	}, nil
}

// buildOpeningBalanceGroup posts a new account's opening balance against
// the tenant's Owner's Equity account: the new account takes its normal
// side, equity takes the other, so the pair balances by construction.
func buildOpeningBalanceGroup(tenantID uuid.UUID, p *domain.OpeningBalancePosting) (domain.PostingGroup, error) {
	if p == nil {
		return domain.PostingGroup{}, domain.Invalid("posting.buildOpeningBalanceGroup", "opening balance posting is required")
	}
	var accountLine, equityLine domain.PostingLine
	if p.AccountNormalSide == domain.NormalSideDebit {
		accountLine = debitLine(p.AccountID, p.Amount)
		equityLine = creditLine(p.EquityAccountID, p.Amount)
	} else {
		accountLine = creditLine(p.AccountID, p.Amount)
		equityLine = debitLine(p.EquityAccountID, p.Amount)
	}
	return domain.PostingGroup{
		TenantID:        tenantID,
		TransactionType: domain.TransactionTypeOpeningBalance,
		SourceID:        p.AccountID,
		EntryDate:       p.EntryDate,
		Description:     p.Description,
		Lines:           []domain.PostingLine{accountLine, equityLine},
	}, nil
}

// buildVoidGroup reposts every entry written under (OriginalTransactionType,
// SourceID) with its debit and credit swapped, under ReversalTransactionType
// — the void/reversal policy decided in DESIGN.md: a void never mutates or
// deletes a prior ledger entry, it only adds the compensating group.
func (e *Engine) buildVoidGroup(ctx context.Context, tenantID uuid.UUID, p *domain.VoidPosting) (domain.PostingGroup, error) {
	if p == nil {
		return domain.PostingGroup{}, domain.Invalid("posting.buildVoidGroup", "void posting is required")
	}
	originals, err := e.repo.ListLedgerEntriesBySource(ctx, tenantID, string(p.OriginalTransactionType), p.SourceID)
	if err != nil {
		return domain.PostingGroup{}, domain.Internal(err, "posting.buildVoidGroup", "failed to load original entries")
	}
	if len(originals) == 0 {
		return domain.PostingGroup{}, domain.Precondition("posting.buildVoidGroup", "no posted entries found to reverse")
	}

	lines := make([]domain.PostingLine, 0, len(originals))
	for _, o := range originals {
		lines = append(lines, domain.PostingLine{
			AccountID:    uuid.UUID(o.AccountID.Bytes),
			DebitAmount:  domain.Money{Amount: domain.FromNumeric(o.CreditAmount)},
			CreditAmount: domain.Money{Amount: domain.FromNumeric(o.DebitAmount)},
			Description:  p.Description,
		})
	}

	return domain.PostingGroup{
		TenantID:        tenantID,
		TransactionType: p.ReversalTransactionType,
		SourceID:        p.SourceID,
		EntryDate:       p.EntryDate,
		Description:     p.Description,
		Lines:           lines,
	}, nil
}

func debitLine(accountID uuid.UUID, amount domain.Money) domain.PostingLine {
	return domain.PostingLine{AccountID: accountID, DebitAmount: amount}
}

func creditLine(accountID uuid.UUID, amount domain.Money) domain.PostingLine {
	return domain.PostingLine{AccountID: accountID, CreditAmount: amount}
}

// validateGroup enforces the posting group invariants: at least two lines,
// exactly one non-zero side per line, and debits equal to credits within
// the 0.01 tolerance.
func validateGroup(g domain.PostingGroup) error {
	if len(g.Lines) < 2 {
		return domain.ErrEmptyPosting
	}

	var debitTotal, creditTotal domain.Money
	for _, line := range g.Lines {
		debitPositive := line.DebitAmount.IsPositive()
		creditPositive := line.CreditAmount.IsPositive()
		if debitPositive == creditPositive {
			return domain.ErrMixedSidedLine
		}
		debitTotal = debitTotal.Add(line.DebitAmount)
		creditTotal = creditTotal.Add(line.CreditAmount)
	}

	if !debitTotal.EqualWithinTolerance(creditTotal) {
		return domain.ErrUnbalancedPosting
	}

	return nil
}

func toDomainEntry(row repository.LedgerEntryRow) domain.LedgerEntry {
	return domain.LedgerEntry{
		ID:              uuid.UUID(row.ID.Bytes),
		TenantID:        uuid.UUID(row.TenantID.Bytes),
		AccountID:       uuid.UUID(row.AccountID.Bytes),
		TransactionType: domain.TransactionType(row.TransactionType),
		SourceID:        uuid.UUID(row.SourceID.Bytes),
		EntryDate:       row.EntryDate.Time,
		Description:     row.Description,
		DebitAmount:     domain.Money{Amount: domain.FromNumeric(row.DebitAmount)},
		CreditAmount:    domain.Money{Amount: domain.FromNumeric(row.CreditAmount)},
		IsPosted:        row.IsPosted,
		CreatedAt:       row.CreatedAt.Time,
	}
}
