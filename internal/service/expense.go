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

// ExpenseService records a direct cash outlay, posted on creation (when
// a paid-from account is given; otherwise no ledger entries are written)
// rather than carried through a draft/approval lifecycle like
// invoices and bills.
type ExpenseService interface {
	Create(ctx context.Context, tenantID uuid.UUID, params ExpenseParams) (domain.Expense, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Expense, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.Expense, error)
	Void(ctx context.Context, tenantID, id uuid.UUID, reason string) (domain.Expense, error)
}

type ExpenseLineItemParams struct {
	AccountID   uuid.UUID
	Description string
	Amount      decimal.Decimal
}

type ExpenseParams struct {
	VendorID          *uuid.UUID
	ExpenseDate       time.Time
	PaidFromAccountID *uuid.UUID
	Memo              string
	LineItems         []ExpenseLineItemParams
}

type expenseService struct {
	pool    *pgxpool.Pool
	repo    repository.Querier
	numbers *numbering.Service
}

func NewExpenseService(pool *pgxpool.Pool, repo repository.Querier, numbers *numbering.Service) ExpenseService {
	return &expenseService{pool: pool, repo: repo, numbers: numbers}
}

func (s *expenseService) Create(ctx context.Context, tenantID uuid.UUID, params ExpenseParams) (domain.Expense, error) {
	if len(params.LineItems) == 0 {
		return domain.Expense{}, domain.ErrExpenseNoLineItems
	}
	if params.VendorID != nil {
		if _, err := s.repo.GetVendor(ctx, tenantID, *params.VendorID); err != nil {
			return domain.Expense{}, domain.ErrVendorNotFound
		}
	}

	var total decimal.Decimal
	for _, l := range params.LineItems {
		if l.Amount.Sign() <= 0 {
			return domain.Expense{}, domain.Invalid("expense.Create", "line item amount must be positive")
		}
		if _, err := s.repo.GetAccount(ctx, tenantID, l.AccountID); err != nil {
			return domain.Expense{}, domain.ErrAccountNotFound
		}
		total = total.Add(l.Amount)
	}

	number, err := s.numbers.Allocate(ctx, tenantID, domain.DocumentClassExpense)
	if err != nil {
		return domain.Expense{}, err
	}

	var expense domain.Expense
	err = withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		row, err := repo.CreateExpense(ctx, repository.CreateExpenseParams{
			TenantID: tenantID, VendorID: params.VendorID, Number: number, ExpenseDate: params.ExpenseDate,
			PaidFromAccountID: params.PaidFromAccountID, Memo: params.Memo, Total: total,
		})
		if err != nil {
			return domain.Internal(err, "expense.Create", "failed to create expense")
		}
		expenseID := uuid.UUID(row.ID.Bytes)

		lineRows := make([]repository.ExpenseLineItemRow, 0, len(params.LineItems))
		expenseLines := make([]domain.AccountAmount, 0, len(params.LineItems))
		for i, l := range params.LineItems {
			lineRow, err := repo.InsertExpenseLineItem(ctx, repository.InsertExpenseLineItemParams{
				ExpenseID: expenseID, AccountID: l.AccountID, Description: l.Description, Amount: l.Amount, SortOrder: int32(i),
			})
			if err != nil {
				return domain.Internal(err, "expense.Create", "failed to insert line item")
			}
			lineRows = append(lineRows, lineRow)
			expenseLines = append(expenseLines, domain.AccountAmount{AccountID: l.AccountID, Amount: domain.Money{Amount: l.Amount}})
		}

		if params.PaidFromAccountID != nil {
			if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
				Kind: domain.PostingKindExpense,
				ExpensePosting: &domain.ExpensePosting{
					ExpenseID: expenseID, PaidFromAccountID: *params.PaidFromAccountID, ExpenseLines: expenseLines,
					Total: domain.Money{Amount: total}, EntryDate: params.ExpenseDate, Description: "Expense " + number,
				},
			}); err != nil {
				return err
			}
		}

		expense = toDomainExpense(row, lineRows)
		return nil
	})
	return expense, err
}

func (s *expenseService) Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Expense, error) {
	row, err := s.repo.GetExpense(ctx, tenantID, id)
	if err != nil {
		return domain.Expense{}, domain.ErrExpenseNotFound
	}
	lineRows, err := s.repo.ListExpenseLineItems(ctx, id)
	if err != nil {
		return domain.Expense{}, domain.Internal(err, "expense.Get", "failed to load line items")
	}
	return toDomainExpense(row, lineRows), nil
}

func (s *expenseService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Expense, error) {
	rows, err := s.repo.ListExpenses(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "expense.List", "failed to list expenses")
	}
	out := make([]domain.Expense, len(rows))
	for i, r := range rows {
		lineRows, err := s.repo.ListExpenseLineItems(ctx, uuid.UUID(r.ID.Bytes))
		if err != nil {
			return nil, domain.Internal(err, "expense.List", "failed to load line items")
		}
		out[i] = toDomainExpense(r, lineRows)
	}
	return out, nil
}

func (s *expenseService) Void(ctx context.Context, tenantID, id uuid.UUID, reason string) (domain.Expense, error) {
	existing, err := s.repo.GetExpense(ctx, tenantID, id)
	if err != nil {
		return domain.Expense{}, domain.ErrExpenseNotFound
	}
	if existing.VoidedAt.Valid {
		return domain.Expense{}, domain.ErrExpenseAlreadyVoid
	}

	var updated domain.Expense
	err = withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		if existing.PaidFromAccountID.Valid {
			if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
				Kind: domain.PostingKindVoid,
				VoidPosting: &domain.VoidPosting{
					OriginalTransactionType: domain.TransactionTypeExpense,
					ReversalTransactionType: domain.TransactionTypeExpenseReversal,
					SourceID:                id, EntryDate: time.Now(), Description: reason,
				},
			}); err != nil {
				return err
			}
		}

		row, err := repo.VoidExpense(ctx, tenantID, id)
		if err != nil {
			return domain.Internal(err, "expense.Void", "failed to void expense")
		}
		lineRows, err := repo.ListExpenseLineItems(ctx, id)
		if err != nil {
			return domain.Internal(err, "expense.Void", "failed to load line items")
		}
		updated = toDomainExpense(row, lineRows)
		return nil
	})
	return updated, err
}

func toDomainExpense(row repository.ExpenseRow, lineRows []repository.ExpenseLineItemRow) domain.Expense {
	lines := make([]domain.ExpenseLineItem, len(lineRows))
	for i, l := range lineRows {
		lines[i] = domain.ExpenseLineItem{
			ID: uuid.UUID(l.ID.Bytes), ExpenseID: uuid.UUID(l.ExpenseID.Bytes), AccountID: uuid.UUID(l.AccountID.Bytes),
			Description: l.Description, Amount: domain.Money{Amount: domain.FromNumeric(l.Amount)}, SortOrder: int(l.SortOrder),
		}
	}
	var voidedAt *time.Time
	if row.VoidedAt.Valid {
		t := row.VoidedAt.Time
		voidedAt = &t
	}
	return domain.Expense{
		ID: uuid.UUID(row.ID.Bytes), TenantID: uuid.UUID(row.TenantID.Bytes), VendorID: uuidPtrFromPg(row.VendorID),
		Number: row.Number, ExpenseDate: row.ExpenseDate.Time, PaidFromAccountID: uuid.UUID(row.PaidFromAccountID.Bytes),
		Memo: row.Memo, LineItems: lines, Total: domain.Money{Amount: domain.FromNumeric(row.Total)},
		CreatedAt: row.CreatedAt.Time, VoidedAt: voidedAt,
	}
}
