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

// JournalEntryService records a manual, freeform posting — each line
// specifies its own debit or credit side directly, so the posting engine
// does no derivation beyond validating the group balances.
type JournalEntryService interface {
	Create(ctx context.Context, tenantID uuid.UUID, params JournalEntryParams) (domain.JournalEntry, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (domain.JournalEntry, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.JournalEntry, error)
	Void(ctx context.Context, tenantID, id uuid.UUID, reason string) (domain.JournalEntry, error)
}

type JournalEntryLineParams struct {
	AccountID    uuid.UUID
	Description  string
	DebitAmount  decimal.Decimal
	CreditAmount decimal.Decimal
}

type JournalEntryParams struct {
	EntryDate time.Time
	Memo      string
	Lines     []JournalEntryLineParams
}

type journalEntryService struct {
	pool    *pgxpool.Pool
	repo    repository.Querier
	numbers *numbering.Service
}

func NewJournalEntryService(pool *pgxpool.Pool, repo repository.Querier, numbers *numbering.Service) JournalEntryService {
	return &journalEntryService{pool: pool, repo: repo, numbers: numbers}
}

func (s *journalEntryService) Create(ctx context.Context, tenantID uuid.UUID, params JournalEntryParams) (domain.JournalEntry, error) {
	if len(params.Lines) < 2 {
		return domain.JournalEntry{}, domain.ErrJournalEntryTooFewLines
	}
	postingLines := make([]domain.PostingLine, 0, len(params.Lines))
	for _, l := range params.Lines {
		if _, err := s.repo.GetAccount(ctx, tenantID, l.AccountID); err != nil {
			return domain.JournalEntry{}, domain.ErrAccountNotFound
		}
		if (l.DebitAmount.IsZero() && l.CreditAmount.IsZero()) || (l.DebitAmount.IsPositive() && l.CreditAmount.IsPositive()) {
			return domain.JournalEntry{}, domain.ErrMixedSidedLine
		}
		postingLines = append(postingLines, domain.PostingLine{
			AccountID: l.AccountID, Description: l.Description,
			DebitAmount: domain.Money{Amount: l.DebitAmount}, CreditAmount: domain.Money{Amount: l.CreditAmount},
		})
	}

	number, err := s.numbers.Allocate(ctx, tenantID, domain.DocumentClassJournalEntry)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	var entry domain.JournalEntry
	err = withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		row, err := repo.CreateJournalEntry(ctx, repository.CreateJournalEntryParams{
			TenantID: tenantID, Number: number, EntryDate: params.EntryDate, Memo: params.Memo,
		})
		if err != nil {
			return domain.Internal(err, "journalentry.Create", "failed to create journal entry")
		}
		entryID := uuid.UUID(row.ID.Bytes)

		lineRows := make([]repository.JournalEntryLineRow, 0, len(params.Lines))
		for i, l := range params.Lines {
			lineRow, err := repo.InsertJournalEntryLine(ctx, repository.InsertJournalEntryLineParams{
				JournalEntryID: entryID, AccountID: l.AccountID, Description: l.Description,
				DebitAmount: l.DebitAmount, CreditAmount: l.CreditAmount, SortOrder: int32(i),
			})
			if err != nil {
				return domain.Internal(err, "journalentry.Create", "failed to insert line")
			}
			lineRows = append(lineRows, lineRow)
		}

		if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
			Kind: domain.PostingKindJournalEntry,
			JournalEntryPosting: &domain.JournalEntryPosting{
				JournalEntryID: entryID, Lines: postingLines, EntryDate: params.EntryDate, Description: "Journal entry " + number,
			},
		}); err != nil {
			return err
		}

		entry = toDomainJournalEntry(row, lineRows)
		return nil
	})
	return entry, err
}

func (s *journalEntryService) Get(ctx context.Context, tenantID, id uuid.UUID) (domain.JournalEntry, error) {
	row, err := s.repo.GetJournalEntry(ctx, tenantID, id)
	if err != nil {
		return domain.JournalEntry{}, domain.ErrJournalEntryNotFound
	}
	lineRows, err := s.repo.ListJournalEntryLines(ctx, id)
	if err != nil {
		return domain.JournalEntry{}, domain.Internal(err, "journalentry.Get", "failed to load lines")
	}
	return toDomainJournalEntry(row, lineRows), nil
}

func (s *journalEntryService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.JournalEntry, error) {
	rows, err := s.repo.ListJournalEntries(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "journalentry.List", "failed to list journal entries")
	}
	out := make([]domain.JournalEntry, len(rows))
	for i, r := range rows {
		lineRows, err := s.repo.ListJournalEntryLines(ctx, uuid.UUID(r.ID.Bytes))
		if err != nil {
			return nil, domain.Internal(err, "journalentry.List", "failed to load lines")
		}
		out[i] = toDomainJournalEntry(r, lineRows)
	}
	return out, nil
}

func (s *journalEntryService) Void(ctx context.Context, tenantID, id uuid.UUID, reason string) (domain.JournalEntry, error) {
	existing, err := s.repo.GetJournalEntry(ctx, tenantID, id)
	if err != nil {
		return domain.JournalEntry{}, domain.ErrJournalEntryNotFound
	}
	if existing.VoidedAt.Valid {
		return domain.JournalEntry{}, domain.ErrJournalEntryAlreadyVoid
	}

	var updated domain.JournalEntry
	err = withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
			Kind: domain.PostingKindVoid,
			VoidPosting: &domain.VoidPosting{
				OriginalTransactionType: domain.TransactionTypeJournalEntry,
				ReversalTransactionType: domain.TransactionTypeJournalEntryReversal,
				SourceID:                id, EntryDate: time.Now(), Description: reason,
			},
		}); err != nil {
			return err
		}

		row, err := repo.VoidJournalEntry(ctx, tenantID, id)
		if err != nil {
			return domain.Internal(err, "journalentry.Void", "failed to void journal entry")
		}
		lineRows, err := repo.ListJournalEntryLines(ctx, id)
		if err != nil {
			return domain.Internal(err, "journalentry.Void", "failed to load lines")
		}
		updated = toDomainJournalEntry(row, lineRows)
		return nil
	})
	return updated, err
}

func toDomainJournalEntry(row repository.JournalEntryRow, lineRows []repository.JournalEntryLineRow) domain.JournalEntry {
	lines := make([]domain.JournalEntryLine, len(lineRows))
	for i, l := range lineRows {
		lines[i] = domain.JournalEntryLine{
			ID: uuid.UUID(l.ID.Bytes), JournalEntryID: uuid.UUID(l.JournalEntryID.Bytes), AccountID: uuid.UUID(l.AccountID.Bytes),
			Description: l.Description, DebitAmount: domain.Money{Amount: domain.FromNumeric(l.DebitAmount)},
			CreditAmount: domain.Money{Amount: domain.FromNumeric(l.CreditAmount)}, SortOrder: int(l.SortOrder),
		}
	}
	var voidedAt *time.Time
	if row.VoidedAt.Valid {
		t := row.VoidedAt.Time
		voidedAt = &t
	}
	return domain.JournalEntry{
		ID: uuid.UUID(row.ID.Bytes), TenantID: uuid.UUID(row.TenantID.Bytes), Number: row.Number,
		EntryDate: row.EntryDate.Time, Memo: row.Memo, Lines: lines,
		CreatedAt: row.CreatedAt.Time, VoidedAt: voidedAt,
	}
}
