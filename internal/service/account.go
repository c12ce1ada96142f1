// Package service implements the business-rule layer (chart of
// accounts, document services) on top of internal/repository,
// internal/numbering, and internal/posting. Every exported method takes
// an explicit tenantID — services hold no per-tenant state, since a
// single process serves every tenant.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/posting"
	"github.com/ledgerkeep/core/internal/repository"
)

// AccountService manages the chart of accounts.
type AccountService interface {
	Create(ctx context.Context, tenantID uuid.UUID, params CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (domain.AccountWithBalance, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.Account, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, params UpdateAccountParams) (domain.Account, error)
	Deactivate(ctx context.Context, tenantID, id uuid.UUID) (domain.Account, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	SeedDefaultChart(ctx context.Context, tenantID uuid.UUID) (map[domain.AccountSubtype]uuid.UUID, error)
	GetBySubtype(ctx context.Context, tenantID uuid.UUID, subtype domain.AccountSubtype) (domain.Account, error)
}

// CreateAccountParams are the caller-supplied fields for a new account.
type CreateAccountParams struct {
	AccountNumber   string
	Name            string
	Type            domain.AccountType
	Subtype         domain.AccountSubtype
	ParentAccountID *uuid.UUID
	Description     string
	IsSystemAccount bool
	OpeningBalance  decimal.Decimal
}

// UpdateAccountParams are the mutable fields of an existing account.
// Type, subtype, and account number are immutable after creation: the
// account type cannot change once ledger entries may reference it.
type UpdateAccountParams struct {
	Name        string
	Description string
	IsActive    bool
}

type accountService struct {
	pool *pgxpool.Pool
	repo repository.Querier
}

func NewAccountService(pool *pgxpool.Pool, repo repository.Querier) AccountService {
	return &accountService{pool: pool, repo: repo}
}

func (s *accountService) Create(ctx context.Context, tenantID uuid.UUID, params CreateAccountParams) (domain.Account, error) {
	if !domain.ValidAccountType(params.Type) {
		return domain.Account{}, domain.Invalid("account.Create", "invalid account type")
	}
	if params.Name == "" {
		return domain.Account{}, domain.Invalid("account.Create", "account name is required")
	}

	if params.ParentAccountID != nil {
		parent, err := s.repo.GetAccount(ctx, tenantID, *params.ParentAccountID)
		if err != nil {
			return domain.Account{}, domain.NotFound("account.Create", "parent account", params.ParentAccountID.String())
		}
		if domain.AccountType(parent.Type) != params.Type {
			return domain.Account{}, domain.ErrParentTypeMismatch
		}
	}

	if params.AccountNumber != "" {
		if _, err := s.repo.GetAccountByNumber(ctx, tenantID, params.AccountNumber); err == nil {
			return domain.Account{}, domain.ErrAccountNumberConflict
		}
	}

	var equityAccountID uuid.UUID
	if params.OpeningBalance.IsPositive() && params.Subtype != domain.SubtypeOwnersEquity {
		equityAccount, err := s.GetBySubtype(ctx, tenantID, domain.SubtypeOwnersEquity)
		if err != nil {
			return domain.Account{}, err
		}
		equityAccountID = equityAccount.ID
	}

	var account domain.Account
	err := withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		row, err := repo.CreateAccount(ctx, repository.CreateAccountParams{
			TenantID:        tenantID,
			AccountNumber:   params.AccountNumber,
			Name:            params.Name,
			Type:            string(params.Type),
			Subtype:         string(params.Subtype),
			ParentAccountID: params.ParentAccountID,
			Description:     params.Description,
			IsSystemAccount: params.IsSystemAccount,
		})
		if err != nil {
			return domain.Internal(err, "account.Create", "failed to create account")
		}
		account = toDomainAccount(row)

		if equityAccountID != uuid.Nil {
			if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
				Kind: domain.PostingKindOpeningBalance,
				OpeningBalancePosting: &domain.OpeningBalancePosting{
					AccountID: account.ID, AccountNormalSide: account.NormalSide(), EquityAccountID: equityAccountID,
					Amount: domain.Money{Amount: params.OpeningBalance}, EntryDate: time.Now(),
					Description: "Opening balance: " + account.Name,
				},
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (s *accountService) Get(ctx context.Context, tenantID, id uuid.UUID) (domain.AccountWithBalance, error) {
	row, err := s.repo.GetAccount(ctx, tenantID, id)
	if err != nil {
		return domain.AccountWithBalance{}, domain.ErrAccountNotFound
	}
	account := toDomainAccount(row)

	balRow, err := s.repo.GetAccountBalance(ctx, tenantID, id)
	if err != nil {
		return domain.AccountWithBalance{}, domain.Internal(err, "account.Get", "failed to load balance")
	}
	balance := toAccountBalance(account, balRow)

	children, err := s.repo.ListChildAccounts(ctx, tenantID, id)
	if err != nil {
		return domain.AccountWithBalance{}, domain.Internal(err, "account.Get", "failed to load children")
	}
	summaries := make([]domain.AccountSummary, 0, len(children))
	for _, c := range children {
		childBal, err := s.repo.GetAccountBalance(ctx, tenantID, uuid.UUID(c.ID.Bytes))
		if err != nil {
			return domain.AccountWithBalance{}, domain.Internal(err, "account.Get", "failed to load child balance")
		}
		childAccount := toDomainAccount(c)
		summaries = append(summaries, domain.AccountSummary{
			ID:      childAccount.ID,
			Name:    childAccount.Name,
			Type:    childAccount.Type,
			Balance: toAccountBalance(childAccount, childBal).Balance,
		})
	}

	return domain.AccountWithBalance{Account: account, Balance: balance, Children: summaries}, nil
}

func (s *accountService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Account, error) {
	rows, err := s.repo.ListAccounts(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "account.List", "failed to list accounts")
	}
	out := make([]domain.Account, len(rows))
	for i, r := range rows {
		out[i] = toDomainAccount(r)
	}
	return out, nil
}

func (s *accountService) Update(ctx context.Context, tenantID, id uuid.UUID, params UpdateAccountParams) (domain.Account, error) {
	existing, err := s.repo.GetAccount(ctx, tenantID, id)
	if err != nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if existing.IsSystemAccount && !params.IsActive {
		return domain.Account{}, domain.ErrCannotDeactivateSystem
	}

	row, err := s.repo.UpdateAccount(ctx, repository.UpdateAccountParams{
		TenantID:    tenantID,
		ID:          id,
		Name:        params.Name,
		Description: params.Description,
		IsActive:    params.IsActive,
	})
	if err != nil {
		return domain.Account{}, domain.Internal(err, "account.Update", "failed to update account")
	}
	return toDomainAccount(row), nil
}

func (s *accountService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) (domain.Account, error) {
	existing, err := s.repo.GetAccount(ctx, tenantID, id)
	if err != nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if existing.IsSystemAccount {
		return domain.Account{}, domain.ErrCannotDeactivateSystem
	}
	return s.Update(ctx, tenantID, id, UpdateAccountParams{
		Name:        existing.Name,
		Description: existing.Description,
		IsActive:    false,
	})
}

func (s *accountService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	existing, err := s.repo.GetAccount(ctx, tenantID, id)
	if err != nil {
		return domain.ErrAccountNotFound
	}
	if existing.IsSystemAccount {
		return domain.ErrCannotDeleteSystem
	}

	children, err := s.repo.ListChildAccounts(ctx, tenantID, id)
	if err != nil {
		return domain.Internal(err, "account.Delete", "failed to check child accounts")
	}
	if len(children) > 0 {
		return domain.ErrAccountHasChildren
	}

	count, err := s.repo.CountLedgerEntriesForAccount(ctx, tenantID, id)
	if err != nil {
		return domain.Internal(err, "account.Delete", "failed to check ledger entries")
	}
	if count > 0 {
		return domain.ErrAccountHasLedgerEntries
	}

	if err := s.repo.DeleteAccount(ctx, tenantID, id); err != nil {
		return domain.Internal(err, "account.Delete", "failed to delete account")
	}
	return nil
}

// GetBySubtype returns the tenant's active account of the given subtype.
// Document services use this to find the system accounts (AR, AP, sales
// tax payable, ...) a posting should target without the caller having to
// track account ids by hand. Ambiguous when a tenant has more than one
// active account of the same subtype; the first by account number wins.
func (s *accountService) GetBySubtype(ctx context.Context, tenantID uuid.UUID, subtype domain.AccountSubtype) (domain.Account, error) {
	rows, err := s.repo.ListAccounts(ctx, tenantID)
	if err != nil {
		return domain.Account{}, domain.Internal(err, "account.GetBySubtype", "failed to list accounts")
	}
	for _, r := range rows {
		if domain.AccountSubtype(r.Subtype) == subtype && r.IsActive {
			return toDomainAccount(r), nil
		}
	}
	return domain.Account{}, domain.NotFound("account.GetBySubtype", "account", string(subtype))
}

func toDomainAccount(row repository.AccountRow) domain.Account {
	return domain.Account{
		ID:              uuid.UUID(row.ID.Bytes),
		TenantID:        uuid.UUID(row.TenantID.Bytes),
		AccountNumber:   row.AccountNumber,
		Name:            row.Name,
		Type:            domain.AccountType(row.Type),
		Subtype:         domain.AccountSubtype(row.Subtype),
		ParentAccountID: uuidPtrFromPg(row.ParentAccountID),
		Description:     row.Description,
		IsSystemAccount: row.IsSystemAccount,
		IsActive:        row.IsActive,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}

func toAccountBalance(account domain.Account, row repository.AccountBalanceRow) domain.AccountBalance {
	debit := domain.Money{Amount: domain.FromNumeric(row.DebitTotal), Currency: "USD"}
	credit := domain.Money{Amount: domain.FromNumeric(row.CreditTotal), Currency: "USD"}
	balance := debit.Sub(credit)
	if account.NormalSide() == domain.NormalSideCredit {
		balance = credit.Sub(debit)
	}
	return domain.AccountBalance{
		AccountID:   account.ID,
		DebitTotal:  debit,
		CreditTotal: credit,
		Balance:     balance,
	}
}
