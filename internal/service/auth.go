package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerkeep/core/internal/auth"
	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/posting"
	"github.com/ledgerkeep/core/internal/repository"
)

// authService implements domain.AuthService: it owns tenant
// provisioning on Register and credential verification on Login, the
// two adapter concerns the rest of the core never touches directly —
// everything downstream only ever sees an already-validated Principal.
type authService struct {
	pool   *pgxpool.Pool
	repo   repository.Querier
	tokens *auth.TokenIssuer
}

func NewAuthService(pool *pgxpool.Pool, repo repository.Querier, tokens *auth.TokenIssuer) domain.AuthService {
	return &authService{pool: pool, repo: repo, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, params domain.RegisterParams) (*domain.AuthResult, error) {
	if params.Email == "" {
		return nil, domain.Invalid("auth.Register", "email is required")
	}
	if params.OrganizationName == "" {
		return nil, domain.Invalid("auth.Register", "organization name is required")
	}
	if _, err := s.repo.GetUserByEmail(ctx, params.Email); err == nil {
		return nil, domain.ErrEmailInUse
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, domain.Invalid("auth.Register", "password must be at least 8 characters")
		}
		return nil, domain.Internal(err, "auth.Register", "failed to hash password")
	}

	var result *domain.AuthResult
	err = withTx(ctx, s.pool, func(repo repository.Querier, _ *posting.Engine) error {
		tenantRow, err := repo.CreateTenant(ctx, repository.CreateTenantParams{
			Name: params.OrganizationName, BaseCurrency: "USD", FiscalYearStartMonth: 1, Timezone: "UTC",
		})
		if err != nil {
			return domain.Internal(err, "auth.Register", "failed to create tenant")
		}
		tenantID := uuid.UUID(tenantRow.ID.Bytes)

		userRow, err := repo.CreateUser(ctx, repository.CreateUserParams{
			TenantID: tenantID, Email: params.Email, PasswordHash: hash,
			FirstName: params.FirstName, LastName: params.LastName, Role: string(domain.RoleOwner),
		})
		if err != nil {
			return domain.Internal(err, "auth.Register", "failed to create user")
		}
		userID := uuid.UUID(userRow.ID.Bytes)

		accounts := NewAccountService(s.pool, repo)
		if _, err := accounts.SeedDefaultChart(ctx, tenantID); err != nil {
			return err
		}

		token, err := s.tokens.Issue(userID, tenantID, domain.RoleOwner)
		if err != nil {
			return domain.Internal(err, "auth.Register", "failed to issue token")
		}

		result = &domain.AuthResult{Token: token, User: toDomainUser(userRow), Tenant: toDomainTenant(tenantRow)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	userRow, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(password, userRow.PasswordHash); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	tenantID := uuid.UUID(userRow.TenantID.Bytes)
	tenantRow, err := s.repo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "auth.Login", "failed to load tenant")
	}

	token, err := s.tokens.Issue(uuid.UUID(userRow.ID.Bytes), tenantID, domain.Role(userRow.Role))
	if err != nil {
		return nil, domain.Internal(err, "auth.Login", "failed to issue token")
	}

	return &domain.AuthResult{Token: token, User: toDomainUser(userRow), Tenant: toDomainTenant(tenantRow)}, nil
}

func toDomainUser(row repository.UserRow) domain.User {
	return domain.User{
		ID: uuid.UUID(row.ID.Bytes), TenantID: uuid.UUID(row.TenantID.Bytes), Email: row.Email,
		PasswordHash: row.PasswordHash, FirstName: row.FirstName, LastName: row.LastName,
		Role: domain.Role(row.Role), CreatedAt: row.CreatedAt.Time,
	}
}

func toDomainTenant(row repository.TenantRow) domain.Tenant {
	return domain.Tenant{
		ID: uuid.UUID(row.ID.Bytes), Name: row.Name, BaseCurrency: row.BaseCurrency,
		FiscalYearStartMonth: int(row.FiscalYearStartMonth), Timezone: row.Timezone, CreatedAt: row.CreatedAt.Time,
	}
}
