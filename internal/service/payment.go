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

// PaymentService records cash received from a customer and its
// application across one or more of their open invoices.
type PaymentService interface {
	Create(ctx context.Context, tenantID uuid.UUID, params PaymentParams) (domain.Payment, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Payment, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.Payment, error)
	Void(ctx context.Context, tenantID, id uuid.UUID) (domain.Payment, error)
}

type PaymentApplicationParams struct {
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
}

type PaymentParams struct {
	CustomerID         uuid.UUID
	PaymentDate        time.Time
	Method             domain.PaymentMethod
	DepositToAccountID *uuid.UUID
	Memo               string
	Amount             decimal.Decimal
	Applications       []PaymentApplicationParams
}

type paymentService struct {
	pool     *pgxpool.Pool
	repo     repository.Querier
	numbers  *numbering.Service
	accounts AccountService
}

func NewPaymentService(pool *pgxpool.Pool, repo repository.Querier, numbers *numbering.Service, accounts AccountService) PaymentService {
	return &paymentService{pool: pool, repo: repo, numbers: numbers, accounts: accounts}
}

func (s *paymentService) Create(ctx context.Context, tenantID uuid.UUID, params PaymentParams) (domain.Payment, error) {
	if _, err := s.repo.GetCustomer(ctx, tenantID, params.CustomerID); err != nil {
		return domain.Payment{}, domain.ErrCustomerNotFound
	}
	if len(params.Applications) == 0 {
		return domain.Payment{}, domain.ErrNoApplications
	}

	var applied decimal.Decimal
	for _, app := range params.Applications {
		if app.Amount.Sign() <= 0 {
			return domain.Payment{}, domain.Invalid("payment.Create", "application amount must be positive")
		}
		invoice, err := s.repo.GetInvoice(ctx, tenantID, app.InvoiceID)
		if err != nil {
			return domain.Payment{}, domain.ErrInvoiceNotFound
		}
		if uuid.UUID(invoice.CustomerID.Bytes) != params.CustomerID {
			return domain.Payment{}, domain.ErrInvoiceCustomerMismatch
		}
		due := domain.FromNumeric(invoice.Total).Sub(domain.FromNumeric(invoice.AmountPaid))
		if app.Amount.GreaterThan(due) {
			return domain.Payment{}, domain.ErrApplicationExceedsAmountDue
		}
		applied = applied.Add(app.Amount)
	}
	if applied.GreaterThan(params.Amount) {
		return domain.Payment{}, domain.ErrPaymentExceedsAmount
	}

	var arAccountID uuid.UUID
	if params.DepositToAccountID != nil {
		arAccount, err := s.accounts.GetBySubtype(ctx, tenantID, domain.SubtypeAccountsReceivable)
		if err != nil {
			return domain.Payment{}, err
		}
		arAccountID = arAccount.ID
	}

	number, err := s.numbers.Allocate(ctx, tenantID, domain.DocumentClassPayment)
	if err != nil {
		return domain.Payment{}, err
	}

	var payment domain.Payment
	err = withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		row, err := repo.CreatePayment(ctx, repository.CreatePaymentParams{
			TenantID: tenantID, CustomerID: params.CustomerID, Number: number, PaymentDate: params.PaymentDate,
			Method: string(params.Method), DepositToAccountID: params.DepositToAccountID, Memo: params.Memo,
			Amount: params.Amount,
		})
		if err != nil {
			return domain.Internal(err, "payment.Create", "failed to create payment")
		}
		paymentID := uuid.UUID(row.ID.Bytes)

		appRows := make([]repository.PaymentApplicationRow, 0, len(params.Applications))
		for _, app := range params.Applications {
			appRow, err := repo.InsertPaymentApplication(ctx, repository.InsertPaymentApplicationParams{
				PaymentID: paymentID, InvoiceID: app.InvoiceID, Amount: app.Amount,
			})
			if err != nil {
				return domain.Internal(err, "payment.Create", "failed to insert application")
			}
			appRows = append(appRows, appRow)

			if err := applyToInvoice(ctx, repo, tenantID, app.InvoiceID, app.Amount); err != nil {
				return err
			}
		}

		if params.DepositToAccountID != nil {
			if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
				Kind: domain.PostingKindPayment,
				PaymentPosting: &domain.PaymentPosting{
					PaymentID: paymentID, DepositToAccountID: *params.DepositToAccountID, ARAccountID: arAccountID,
					Amount: domain.Money{Amount: params.Amount}, EntryDate: params.PaymentDate,
					Description: "Payment " + number,
				},
			}); err != nil {
				return err
			}
		}

		payment = toDomainPayment(row, appRows)
		return nil
	})
	return payment, err
}

// applyToInvoice recomputes the invoice's AmountPaid and status after a
// new application lands against it. It reloads the invoice row-locked so
// two concurrent applications against the same invoice serialize rather
// than racing on a stale AmountPaid.
func applyToInvoice(ctx context.Context, repo repository.Querier, tenantID, invoiceID uuid.UUID, amount decimal.Decimal) error {
	invoice, err := repo.GetInvoiceForUpdate(ctx, tenantID, invoiceID)
	if err != nil {
		return domain.Internal(err, "payment.apply", "failed to reload invoice")
	}
	amountPaid := domain.FromNumeric(invoice.AmountPaid).Add(amount)
	total := domain.FromNumeric(invoice.Total)

	status := domain.InvoiceStatus(invoice.Status)
	switch {
	case amountPaid.GreaterThanOrEqual(total):
		status = domain.InvoiceStatusPaid
	case amountPaid.IsPositive():
		status = domain.InvoiceStatusPartiallyPaid
	}

	var paidAt *time.Time
	if status == domain.InvoiceStatusPaid {
		now := time.Now()
		paidAt = &now
	}

	_, err = repo.UpdateInvoiceStatus(ctx, repository.UpdateInvoiceStatusParams{
		TenantID: tenantID, ID: invoiceID, Status: string(status), AmountPaid: amountPaid,
		PostedAt: pgTimePtr(invoice.PostedAt), PaidAt: paidAt,
	})
	if err != nil {
		return domain.Internal(err, "payment.apply", "failed to update invoice")
	}
	return nil
}

// unapplyFromInvoice reverses applyToInvoice's effect when a payment is
// voided, stepping the invoice's status back down accordingly.
func unapplyFromInvoice(ctx context.Context, repo repository.Querier, tenantID, invoiceID uuid.UUID, amount decimal.Decimal) error {
	invoice, err := repo.GetInvoiceForUpdate(ctx, tenantID, invoiceID)
	if err != nil {
		return domain.Internal(err, "payment.unapply", "failed to reload invoice")
	}
	amountPaid := domain.FromNumeric(invoice.AmountPaid).Sub(amount)
	if amountPaid.IsNegative() {
		amountPaid = decimal.Zero
	}
	total := domain.FromNumeric(invoice.Total)

	status := domain.InvoiceStatus(invoice.Status)
	if status != domain.InvoiceStatusVoid {
		switch {
		case amountPaid.GreaterThanOrEqual(total) && total.IsPositive():
			status = domain.InvoiceStatusPaid
		case amountPaid.IsPositive():
			status = domain.InvoiceStatusPartiallyPaid
		default:
			status = domain.InvoiceStatusSent
		}
	}

	var paidAt *time.Time
	if status == domain.InvoiceStatusPaid {
		paidAt = pgTimePtr(invoice.PaidAt)
		if paidAt == nil {
			now := time.Now()
			paidAt = &now
		}
	}

	_, err = repo.UpdateInvoiceStatus(ctx, repository.UpdateInvoiceStatusParams{
		TenantID: tenantID, ID: invoiceID, Status: string(status), AmountPaid: amountPaid,
		PostedAt: pgTimePtr(invoice.PostedAt), PaidAt: paidAt,
	})
	if err != nil {
		return domain.Internal(err, "payment.unapply", "failed to update invoice")
	}
	return nil
}

func (s *paymentService) Get(ctx context.Context, tenantID, id uuid.UUID) (domain.Payment, error) {
	row, err := s.repo.GetPayment(ctx, tenantID, id)
	if err != nil {
		return domain.Payment{}, domain.ErrPaymentNotFound
	}
	appRows, err := s.repo.ListPaymentApplications(ctx, id)
	if err != nil {
		return domain.Payment{}, domain.Internal(err, "payment.Get", "failed to load applications")
	}
	return toDomainPayment(row, appRows), nil
}

func (s *paymentService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Payment, error) {
	rows, err := s.repo.ListPayments(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "payment.List", "failed to list payments")
	}
	out := make([]domain.Payment, len(rows))
	for i, r := range rows {
		appRows, err := s.repo.ListPaymentApplications(ctx, uuid.UUID(r.ID.Bytes))
		if err != nil {
			return nil, domain.Internal(err, "payment.List", "failed to load applications")
		}
		out[i] = toDomainPayment(r, appRows)
	}
	return out, nil
}

func (s *paymentService) Void(ctx context.Context, tenantID, id uuid.UUID) (domain.Payment, error) {
	existing, err := s.repo.GetPayment(ctx, tenantID, id)
	if err != nil {
		return domain.Payment{}, domain.ErrPaymentNotFound
	}
	if existing.VoidedAt.Valid {
		return domain.Payment{}, domain.ErrPaymentAlreadyVoid
	}
	appRows, err := s.repo.ListPaymentApplications(ctx, id)
	if err != nil {
		return domain.Payment{}, domain.Internal(err, "payment.Void", "failed to load applications")
	}

	var updated domain.Payment
	err = withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		if existing.DepositToAccountID.Valid {
			if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
				Kind: domain.PostingKindVoid,
				VoidPosting: &domain.VoidPosting{
					OriginalTransactionType: domain.TransactionTypePayment,
					ReversalTransactionType: domain.TransactionTypePaymentReversal,
					SourceID:                id, EntryDate: time.Now(), Description: "Void payment " + existing.Number,
				},
			}); err != nil {
				return err
			}
		}

		for _, app := range appRows {
			if err := unapplyFromInvoice(ctx, repo, tenantID, uuid.UUID(app.InvoiceID.Bytes), domain.FromNumeric(app.Amount)); err != nil {
				return err
			}
		}

		row, err := repo.VoidPayment(ctx, tenantID, id)
		if err != nil {
			return domain.Internal(err, "payment.Void", "failed to void payment")
		}
		updated = toDomainPayment(row, appRows)
		return nil
	})
	return updated, err
}

func toDomainPayment(row repository.PaymentRow, appRows []repository.PaymentApplicationRow) domain.Payment {
	apps := make([]domain.PaymentApplication, len(appRows))
	for i, a := range appRows {
		apps[i] = domain.PaymentApplication{
			ID: uuid.UUID(a.ID.Bytes), PaymentID: uuid.UUID(a.PaymentID.Bytes),
			InvoiceID: uuid.UUID(a.InvoiceID.Bytes), Amount: domain.Money{Amount: domain.FromNumeric(a.Amount)},
		}
	}
	var voidedAt *time.Time
	if row.VoidedAt.Valid {
		t := row.VoidedAt.Time
		voidedAt = &t
	}
	return domain.Payment{
		ID: uuid.UUID(row.ID.Bytes), TenantID: uuid.UUID(row.TenantID.Bytes), CustomerID: uuid.UUID(row.CustomerID.Bytes),
		Number: row.Number, PaymentDate: row.PaymentDate.Time, Method: domain.PaymentMethod(row.Method),
		DepositToAccountID: uuid.UUID(row.DepositToAccountID.Bytes), Memo: row.Memo,
		Amount: domain.Money{Amount: domain.FromNumeric(row.Amount)}, Applications: apps,
		CreatedAt: row.CreatedAt.Time, VoidedAt: voidedAt,
	}
}
