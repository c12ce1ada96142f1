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

// VendorPaymentService records cash paid to a vendor and its application
// across one or more of their open bills. Mirrors PaymentService on the
// opposite side of the ledger.
type VendorPaymentService interface {
	Create(ctx context.Context, tenantID uuid.UUID, params VendorPaymentParams) (domain.VendorPayment, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (domain.VendorPayment, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.VendorPayment, error)
	Void(ctx context.Context, tenantID, id uuid.UUID) (domain.VendorPayment, error)
}

type VendorPaymentApplicationParams struct {
	BillID uuid.UUID
	Amount decimal.Decimal
}

type VendorPaymentParams struct {
	VendorID         uuid.UUID
	PaymentDate      time.Time
	Method           domain.PaymentMethod
	PayFromAccountID *uuid.UUID
	Memo             string
	Amount           decimal.Decimal
	Applications     []VendorPaymentApplicationParams
}

type vendorPaymentService struct {
	pool     *pgxpool.Pool
	repo     repository.Querier
	numbers  *numbering.Service
	accounts AccountService
}

func NewVendorPaymentService(pool *pgxpool.Pool, repo repository.Querier, numbers *numbering.Service, accounts AccountService) VendorPaymentService {
	return &vendorPaymentService{pool: pool, repo: repo, numbers: numbers, accounts: accounts}
}

func (s *vendorPaymentService) Create(ctx context.Context, tenantID uuid.UUID, params VendorPaymentParams) (domain.VendorPayment, error) {
	if _, err := s.repo.GetVendor(ctx, tenantID, params.VendorID); err != nil {
		return domain.VendorPayment{}, domain.ErrVendorNotFound
	}
	if len(params.Applications) == 0 {
		return domain.VendorPayment{}, domain.ErrVendorNoApplications
	}

	var applied decimal.Decimal
	for _, app := range params.Applications {
		if app.Amount.Sign() <= 0 {
			return domain.VendorPayment{}, domain.Invalid("vendorpayment.Create", "application amount must be positive")
		}
		bill, err := s.repo.GetBill(ctx, tenantID, app.BillID)
		if err != nil {
			return domain.VendorPayment{}, domain.ErrBillNotFound
		}
		if uuid.UUID(bill.VendorID.Bytes) != params.VendorID {
			return domain.VendorPayment{}, domain.ErrBillVendorMismatch
		}
		due := domain.FromNumeric(bill.Total).Sub(domain.FromNumeric(bill.AmountPaid))
		if app.Amount.GreaterThan(due) {
			return domain.VendorPayment{}, domain.ErrApplicationExceedsBillDue
		}
		applied = applied.Add(app.Amount)
	}
	if applied.GreaterThan(params.Amount) {
		return domain.VendorPayment{}, domain.ErrVendorPaymentExceedsAmount
	}

	var apAccountID uuid.UUID
	if params.PayFromAccountID != nil {
		apAccount, err := s.accounts.GetBySubtype(ctx, tenantID, domain.SubtypeAccountsPayable)
		if err != nil {
			return domain.VendorPayment{}, err
		}
		apAccountID = apAccount.ID
	}

	number, err := s.numbers.Allocate(ctx, tenantID, domain.DocumentClassVendorPayment)
	if err != nil {
		return domain.VendorPayment{}, err
	}

	var payment domain.VendorPayment
	err = withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		row, err := repo.CreateVendorPayment(ctx, repository.CreateVendorPaymentParams{
			TenantID: tenantID, VendorID: params.VendorID, Number: number, PaymentDate: params.PaymentDate,
			Method: string(params.Method), PayFromAccountID: params.PayFromAccountID, Memo: params.Memo,
			Amount: params.Amount,
		})
		if err != nil {
			return domain.Internal(err, "vendorpayment.Create", "failed to create vendor payment")
		}
		paymentID := uuid.UUID(row.ID.Bytes)

		appRows := make([]repository.VendorPaymentApplicationRow, 0, len(params.Applications))
		for _, app := range params.Applications {
			appRow, err := repo.InsertVendorPaymentApplication(ctx, repository.InsertVendorPaymentApplicationParams{
				VendorPaymentID: paymentID, BillID: app.BillID, Amount: app.Amount,
			})
			if err != nil {
				return domain.Internal(err, "vendorpayment.Create", "failed to insert application")
			}
			appRows = append(appRows, appRow)

			if err := applyToBill(ctx, repo, tenantID, app.BillID, app.Amount); err != nil {
				return err
			}
		}

		if params.PayFromAccountID != nil {
			if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
				Kind: domain.PostingKindVendorPayment,
				VendorPaymentPosting: &domain.VendorPaymentPosting{
					VendorPaymentID: paymentID, PayFromAccountID: *params.PayFromAccountID, APAccountID: apAccountID,
					Amount: domain.Money{Amount: params.Amount}, EntryDate: params.PaymentDate,
					Description: "Vendor payment " + number,
				},
			}); err != nil {
				return err
			}
		}

		payment = toDomainVendorPayment(row, appRows)
		return nil
	})
	return payment, err
}

// applyToBill recomputes the bill's AmountPaid and status after a new
// application lands against it. It reloads the bill row-locked so two
// concurrent applications against the same bill serialize rather than
// racing on a stale AmountPaid.
func applyToBill(ctx context.Context, repo repository.Querier, tenantID, billID uuid.UUID, amount decimal.Decimal) error {
	bill, err := repo.GetBillForUpdate(ctx, tenantID, billID)
	if err != nil {
		return domain.Internal(err, "vendorpayment.apply", "failed to reload bill")
	}
	amountPaid := domain.FromNumeric(bill.AmountPaid).Add(amount)
	total := domain.FromNumeric(bill.Total)

	status := domain.BillStatus(bill.Status)
	switch {
	case amountPaid.GreaterThanOrEqual(total):
		status = domain.BillStatusPaid
	case amountPaid.IsPositive():
		status = domain.BillStatusPartiallyPaid
	}

	var paidAt *time.Time
	if status == domain.BillStatusPaid {
		now := time.Now()
		paidAt = &now
	}

	_, err = repo.UpdateBillStatus(ctx, repository.UpdateBillStatusParams{
		TenantID: tenantID, ID: billID, Status: string(status), AmountPaid: amountPaid,
		PostedAt: pgTimePtr(bill.PostedAt), PaidAt: paidAt,
	})
	if err != nil {
		return domain.Internal(err, "vendorpayment.apply", "failed to update bill")
	}
	return nil
}

// unapplyFromBill reverses applyToBill's effect when a vendor payment is
// voided, stepping the bill's status back down accordingly.
func unapplyFromBill(ctx context.Context, repo repository.Querier, tenantID, billID uuid.UUID, amount decimal.Decimal) error {
	bill, err := repo.GetBillForUpdate(ctx, tenantID, billID)
	if err != nil {
		return domain.Internal(err, "vendorpayment.unapply", "failed to reload bill")
	}
	amountPaid := domain.FromNumeric(bill.AmountPaid).Sub(amount)
	if amountPaid.IsNegative() {
		amountPaid = decimal.Zero
	}
	total := domain.FromNumeric(bill.Total)

	status := domain.BillStatus(bill.Status)
	if status != domain.BillStatusVoid {
		switch {
		case amountPaid.GreaterThanOrEqual(total) && total.IsPositive():
			status = domain.BillStatusPaid
		case amountPaid.IsPositive():
			status = domain.BillStatusPartiallyPaid
		default:
			status = domain.BillStatusApproved
		}
	}

	var paidAt *time.Time
	if status == domain.BillStatusPaid {
		paidAt = pgTimePtr(bill.PaidAt)
		if paidAt == nil {
			now := time.Now()
			paidAt = &now
		}
	}

	_, err = repo.UpdateBillStatus(ctx, repository.UpdateBillStatusParams{
		TenantID: tenantID, ID: billID, Status: string(status), AmountPaid: amountPaid,
		PostedAt: pgTimePtr(bill.PostedAt), PaidAt: paidAt,
	})
	if err != nil {
		return domain.Internal(err, "vendorpayment.unapply", "failed to update bill")
	}
	return nil
}

func (s *vendorPaymentService) Get(ctx context.Context, tenantID, id uuid.UUID) (domain.VendorPayment, error) {
	row, err := s.repo.GetVendorPayment(ctx, tenantID, id)
	if err != nil {
		return domain.VendorPayment{}, domain.ErrVendorPaymentNotFound
	}
	appRows, err := s.repo.ListVendorPaymentApplications(ctx, id)
	if err != nil {
		return domain.VendorPayment{}, domain.Internal(err, "vendorpayment.Get", "failed to load applications")
	}
	return toDomainVendorPayment(row, appRows), nil
}

func (s *vendorPaymentService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.VendorPayment, error) {
	rows, err := s.repo.ListVendorPayments(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "vendorpayment.List", "failed to list vendor payments")
	}
	out := make([]domain.VendorPayment, len(rows))
	for i, r := range rows {
		appRows, err := s.repo.ListVendorPaymentApplications(ctx, uuid.UUID(r.ID.Bytes))
		if err != nil {
			return nil, domain.Internal(err, "vendorpayment.List", "failed to load applications")
		}
		out[i] = toDomainVendorPayment(r, appRows)
	}
	return out, nil
}

func (s *vendorPaymentService) Void(ctx context.Context, tenantID, id uuid.UUID) (domain.VendorPayment, error) {
	existing, err := s.repo.GetVendorPayment(ctx, tenantID, id)
	if err != nil {
		return domain.VendorPayment{}, domain.ErrVendorPaymentNotFound
	}
	if existing.VoidedAt.Valid {
		return domain.VendorPayment{}, domain.ErrVendorPaymentAlreadyVoid
	}
	appRows, err := s.repo.ListVendorPaymentApplications(ctx, id)
	if err != nil {
		return domain.VendorPayment{}, domain.Internal(err, "vendorpayment.Void", "failed to load applications")
	}

	var updated domain.VendorPayment
	err = withTx(ctx, s.pool, func(repo repository.Querier, eng *posting.Engine) error {
		if existing.PayFromAccountID.Valid {
			if _, err := eng.Post(ctx, tenantID, domain.PostingRequest{
				Kind: domain.PostingKindVoid,
				VoidPosting: &domain.VoidPosting{
					OriginalTransactionType: domain.TransactionTypeVendorPayment,
					ReversalTransactionType: domain.TransactionTypeVendorPaymentReversal,
					SourceID:                id, EntryDate: time.Now(), Description: "Void vendor payment " + existing.Number,
				},
			}); err != nil {
				return err
			}
		}

		for _, app := range appRows {
			if err := unapplyFromBill(ctx, repo, tenantID, uuid.UUID(app.BillID.Bytes), domain.FromNumeric(app.Amount)); err != nil {
				return err
			}
		}

		row, err := repo.VoidVendorPayment(ctx, tenantID, id)
		if err != nil {
			return domain.Internal(err, "vendorpayment.Void", "failed to void vendor payment")
		}
		updated = toDomainVendorPayment(row, appRows)
		return nil
	})
	return updated, err
}

func toDomainVendorPayment(row repository.VendorPaymentRow, appRows []repository.VendorPaymentApplicationRow) domain.VendorPayment {
	apps := make([]domain.VendorPaymentApplication, len(appRows))
	for i, a := range appRows {
		apps[i] = domain.VendorPaymentApplication{
			ID: uuid.UUID(a.ID.Bytes), VendorPaymentID: uuid.UUID(a.VendorPaymentID.Bytes),
			BillID: uuid.UUID(a.BillID.Bytes), Amount: domain.Money{Amount: domain.FromNumeric(a.Amount)},
		}
	}
	var voidedAt *time.Time
	if row.VoidedAt.Valid {
		t := row.VoidedAt.Time
		voidedAt = &t
	}
	return domain.VendorPayment{
		ID: uuid.UUID(row.ID.Bytes), TenantID: uuid.UUID(row.TenantID.Bytes), VendorID: uuid.UUID(row.VendorID.Bytes),
		Number: row.Number, PaymentDate: row.PaymentDate.Time, Method: domain.PaymentMethod(row.Method),
		PayFromAccountID: uuid.UUID(row.PayFromAccountID.Bytes), Memo: row.Memo,
		Amount: domain.Money{Amount: domain.FromNumeric(row.Amount)}, Applications: apps,
		CreatedAt: row.CreatedAt.Time, VoidedAt: voidedAt,
	}
}
