package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

// AgingBuckets splits an outstanding balance by how far past due_date
// it sits relative to the report's AsOf date.
type AgingBuckets struct {
	Current    domain.Money
	Days1To30  domain.Money
	Days31To60 domain.Money
	Days61To90 domain.Money
	Days90Plus domain.Money
}

// AgingLine is one counterparty's outstanding balance, bucketed.
type AgingLine struct {
	PartyID   uuid.UUID
	PartyName string
	Buckets   AgingBuckets
	Total     domain.Money
}

// AgingReport is the full AR or AP aging schedule as of AsOf.
type AgingReport struct {
	AsOf  time.Time
	Lines []AgingLine
	Total domain.Money
}

// ARAging buckets the amount due of every non-terminal invoice (not
// draft, void, or paid) by due date against asOf, netting each
// customer's unapplied payment credit out of the current bucket (and
// the line total), floored at zero.
func (s *Service) ARAging(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (AgingReport, error) {
	invoices, err := s.repo.ListInvoices(ctx, repository.ListInvoicesParams{TenantID: tenantID})
	if err != nil {
		return AgingReport{}, domain.Internal(err, "reporting.ARAging", "failed to list invoices")
	}
	customers, err := s.repo.ListCustomers(ctx, tenantID)
	if err != nil {
		return AgingReport{}, domain.Internal(err, "reporting.ARAging", "failed to list customers")
	}
	names := make(map[uuid.UUID]string, len(customers))
	for _, c := range customers {
		names[uuid.UUID(c.ID.Bytes)] = c.Name
	}
	credits, err := s.unappliedCustomerCredits(ctx, tenantID)
	if err != nil {
		return AgingReport{}, err
	}

	lines := make(map[uuid.UUID]*AgingLine)
	var order []uuid.UUID
	for _, inv := range invoices {
		switch domain.InvoiceStatus(inv.Status) {
		case domain.InvoiceStatusDraft, domain.InvoiceStatusVoid, domain.InvoiceStatusPaid:
			continue
		}
		due := domain.FromNumeric(inv.Total).Sub(domain.FromNumeric(inv.AmountPaid))
		if !due.IsPositive() {
			continue
		}
		partyID := uuid.UUID(inv.CustomerID.Bytes)
		line, ok := lines[partyID]
		if !ok {
			line = &AgingLine{PartyID: partyID, PartyName: names[partyID]}
			lines[partyID] = line
			order = append(order, partyID)
		}
		amount := domain.Money{Amount: due}
		addToBucket(&line.Buckets, daysPastDue(asOf, inv.DueDate.Time), amount)
		line.Total = line.Total.Add(amount)
	}

	return buildAgingReport(asOf, lines, order, credits), nil
}

// APAging is ARAging's mirror against bills and vendor payments.
func (s *Service) APAging(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (AgingReport, error) {
	bills, err := s.repo.ListBills(ctx, repository.ListBillsParams{TenantID: tenantID})
	if err != nil {
		return AgingReport{}, domain.Internal(err, "reporting.APAging", "failed to list bills")
	}
	vendors, err := s.repo.ListVendors(ctx, tenantID)
	if err != nil {
		return AgingReport{}, domain.Internal(err, "reporting.APAging", "failed to list vendors")
	}
	names := make(map[uuid.UUID]string, len(vendors))
	for _, v := range vendors {
		names[uuid.UUID(v.ID.Bytes)] = v.Name
	}
	credits, err := s.unappliedVendorCredits(ctx, tenantID)
	if err != nil {
		return AgingReport{}, err
	}

	lines := make(map[uuid.UUID]*AgingLine)
	var order []uuid.UUID
	for _, b := range bills {
		switch domain.BillStatus(b.Status) {
		case domain.BillStatusDraft, domain.BillStatusVoid, domain.BillStatusPaid:
			continue
		}
		due := domain.FromNumeric(b.Total).Sub(domain.FromNumeric(b.AmountPaid))
		if !due.IsPositive() {
			continue
		}
		partyID := uuid.UUID(b.VendorID.Bytes)
		line, ok := lines[partyID]
		if !ok {
			line = &AgingLine{PartyID: partyID, PartyName: names[partyID]}
			lines[partyID] = line
			order = append(order, partyID)
		}
		amount := domain.Money{Amount: due}
		addToBucket(&line.Buckets, daysPastDue(asOf, b.DueDate.Time), amount)
		line.Total = line.Total.Add(amount)
	}

	return buildAgingReport(asOf, lines, order, credits), nil
}

func buildAgingReport(asOf time.Time, lines map[uuid.UUID]*AgingLine, order []uuid.UUID, credits map[uuid.UUID]decimal.Decimal) AgingReport {
	report := AgingReport{AsOf: asOf}
	for _, partyID := range order {
		line := lines[partyID]
		if credit, ok := credits[partyID]; ok && credit.IsPositive() {
			creditMoney := domain.Money{Amount: credit}
			line.Buckets.Current = floorZero(line.Buckets.Current.Sub(creditMoney))
			line.Total = floorZero(line.Total.Sub(creditMoney))
		}
		report.Lines = append(report.Lines, *line)
		report.Total = report.Total.Add(line.Total)
	}
	return report
}

func floorZero(m domain.Money) domain.Money {
	if m.IsNegative() {
		return domain.Zero(m.Currency)
	}
	return m
}

func daysPastDue(asOf, dueDate time.Time) int {
	return int(asOf.Sub(dueDate).Hours() / 24)
}

func addToBucket(b *AgingBuckets, days int, amount domain.Money) {
	switch {
	case days <= 0:
		b.Current = b.Current.Add(amount)
	case days <= 30:
		b.Days1To30 = b.Days1To30.Add(amount)
	case days <= 60:
		b.Days31To60 = b.Days31To60.Add(amount)
	case days <= 90:
		b.Days61To90 = b.Days61To90.Add(amount)
	default:
		b.Days90Plus = b.Days90Plus.Add(amount)
	}
}

func (s *Service) unappliedCustomerCredits(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	payments, err := s.repo.ListPayments(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "reporting.unappliedCustomerCredits", "failed to list payments")
	}
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, p := range payments {
		if p.VoidedAt.Valid {
			continue
		}
		apps, err := s.repo.ListPaymentApplications(ctx, uuid.UUID(p.ID.Bytes))
		if err != nil {
			return nil, domain.Internal(err, "reporting.unappliedCustomerCredits", "failed to list payment applications")
		}
		applied := decimal.Zero
		for _, a := range apps {
			applied = applied.Add(domain.FromNumeric(a.Amount))
		}
		unapplied := domain.FromNumeric(p.Amount).Sub(applied)
		if unapplied.IsPositive() {
			partyID := uuid.UUID(p.CustomerID.Bytes)
			out[partyID] = out[partyID].Add(unapplied)
		}
	}
	return out, nil
}

func (s *Service) unappliedVendorCredits(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	payments, err := s.repo.ListVendorPayments(ctx, tenantID)
	if err != nil {
		return nil, domain.Internal(err, "reporting.unappliedVendorCredits", "failed to list vendor payments")
	}
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, p := range payments {
		if p.VoidedAt.Valid {
			continue
		}
		apps, err := s.repo.ListVendorPaymentApplications(ctx, uuid.UUID(p.ID.Bytes))
		if err != nil {
			return nil, domain.Internal(err, "reporting.unappliedVendorCredits", "failed to list vendor payment applications")
		}
		applied := decimal.Zero
		for _, a := range apps {
			applied = applied.Add(domain.FromNumeric(a.Amount))
		}
		unapplied := domain.FromNumeric(p.Amount).Sub(applied)
		if unapplied.IsPositive() {
			partyID := uuid.UUID(p.VendorID.Bytes)
			out[partyID] = out[partyID].Add(unapplied)
		}
	}
	return out, nil
}
