package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/reporting"
)

// ReportHandler exposes read-only views computed directly from the
// ledger, with no side effects on the accounts they summarize.
type ReportHandler struct {
	reports *reporting.Service
}

func NewReportHandler(reports *reporting.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

func queryDate(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, domain.Invalid("api.queryDate", name+" must be YYYY-MM-DD")
	}
	return &t, nil
}

func requireQueryDate(c echo.Context, name string) (time.Time, error) {
	t, err := queryDate(c, name)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, domain.Invalid("api.requireQueryDate", name+" is required")
	}
	return *t, nil
}

func (h *ReportHandler) AccountBalance(c echo.Context) error {
	accountID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	balance, err := h.reports.AccountBalance(c.Request().Context(), principal(c).TenantID, accountID)
	if err != nil {
		return err
	}
	return ok(c, balance)
}

func (h *ReportHandler) ListAccountBalances(c echo.Context) error {
	balances, err := h.reports.ListAccountBalances(c.Request().Context(), principal(c).TenantID)
	if err != nil {
		return err
	}
	return ok(c, balances)
}

func (h *ReportHandler) TrialBalance(c echo.Context) error {
	asOf, err := queryDate(c, "as_of")
	if err != nil {
		return err
	}
	trialBalance, err := h.reports.TrialBalance(c.Request().Context(), principal(c).TenantID, asOf)
	if err != nil {
		return err
	}
	return ok(c, trialBalance)
}

func (h *ReportHandler) ProfitAndLoss(c echo.Context) error {
	start, err := requireQueryDate(c, "start")
	if err != nil {
		return err
	}
	end, err := requireQueryDate(c, "end")
	if err != nil {
		return err
	}
	report, err := h.reports.ProfitAndLoss(c.Request().Context(), principal(c).TenantID, start, end)
	if err != nil {
		return err
	}
	return ok(c, report)
}

func (h *ReportHandler) BalanceSheet(c echo.Context) error {
	asOf, err := requireQueryDate(c, "as_of")
	if err != nil {
		return err
	}
	report, err := h.reports.BalanceSheet(c.Request().Context(), principal(c).TenantID, asOf)
	if err != nil {
		return err
	}
	return ok(c, report)
}

func (h *ReportHandler) ARAging(c echo.Context) error {
	asOf, err := requireQueryDate(c, "as_of")
	if err != nil {
		return err
	}
	report, err := h.reports.ARAging(c.Request().Context(), principal(c).TenantID, asOf)
	if err != nil {
		return err
	}
	return ok(c, report)
}

func (h *ReportHandler) APAging(c echo.Context) error {
	asOf, err := requireQueryDate(c, "as_of")
	if err != nil {
		return err
	}
	report, err := h.reports.APAging(c.Request().Context(), principal(c).TenantID, asOf)
	if err != nil {
		return err
	}
	return ok(c, report)
}

func (h *ReportHandler) TransactionJournal(c echo.Context) error {
	start, err := requireQueryDate(c, "start")
	if err != nil {
		return err
	}
	end, err := requireQueryDate(c, "end")
	if err != nil {
		return err
	}
	accountID, err := optionalQueryUUID(c, "account_id")
	if err != nil {
		return err
	}
	journal, err := h.reports.TransactionJournal(c.Request().Context(), principal(c).TenantID, start, end, accountID)
	if err != nil {
		return err
	}
	return ok(c, journal)
}
