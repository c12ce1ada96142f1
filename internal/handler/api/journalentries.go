package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/service"
)

// JournalEntryHandler exposes manual, freeform posting operations.
type JournalEntryHandler struct {
	journalEntries service.JournalEntryService
}

func NewJournalEntryHandler(journalEntries service.JournalEntryService) *JournalEntryHandler {
	return &JournalEntryHandler{journalEntries: journalEntries}
}

type journalEntryLineRequest struct {
	AccountID    string `json:"account_id" validate:"required,uuid"`
	Description  string `json:"description"`
	DebitAmount  string `json:"debit_amount"`
	CreditAmount string `json:"credit_amount"`
}

type journalEntryRequest struct {
	EntryDate string                    `json:"entry_date" validate:"required"`
	Memo      string                    `json:"memo"`
	Lines     []journalEntryLineRequest `json:"lines" validate:"required,min=2,dive"`
}

func parseJournalAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, domain.Invalid("api.toJournalEntryParams", "lines.debit_amount/credit_amount must be decimal strings")
	}
	return amount, nil
}

func toJournalEntryParams(req journalEntryRequest) (service.JournalEntryParams, error) {
	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		return service.JournalEntryParams{}, domain.Invalid("api.toJournalEntryParams", "entry_date must be YYYY-MM-DD")
	}

	lines := make([]service.JournalEntryLineParams, 0, len(req.Lines))
	for _, l := range req.Lines {
		accountID, err := parseOptionalUUID(&l.AccountID)
		if err != nil {
			return service.JournalEntryParams{}, err
		}
		debit, err := parseJournalAmount(l.DebitAmount)
		if err != nil {
			return service.JournalEntryParams{}, err
		}
		credit, err := parseJournalAmount(l.CreditAmount)
		if err != nil {
			return service.JournalEntryParams{}, err
		}
		lines = append(lines, service.JournalEntryLineParams{
			AccountID:    *accountID,
			Description:  l.Description,
			DebitAmount:  debit,
			CreditAmount: credit,
		})
	}

	return service.JournalEntryParams{
		EntryDate: entryDate,
		Memo:      req.Memo,
		Lines:     lines,
	}, nil
}

func (h *JournalEntryHandler) Create(c echo.Context) error {
	var req journalEntryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	params, err := toJournalEntryParams(req)
	if err != nil {
		return err
	}
	entry, err := h.journalEntries.Create(c.Request().Context(), principal(c).TenantID, params)
	if err != nil {
		return err
	}
	return created(c, entry)
}

func (h *JournalEntryHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	entry, err := h.journalEntries.Get(c.Request().Context(), principal(c).TenantID, id)
	if err != nil {
		return err
	}
	return ok(c, entry)
}

func (h *JournalEntryHandler) List(c echo.Context) error {
	entries, err := h.journalEntries.List(c.Request().Context(), principal(c).TenantID)
	if err != nil {
		return err
	}
	return ok(c, entries)
}

func (h *JournalEntryHandler) Void(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req voidRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	entry, err := h.journalEntries.Void(c.Request().Context(), principal(c).TenantID, id, req.Reason)
	if err != nil {
		return err
	}
	return ok(c, entry)
}
