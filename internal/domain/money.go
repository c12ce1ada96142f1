package domain

import (
	"encoding/json"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount in a single currency. Every sum,
// comparison, and status-transition in the posting engine and reports
// operates on Money, never float64 — per spec, floats are permitted only
// when rendering a computed percentage for display.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// NewMoney builds a Money from a decimal string, e.g. "150.00".
func NewMoney(amount string, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: d, Currency: currency}, nil
}

// Add returns m + other. Currency mismatches are the caller's
// responsibility to prevent; the engine only ever operates within a
// tenant's single base currency (spec non-goal: no multi-currency
// revaluation).
func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{Amount: m.Amount.Neg(), Currency: m.Currency}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.Amount.GreaterThan(other.Amount)
}

// LessThanOrEqual reports whether m <= other.
func (m Money) LessThanOrEqual(other Money) bool {
	return m.Amount.LessThanOrEqual(other.Amount)
}

// Round returns m rounded to 2 fractional digits (the storage precision for
// every monetary field except unit prices, which allow 4).
func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(2), Currency: m.Currency}
}

// centTolerance is the balance tolerance used for comparing posting and
// report totals ("tolerance 0.01").
var centTolerance = decimal.NewFromFloat(0.01)

// EqualWithinTolerance reports whether |m - other| <= 0.01, the tolerance
// used for ∑debit = ∑credit checks.
func (m Money) EqualWithinTolerance(other Money) bool {
	diff := m.Amount.Sub(other.Amount).Abs()
	return diff.LessThanOrEqual(centTolerance)
}

// String renders the decimal amount, e.g. "1999.50".
func (m Money) String() string {
	return m.Amount.StringFixed(2)
}

// moneyJSON is Money's wire shape: the amount as a decimal string so a
// JSON client never round-trips it through a float.
type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON renders Money as {"amount":"150.00","currency":"USD"}.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.Amount.StringFixed(2), Currency: m.Currency})
}

// UnmarshalJSON parses Money back from its wire shape.
func (m *Money) UnmarshalJSON(data []byte) error {
	var wire moneyJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	d, err := decimal.NewFromString(wire.Amount)
	if err != nil {
		return err
	}
	m.Amount = d
	m.Currency = wire.Currency
	return nil
}

// ToNumeric converts a decimal to the pgx wire type for a NUMERIC column.
func ToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	// decimal.Decimal already tracks scale and unscaled value precisely;
	// round-tripping through its string form keeps full precision without
	// going through float64.
	_ = n.Scan(d.String())
	return n
}

// FromNumeric converts a pgx NUMERIC wire value back to a decimal. A NULL
// or invalid numeric converts to zero.
func FromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	s, err := n.Value()
	if err != nil {
		return decimal.Zero
	}
	switch v := s.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
