package folio

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an exact monetary amount in a single currency.
//
// Arithmetic is exact (decimal, not float). The zero value has no
// currency and acts as a neutral element for Add and Sub.
type Money struct {
	value decimal.Decimal // in major units
	cur   string          // ISO 4217 code, or "" for the neutral value
}

// M builds a Money from any numeric type or a decimal.Decimal.
func M[T numeric](value T, currency string) Money {
	return Money{value: toDecimal(value), cur: currency}
}

// Currency returns the ISO 4217 code of the amount.
func (m Money) Currency() string { return m.cur }

// Amount returns the underlying decimal value in major units.
func (m Money) Amount() decimal.Decimal { return m.value }

func (m Money) IsZero() bool     { return m.value.IsZero() }
func (m Money) IsPositive() bool { return m.value.IsPositive() }
func (m Money) IsNegative() bool { return m.value.IsNegative() }

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }

func (m Money) Neg() Money { return Money{value: m.value.Neg(), cur: m.cur} }

// Add returns m+n. Mixing two different non-empty currencies panics:
// that is always a programming error, not a data error.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: sameCur(m, n)} }

// Sub returns m-n, with the same currency rule as Add.
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: sameCur(m, n)} }

// Mul returns the amount scaled by a quantity, e.g. price times shares.
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value), cur: m.cur} }

// Div returns the amount divided by a quantity, e.g. cost per share.
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value), cur: m.cur} }

// DivPrice divides an amount by a unit price, yielding a quantity.
func (m Money) DivPrice(price Money) Quantity { return Quantity{value: m.value.Div(price.value)} }

// sameCur resolves the currency of a binary operation. The empty
// currency is weak: it adopts the other operand's currency.
func sameCur(a, b Money) string {
	switch {
	case a.cur == "":
		return b.cur
	case b.cur == "":
		return a.cur
	case a.cur != b.cur:
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}

// currency resolves the full go-money currency definition, falling back
// to a currency with two decimals when the code is unknown.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with its currency symbol, e.g. "€1,234.50".
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString is String with an explicit leading sign, and "-" for zero.
// Used in report columns where the direction is the point.
func (m Money) SignedString() string {
	switch {
	case m.value.IsZero():
		return "-"
	case m.value.IsPositive():
		return "+" + m.String()
	}
	return m.String()
}

// InexactFloat64 returns the amount as a float64 for display transports
// that cannot carry decimals, like the dashboard JSON API.
func (m Money) InexactFloat64() float64 { return m.value.InexactFloat64() }

// MarshalJSON encodes the amount as {"amount": N, "currency": "XXX"}.
// Transactions embed these fields at their top level, see EmbedFrom.
// All digits are persisted, nothing is rounded on write.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", m.value)
	w.Optional("currency", m.cur)
	return w.MarshalJSON()
}

// UnmarshalJSON reads the MarshalJSON form back.
func (m *Money) UnmarshalJSON(b []byte) error {
	var v struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	m.value, m.cur = v.Amount, v.Currency
	return nil
}
