package folio

import "github.com/shopspring/decimal"

// numeric covers the types accepted by the M and Q constructors.
type numeric interface {
	~float32 | ~float64 | ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | decimal.Decimal
}

func toDecimal[T numeric](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported numeric type")
	}
}

// Quantity is an exact number of shares or units. Fractional quantities
// are common (ETF savings plans, crypto), hence the decimal base.
type Quantity struct {
	value decimal.Decimal
}

// Q builds a Quantity from any numeric type or a decimal.Decimal.
func Q[T numeric](value T) Quantity { return Quantity{value: toDecimal(value)} }

func (q Quantity) Equal(p Quantity) bool       { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool    { return q.value.LessThan(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool { return q.value.GreaterThan(p.value) }
func (q Quantity) IsZero() bool                { return q.value.IsZero() }
func (q Quantity) IsPositive() bool            { return q.value.IsPositive() }
func (q Quantity) IsNegative() bool            { return q.value.IsNegative() }

func (q Quantity) Add(p Quantity) Quantity { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) Mul(p Quantity) Quantity { return Quantity{value: q.value.Mul(p.value)} }
func (q Quantity) Div(p Quantity) Quantity { return Quantity{value: q.value.Div(p.value)} }

// Decimal returns the underlying decimal value.
func (q Quantity) Decimal() decimal.Decimal { return q.value }

// InexactFloat64 returns the quantity as a float64 for display transports.
func (q Quantity) InexactFloat64() float64 { return q.value.InexactFloat64() }

func (q Quantity) String() string { return q.value.String() }

// MarshalJSON encodes the quantity as a bare JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) { return q.value.MarshalJSON() }

// UnmarshalJSON decodes a quantity from a JSON number or string.
func (q *Quantity) UnmarshalJSON(b []byte) error { return q.value.UnmarshalJSON(b) }
