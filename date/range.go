package date

import (
	"fmt"
	"time"
)

// Range is an inclusive range of days.
type Range struct{ From, To Date }

// NewRange returns the standard period range containing d.
func NewRange(d Date, p Period) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p)}
}

// Contains reports whether d falls within the range, boundaries included.
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// Days returns the number of days in the range.
func (r Range) Days() int {
	return int(r.To.time().Sub(r.From.time())/(24*time.Hour)) + 1
}

// Period returns the standard period this range covers, if it covers
// exactly one.
func (r Range) Period() (Period, bool) {
	for _, p := range []Period{Daily, Weekly, Monthly, Quarterly, Yearly} {
		if r.From.StartOf(p) == r.From && r.From.EndOf(p) == r.To {
			return p, true
		}
	}
	return Daily, false
}

// Name returns the period name of the range, or "special" when it does
// not align with a standard period.
func (r Range) Name() string {
	if p, ok := r.Period(); ok {
		return p.String()
	}
	return "special"
}

// Identifier returns a short unique identifier for the range, like
// "2025-W37" or "2025-Q3" for standard periods.
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	switch p {
	case Daily:
		return r.From.String()
	case Weekly:
		y, w := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (int(r.From.Month())-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		panic("unknown period")
	}
}
