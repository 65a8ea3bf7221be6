package date

import (
	"fmt"
	"strings"
)

// Period is a standard reporting granularity.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParsePeriod reads a Period from user input, accepting both the
// adjective ("weekly") and the noun ("week") forms.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(s) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", s)
	}
}
