package folio

import "fmt"

// CostBasisMethod selects how the cost of sold shares is computed.
type CostBasisMethod int

const (
	// FIFO matches each sale against the oldest open lots first. This is
	// the default for gains reports.
	FIFO CostBasisMethod = iota
	// AverageCost spreads the total cost evenly over all shares held.
	AverageCost
)

func (m CostBasisMethod) String() string {
	switch m {
	case FIFO:
		return "fifo"
	case AverageCost:
		return "average"
	default:
		return "unknown"
	}
}

// ParseCostBasisMethod reads a CostBasisMethod from user input.
func ParseCostBasisMethod(s string) (CostBasisMethod, error) {
	switch s {
	case "fifo":
		return FIFO, nil
	case "average":
		return AverageCost, nil
	default:
		return 0, fmt.Errorf("unknown cost basis method %q", s)
	}
}
