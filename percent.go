package folio

import "fmt"

// Percent is a ratio: 0.05 means 5%.
type Percent float64

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p)*100)
}

// SignedString always prints the sign, the usual form in reports.
func (p Percent) SignedString() string {
	return fmt.Sprintf("%+.2f%%", float64(p)*100)
}
