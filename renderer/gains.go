package renderer

import (
	"fmt"
	"strings"

	"folio"
)

// GainsMarkdown renders the capital gains report.
func GainsMarkdown(r *folio.GainsReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capital Gains from %s to %s\n\n", r.Range.From, r.Range.To)
	fmt.Fprintf(&b, "Method: %s\n\n", r.Method)

	fmt.Fprint(&b, "## Gains per Security\n\n")
	t := newTable(&b, "Security", "Quantity", "Realized (Period)", "Unrealized (at End)")
	for _, g := range r.Securities {
		t.row(g.Security, g.Quantity.String(), g.Realized.SignedString(), g.Unrealized.SignedString())
	}
	t.bold("Total", "", r.Realized.SignedString(), r.Unrealized.SignedString())

	fmt.Fprintf(&b, "\nPortfolio value change over the period: **%s**\n", r.Total.SignedString())
	return b.String()
}
