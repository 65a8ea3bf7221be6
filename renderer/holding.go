package renderer

import (
	"fmt"
	"strings"

	"folio"
)

// HoldingMarkdown renders the holding report: one table for positions,
// one for cash, and the grand total.
func HoldingMarkdown(r *folio.HoldingReport) string {
	var b strings.Builder

	if r.Account != "" {
		fmt.Fprintf(&b, "# Holdings of %s on %s\n\n", r.Account, r.Date)
	} else {
		fmt.Fprintf(&b, "# Holdings on %s\n\n", r.Date)
	}

	if len(r.Securities) > 0 {
		fmt.Fprint(&b, "## Securities\n\n")
		t := newTable(&b, "Ticker", "Quantity", "Price", "Market Value")
		for _, h := range r.Securities {
			t.row(h.Ticker, h.Quantity.String(), h.Price.String(), h.MarketValue.String())
		}
		t.bold("Total", "", "", r.TotalMarket.String())
		fmt.Fprintln(&b)
	}

	if len(r.Cash) > 0 {
		fmt.Fprint(&b, "## Cash\n\n")
		t := newTable(&b, "Currency", "Balance", "Value")
		for _, c := range r.Cash {
			t.row(c.Currency, c.Balance.String(), c.Value.String())
		}
		t.bold("Total", "", r.TotalCash.String())
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "Total Portfolio Value: **%s**\n", r.TotalValue)
	return b.String()
}
