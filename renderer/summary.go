package renderer

import (
	"fmt"
	"strings"

	"folio"
)

// SummaryMarkdown renders the at-a-glance summary.
func SummaryMarkdown(r *folio.SummaryReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio Summary on %s\n\n", r.Date)
	fmt.Fprintf(&b, "Total Value: **%s** (market %s, cash %s)\n\n", r.TotalValue, r.TotalMarketValue, r.TotalCash)

	fmt.Fprint(&b, "## Performance\n\n")

	_, week := r.Date.ISOWeek()
	quarter := (int(r.Date.Month())-1)/3 + 1

	t := newTable(&b, "Period", "Return")
	t.row(fmt.Sprintf("Day %d", r.Date.Day()), r.Daily.Return.SignedString())
	t.row(fmt.Sprintf("Week %d", week), r.WTD.Return.SignedString())
	t.row(r.Date.Month().String(), r.MTD.Return.SignedString())
	t.row(fmt.Sprintf("Q%d", quarter), r.QTD.Return.SignedString())
	t.row(fmt.Sprintf("%d", r.Date.Year()), r.YTD.Return.SignedString())
	t.row("Inception", r.Inception.Return.SignedString())

	return b.String()
}
