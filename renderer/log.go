package renderer

import (
	"fmt"
	"strings"

	"folio"
)

// LogMarkdown renders a list of transactions as a table, newest last.
func LogMarkdown(title string, txs []folio.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(txs) == 0 {
		fmt.Fprint(&b, "No transactions.\n")
		return b.String()
	}

	t := newTable(&b, "Date", "Command", "Account", "Detail", "Memo")
	for _, tx := range txs {
		t.row(tx.When().String(), string(tx.What()), tx.Where(), describe(tx), tx.Note())
	}
	return b.String()
}

// describe summarizes the transaction specific fields in one cell.
func describe(tx folio.Transaction) string {
	switch v := tx.(type) {
	case folio.Init:
		return v.Currency
	case folio.Declare:
		return fmt.Sprintf("%s = %s (%s)", v.Ticker, v.ID, v.Currency)
	case folio.Buy:
		s := fmt.Sprintf("%s x %s for %s", v.Quantity, v.Security, v.Amount)
		if !v.Fee.IsZero() {
			s += fmt.Sprintf(" (fee %s)", v.Fee)
		}
		return s
	case folio.Sell:
		s := fmt.Sprintf("%s x %s for %s", v.Quantity, v.Security, v.Amount)
		if !v.Fee.IsZero() {
			s += fmt.Sprintf(" (fee %s)", v.Fee)
		}
		return s
	case folio.Dividend:
		return fmt.Sprintf("%s from %s", v.Amount, v.Security)
	case folio.Deposit:
		return v.Amount.String()
	case folio.Withdraw:
		return v.Amount.String()
	case folio.Convert:
		return fmt.Sprintf("%s to %s", v.FromAmount, v.ToAmount)
	case folio.UpdatePrice:
		return fmt.Sprintf("%s at %s", v.Security, v.Price)
	case folio.Split:
		return fmt.Sprintf("%s %d:%d", v.Security, v.Numerator, v.Denominator)
	}
	return ""
}

// AlertsMarkdown renders the alert list with their armed state.
func AlertsMarkdown(as *folio.Alerts) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Price Alerts\n\n")
	if as.Len() == 0 {
		fmt.Fprint(&b, "No alerts.\n")
		return b.String()
	}

	t := newTable(&b, "ID", "Ticker", "Condition", "State", "Note")
	for _, a := range as.All() {
		state := "armed"
		if a.Triggered {
			state = "triggered"
		}
		t.row(fmt.Sprintf("%d", a.ID), a.Ticker, fmt.Sprintf("%s %s", a.Op, a.Threshold), state, a.Note)
	}
	return b.String()
}
