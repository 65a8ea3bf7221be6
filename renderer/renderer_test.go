package renderer

import (
	"strings"
	"testing"

	"folio"
	"folio/date"
)

func fixtureJournal(t *testing.T) *folio.Journal {
	t.Helper()
	l := folio.NewLedger()
	l.Append(
		folio.NewInit(folio.MustParseDate("2025-01-01"), "", "EUR"),
		folio.NewDeclare(folio.MustParseDate("2025-01-01"), "", "ACME", "acme industries", "EUR"),
		folio.NewDeposit(folio.MustParseDate("2025-01-02"), "", "ibkr", folio.M(10000, "EUR")),
		folio.NewBuy(folio.MustParseDate("2025-01-10"), "first tranche", "ibkr", "ACME", folio.Q(10), folio.M(1000, "EUR"), folio.Money{}),
		folio.NewSell(folio.MustParseDate("2025-02-10"), "", "ibkr", "ACME", folio.Q(5), folio.M(750, "EUR"), folio.Money{}),
		folio.NewUpdatePrice(folio.MustParseDate("2025-02-15"), "ACME", folio.M(150, "EUR")),
	)
	j, err := folio.NewJournal(l, "")
	if err != nil {
		t.Fatalf("NewJournal() error = %v", err)
	}
	return j
}

func TestHoldingMarkdown(t *testing.T) {
	report := folio.NewHoldingReport(fixtureJournal(t), folio.MustParseDate("2025-02-16"), "")
	got := HoldingMarkdown(report)

	for _, want := range []string{
		"# Holdings on 2025-02-16",
		"## Securities",
		"| ACME | 5 |",
		"## Cash",
		"| EUR |",
		"Total Portfolio Value:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("HoldingMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestGainsMarkdown(t *testing.T) {
	period := date.NewRange(folio.MustParseDate("2025-02-01"), date.Monthly)
	report := folio.NewGainsReport(fixtureJournal(t), period, folio.FIFO, "")
	got := GainsMarkdown(report)

	for _, want := range []string{
		"# Capital Gains from 2025-02-01 to 2025-02-28",
		"Method: fifo",
		"| ACME |",
		"**Total**",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("GainsMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestSummaryMarkdown(t *testing.T) {
	report := folio.NewSummaryReport(fixtureJournal(t), folio.MustParseDate("2025-02-16"), "")
	got := SummaryMarkdown(report)

	for _, want := range []string{
		"# Portfolio Summary on 2025-02-16",
		"## Performance",
		"| Inception |",
		"| February |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("SummaryMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestLogMarkdown(t *testing.T) {
	l := folio.NewLedger()
	l.Append(
		folio.NewDeposit(folio.MustParseDate("2025-01-02"), "funding", "ibkr", folio.M(100, "EUR")),
	)
	var txs []folio.Transaction
	for _, tx := range l.Transactions() {
		txs = append(txs, tx)
	}
	got := LogMarkdown("Transactions", txs)

	for _, want := range []string{"# Transactions", "| 2025-01-02 | deposit | ibkr |", "funding"} {
		if !strings.Contains(got, want) {
			t.Errorf("LogMarkdown() missing %q in:\n%s", want, got)
		}
	}

	if got := LogMarkdown("Transactions", nil); !strings.Contains(got, "No transactions.") {
		t.Errorf("LogMarkdown(nil) = %q", got)
	}
}

func TestAlertsMarkdown(t *testing.T) {
	as := &folio.Alerts{}
	got := AlertsMarkdown(as)
	if !strings.Contains(got, "No alerts.") {
		t.Errorf("AlertsMarkdown(empty) = %q", got)
	}
}
