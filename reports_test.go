package folio

import (
	"math"
	"testing"

	"folio/date"
)

func fixtureJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := NewJournal(fixtureLedger(t), "")
	if err != nil {
		t.Fatalf("NewJournal() error = %v", err)
	}
	return j
}

func TestNewGainsReport(t *testing.T) {
	period := Range{From: MustParseDate("2025-03-01"), To: MustParseDate("2025-03-31")}
	report := NewGainsReport(fixtureJournal(t), period, FIFO, "")

	if report.ReportingCurrency != "EUR" {
		t.Errorf("ReportingCurrency = %q, want EUR", report.ReportingCurrency)
	}
	if len(report.Securities) != 1 {
		t.Fatalf("got %d security lines, want 1", len(report.Securities))
	}
	line := report.Securities[0]
	if line.Security != "ACME" {
		t.Errorf("Security = %q, want ACME", line.Security)
	}
	if want := M(1750, "EUR"); !line.Realized.Equal(want) {
		t.Errorf("Realized = %s, want %s", line.Realized, want)
	}
	if want := M(300, "EUR"); !line.Unrealized.Equal(want) {
		t.Errorf("Unrealized = %s, want %s", line.Unrealized, want)
	}
	if want := M(1750, "EUR"); !report.Realized.Equal(want) {
		t.Errorf("total Realized = %s, want %s", report.Realized, want)
	}
	// Total portfolio change over March: 12100 at end, 7000 before the
	// sale (the position had no quote yet). No deposit or withdrawal
	// falls in March, so nothing is stripped out.
	if want := M(5100, "EUR"); !report.Total.Equal(want) {
		t.Errorf("Total = %s, want %s", report.Total, want)
	}
}

func TestNewGainsReport_ExcludesExternalFlow(t *testing.T) {
	// The period covers the initial deposit. Cash put in is not a gain:
	// Total must only count what the holdings earned.
	period := Range{From: MustParseDate("2025-01-01"), To: MustParseDate("2025-03-31")}
	report := NewGainsReport(fixtureJournal(t), period, FIFO, "")

	// Realized 1750 plus unrealized 300 plus the 50 dividend, not the
	// 10000 deposit on top.
	if want := M(2100, "EUR"); !report.Total.Equal(want) {
		t.Errorf("Total = %s, want %s", report.Total, want)
	}
}

func TestNewGainsReport_QuietPeriod(t *testing.T) {
	period := date.NewRange(MustParseDate("2024-06-01"), date.Monthly)
	report := NewGainsReport(fixtureJournal(t), period, FIFO, "")

	if len(report.Securities) != 0 {
		t.Errorf("got %d security lines before inception, want 0", len(report.Securities))
	}
	if !report.Realized.IsZero() {
		t.Errorf("Realized = %s, want 0", report.Realized)
	}
}

func TestNewHoldingReport(t *testing.T) {
	report := NewHoldingReport(fixtureJournal(t), MustParseDate("2025-03-16"), "")

	if len(report.Securities) != 1 {
		t.Fatalf("got %d security lines, want 1", len(report.Securities))
	}
	line := report.Securities[0]
	if line.Ticker != "ACME" || !line.Quantity.Equal(Q(5)) {
		t.Errorf("line = %+v, want 5 ACME", line)
	}
	if want := M(260, "EUR"); !line.Price.Equal(want) {
		t.Errorf("Price = %s, want %s", line.Price, want)
	}
	if want := M(1300, "EUR"); !line.MarketValue.Equal(want) {
		t.Errorf("MarketValue = %s, want %s", line.MarketValue, want)
	}

	if len(report.Cash) != 1 {
		t.Fatalf("got %d cash lines, want 1", len(report.Cash))
	}
	if want := M(10750, "EUR"); !report.Cash[0].Balance.Equal(want) {
		t.Errorf("cash balance = %s, want %s", report.Cash[0].Balance, want)
	}
	if want := M(12050, "EUR"); !report.TotalValue.Equal(want) {
		t.Errorf("TotalValue = %s, want %s", report.TotalValue, want)
	}
}

func TestNewHoldingReport_SkipsClosedPositions(t *testing.T) {
	l := fixtureLedger(t)
	l.Append(NewSell(MustParseDate("2025-04-01"), "", "ibkr", "ACME", Q(5), M(1300, "EUR"), Money{}))
	j, err := NewJournal(l, "")
	if err != nil {
		t.Fatal(err)
	}

	report := NewHoldingReport(j, MustParseDate("2025-04-02"), "")
	if len(report.Securities) != 0 {
		t.Errorf("got %d security lines after closing, want 0", len(report.Securities))
	}
}

func TestNewSummaryReport(t *testing.T) {
	report := NewSummaryReport(fixtureJournal(t), MustParseDate("2025-03-21"), "")

	if want := M(12100, "EUR"); !report.TotalValue.Equal(want) {
		t.Errorf("TotalValue = %s, want %s", report.TotalValue, want)
	}
	// Nothing moved on the 21st.
	if report.Daily.Return != 0 {
		t.Errorf("Daily.Return = %v, want 0", report.Daily.Return)
	}
	// Since inception: 10000 in, 12100 now.
	if got, want := float64(report.Inception.Return), 0.21; math.Abs(got-want) > 1e-9 {
		t.Errorf("Inception.Return = %v, want %v", got, want)
	}
	// YTD starts from an empty portfolio, so the flow adjusted return
	// compares against a zero start and stays zero by convention.
	if report.YTD.StartValue.InexactFloat64() != 0 {
		t.Errorf("YTD.StartValue = %s, want 0", report.YTD.StartValue)
	}
}

func TestPercent_Strings(t *testing.T) {
	if got := Percent(0.0512).String(); got != "5.12%" {
		t.Errorf("String() = %q, want 5.12%%", got)
	}
	if got := Percent(0.0512).SignedString(); got != "+5.12%" {
		t.Errorf("SignedString() = %q, want +5.12%%", got)
	}
	if got := Percent(-0.03).SignedString(); got != "-3.00%" {
		t.Errorf("SignedString() = %q, want -3.00%%", got)
	}
}
