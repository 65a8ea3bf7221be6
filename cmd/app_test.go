package cmd

import (
	"path/filepath"
	"testing"

	"github.com/google/subcommands"

	"folio"
)

func testLedgerFile(t *testing.T) {
	t.Helper()
	old := *ledgerFile
	*ledgerFile = filepath.Join(t.TempDir(), "portfolio.jsonl")
	t.Cleanup(func() { *ledgerFile = old })
}

func TestHandleTransaction(t *testing.T) {
	testLedgerFile(t)

	init := folio.NewInit(folio.MustParseDate("2025-01-01"), "", "EUR")
	if got := handleTransaction(init); got != subcommands.ExitSuccess {
		t.Fatalf("handleTransaction(init) = %v", got)
	}
	deposit := folio.NewDeposit(folio.MustParseDate("2025-01-02"), "", "ibkr", folio.M(1000, "EUR"))
	if got := handleTransaction(deposit); got != subcommands.ExitSuccess {
		t.Fatalf("handleTransaction(deposit) = %v", got)
	}

	// Withdrawing more than the balance must not touch the file.
	withdraw := folio.NewWithdraw(folio.MustParseDate("2025-01-03"), "", "ibkr", folio.M(5000, "EUR"))
	if got := handleTransaction(withdraw); got != subcommands.ExitFailure {
		t.Errorf("handleTransaction(overdraft withdraw) = %v, want failure", got)
	}

	ledger, err := decodeLedger()
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 2 {
		t.Errorf("ledger has %d transactions, want 2", ledger.Len())
	}
	if got := ledger.CashBalance("EUR", folio.MustParseDate("2025-01-03"), ""); !got.Equal(folio.M(1000, "EUR")) {
		t.Errorf("CashBalance = %s, want €1,000.00", got)
	}
}

func TestReportRange(t *testing.T) {
	period, status := reportRange("month", "", "2025-03-15")
	if status != subcommands.ExitSuccess {
		t.Fatalf("reportRange = %v", status)
	}
	if period.From != folio.MustParseDate("2025-03-01") || period.To != folio.MustParseDate("2025-03-31") {
		t.Errorf("month range = %s..%s", period.From, period.To)
	}

	period, status = reportRange("month", "2025-01-10", "2025-03-15")
	if status != subcommands.ExitSuccess {
		t.Fatalf("reportRange = %v", status)
	}
	if period.From != folio.MustParseDate("2025-01-10") {
		t.Errorf("custom range From = %s", period.From)
	}

	if _, status := reportRange("fortnight", "", "2025-03-15"); status == subcommands.ExitSuccess {
		t.Error("reportRange accepted an unknown period")
	}
	if _, status := reportRange("month", "", "someday"); status == subcommands.ExitSuccess {
		t.Error("reportRange accepted a bad end date")
	}
}
