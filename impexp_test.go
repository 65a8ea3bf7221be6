package folio

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, fixtureLedger(t)); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	// Header plus one row per transaction.
	if want := 1 + fixtureLedger(t).Len(); len(lines) != want {
		t.Fatalf("got %d CSV lines, want %d", len(lines), want)
	}
	if lines[0] != strings.Join(csvHeader, ",") {
		t.Errorf("header = %q", lines[0])
	}
	if want := "2025-01-10,buy,ibkr,ACME,10,1000,EUR,,"; lines[4] != want {
		t.Errorf("buy row = %q, want %q", lines[4], want)
	}
}

func TestImportCSV(t *testing.T) {
	l := NewLedger()
	l.Append(
		NewInit(MustParseDate("2025-01-01"), "", "EUR"),
		NewDeclare(MustParseDate("2025-01-01"), "", "ACME", "acme industries", "EUR"),
	)

	input := strings.Join([]string{
		strings.Join(csvHeader, ","),
		"2025-01-02,deposit,ibkr,,,5000,EUR,,",
		"2025-01-10,buy,ibkr,ACME,10,1000,EUR,2.5,first tranche",
		"2025-01-11,buy,ibkr,NOPE,1,10,EUR,,",   // undeclared, skipped
		"not-a-date,buy,ibkr,ACME,1,10,EUR,,",   // malformed, skipped
		"2025-01-12,teleport,ibkr,,,10,EUR,,",   // unknown command, skipped
		"2025-01-13,withdraw,ibkr,,,1000,EUR,,", // valid
	}, "\n")

	txs, err := ImportCSV(strings.NewReader(input), l)
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("imported %d transactions, want 3", len(txs))
	}

	buy, ok := txs[1].(Buy)
	if !ok {
		t.Fatalf("txs[1] = %T, want Buy", txs[1])
	}
	if !buy.Fee.Equal(M(2.5, "EUR")) {
		t.Errorf("fee = %s, want 2.5 EUR", buy.Fee)
	}
	if buy.Memo != "first tranche" {
		t.Errorf("memo = %q, want %q", buy.Memo, "first tranche")
	}

	// Imported rows were appended: the cash reflects them.
	if got, want := l.CashBalance("EUR", MustParseDate("2025-01-13"), "ibkr"), M(2997.5, "EUR"); !got.Equal(want) {
		t.Errorf("CashBalance = %s, want %s", got, want)
	}
}

func TestImportCSV_RejectsBadHeader(t *testing.T) {
	_, err := ImportCSV(strings.NewReader("a,b,c\n"), NewLedger())
	if err == nil {
		t.Fatal("ImportCSV() expected error for bad header")
	}
}

// brokenReader serves its buffered bytes, then fails on every
// subsequent Read, the way a dropped upload does.
type brokenReader struct {
	data []byte
	err  error
}

func (r *brokenReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestImportCSV_ReaderError(t *testing.T) {
	// A reader that keeps failing is not a bad row to skip over: the
	// import must stop and report it instead of spinning forever.
	r := &brokenReader{
		data: []byte(strings.Join(csvHeader, ",") + "\n2025-01-02,deposit,ibkr,,,5000,EUR,,\n"),
		err:  errors.New("connection reset"),
	}
	_, err := ImportCSV(r, NewLedger())
	if err == nil {
		t.Fatal("ImportCSV() expected error for a failing reader")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("error = %v, want the reader's error wrapped", err)
	}
}

func TestExportGainsCSV(t *testing.T) {
	period := Range{From: MustParseDate("2025-03-01"), To: MustParseDate("2025-03-31")}
	report := NewGainsReport(fixtureJournal(t), period, FIFO, "")

	var buf bytes.Buffer
	if err := ExportGainsCSV(&buf, report); err != nil {
		t.Fatalf("ExportGainsCSV() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	if len(lines) != 3 {
		t.Fatalf("got %d CSV lines, want 3", len(lines))
	}
	if want := "security,quantity,currency,realized,unrealized"; lines[0] != want {
		t.Errorf("header = %q, want %q", lines[0], want)
	}
	if want := "ACME,5,EUR,1750,300"; lines[1] != want {
		t.Errorf("gains row = %q, want %q", lines[1], want)
	}
	if want := "TOTAL,,EUR,1750,300"; lines[2] != want {
		t.Errorf("total row = %q, want %q", lines[2], want)
	}
}
