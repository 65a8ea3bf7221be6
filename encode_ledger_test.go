package folio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	l := fixtureLedger(t)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}

	back, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	if back.Len() != l.Len() {
		t.Fatalf("decoded %d transactions, want %d", back.Len(), l.Len())
	}
	for i, tx := range l.Transactions() {
		got, _ := back.Get(i)
		if !tx.Equal(got) {
			t.Errorf("transaction %d: got %#v, want %#v", i, got, tx)
		}
	}
}

func TestEncodeTransaction_FieldOrder(t *testing.T) {
	tx := NewBuy(MustParseDate("2025-01-10"), "first tranche", "ibkr", "ACME", Q(10), M(1000, "EUR"), M(5, "EUR"))

	var buf bytes.Buffer
	if err := EncodeTransaction(&buf, tx); err != nil {
		t.Fatalf("EncodeTransaction() error = %v", err)
	}
	got := strings.TrimSpace(buf.String())
	want := `{"command":"buy","date":"2025-01-10","account":"ibkr","memo":"first tranche","security":"ACME","quantity":10,"amount":1000,"currency":"EUR","fee":5}`
	if got != want {
		t.Errorf("encoded line =\n  %s\nwant\n  %s", got, want)
	}
}

func TestDecodeLedger_SkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		`{"command":"init","date":"2025-01-01","currency":"EUR"}`,
		`this is not json`,
		`{"command":"teleport","date":"2025-01-02"}`,
		``,
		`{"command":"deposit","date":"2025-01-03","amount":100,"currency":"EUR"}`,
	}, "\n")

	l, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (malformed lines skipped)", l.Len())
	}
	if _, ok := l.transactions[1].(Deposit); !ok {
		t.Errorf("second transaction = %T, want Deposit", l.transactions[1])
	}
}

func TestSaveLoadLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.jsonl")
	l := fixtureLedger(t)

	if err := SaveLedger(path, l); err != nil {
		t.Fatalf("SaveLedger() error = %v", err)
	}
	back, err := LoadLedger(path)
	if err != nil {
		t.Fatalf("LoadLedger() error = %v", err)
	}
	if back.Len() != l.Len() {
		t.Errorf("loaded %d transactions, want %d", back.Len(), l.Len())
	}
	if back.Name() != "portfolio" {
		t.Errorf("Name() = %q, want %q", back.Name(), "portfolio")
	}
}

func TestLoadLedger_MissingFile(t *testing.T) {
	l, err := LoadLedger(filepath.Join(t.TempDir(), "does-not-exist.jsonl"))
	if err != nil {
		t.Fatalf("LoadLedger() error = %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestAppendTransaction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.jsonl")

	if err := AppendTransaction(path, NewInit(MustParseDate("2025-01-01"), "", "EUR")); err != nil {
		t.Fatalf("AppendTransaction() error = %v", err)
	}
	if err := AppendTransaction(path, NewDeposit(MustParseDate("2025-01-02"), "", "", M(100, "EUR"))); err != nil {
		t.Fatalf("AppendTransaction() error = %v", err)
	}

	l, err := LoadLedger(path)
	if err != nil {
		t.Fatalf("LoadLedger() error = %v", err)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}
