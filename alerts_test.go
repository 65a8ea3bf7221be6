package folio

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAlerts_AddRemoveRearm(t *testing.T) {
	as := &Alerts{}
	a := as.Add("ACME", AlertAbove, dec("250"), "take profit")
	b := as.Add("ACME", AlertBelow, dec("80"), "")

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("assigned IDs = %d, %d, want 1, 2", a.ID, b.ID)
	}
	if err := as.Remove(1); err != nil {
		t.Fatalf("Remove(1) error = %v", err)
	}
	// IDs are never reused after a removal.
	if c := as.Add("ACME", AlertAbove, dec("300"), ""); c.ID != 3 {
		t.Errorf("ID after remove = %d, want 3", c.ID)
	}
	if err := as.Remove(99); err == nil {
		t.Error("Remove(99) expected error")
	}
	if err := as.Rearm(99); err == nil {
		t.Error("Rearm(99) expected error")
	}
}

func TestAlerts_Evaluate(t *testing.T) {
	as := &Alerts{}
	as.Add("ACME", AlertAbove, dec("250"), "")
	as.Add("ACME", AlertBelow, dec("80"), "")

	s := fixtureSnapshot(t, "2025-03-16") // last ACME price is 260

	fired := as.Evaluate(s)
	if len(fired) != 1 {
		t.Fatalf("Evaluate() fired %d alerts, want 1", len(fired))
	}
	if fired[0].Op != AlertAbove || !fired[0].Triggered {
		t.Errorf("fired alert = %+v, want triggered above alert", fired[0])
	}

	// One shot: the same condition does not fire again.
	if fired := as.Evaluate(s); len(fired) != 0 {
		t.Errorf("second Evaluate() fired %d alerts, want 0", len(fired))
	}

	// Rearming makes it eligible again.
	if err := as.Rearm(fired0ID(t, as)); err != nil {
		t.Fatalf("Rearm() error = %v", err)
	}
	if fired := as.Evaluate(s); len(fired) != 1 {
		t.Errorf("Evaluate() after rearm fired %d alerts, want 1", len(fired))
	}
}

func fired0ID(t *testing.T, as *Alerts) int {
	t.Helper()
	for _, a := range as.All() {
		if a.Triggered {
			return a.ID
		}
	}
	t.Fatal("no triggered alert")
	return 0
}

func TestAlerts_Evaluate_SkipsUnpricedSecurity(t *testing.T) {
	as := &Alerts{}
	as.Add("NOPE", AlertAbove, dec("1"), "")

	if fired := as.Evaluate(fixtureSnapshot(t, "2025-03-16")); len(fired) != 0 {
		t.Errorf("Evaluate() fired %d alerts for unpriced security, want 0", len(fired))
	}
}

func TestAlerts_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.alerts.jsonl")

	as := &Alerts{}
	as.Add("ACME", AlertAbove, dec("250.5"), "take profit")
	as.Add("MSFT.XNAS", AlertBelow, dec("300"), "")

	if err := SaveAlerts(path, as); err != nil {
		t.Fatalf("SaveAlerts() error = %v", err)
	}
	back, err := LoadAlerts(path)
	if err != nil {
		t.Fatalf("LoadAlerts() error = %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("loaded %d alerts, want 2", back.Len())
	}
	a, ok := back.Get(1)
	if !ok {
		t.Fatal("alert #1 missing after reload")
	}
	if a.Ticker != "ACME" || a.Op != AlertAbove || !a.Threshold.Equal(dec("250.5")) || a.Note != "take profit" {
		t.Errorf("alert #1 = %+v", a)
	}
}

func TestLoadAlerts_MissingFile(t *testing.T) {
	as, err := LoadAlerts(filepath.Join(t.TempDir(), "none.jsonl"))
	if err != nil {
		t.Fatalf("LoadAlerts() error = %v", err)
	}
	if as.Len() != 0 {
		t.Errorf("Len() = %d, want 0", as.Len())
	}
}

func TestDecodeAlerts_SkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		`{"id":1,"ticker":"ACME","op":"above","threshold":250}`,
		`not json`,
		`{"id":2,"ticker":"ACME","op":"below","threshold":80}`,
	}, "\n")

	as, err := DecodeAlerts(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeAlerts() error = %v", err)
	}
	if as.Len() != 2 {
		t.Errorf("Len() = %d, want 2", as.Len())
	}
}

func TestAlertsPath(t *testing.T) {
	if got, want := AlertsPath("/data/portfolio.jsonl"), "/data/portfolio.alerts.jsonl"; got != want {
		t.Errorf("AlertsPath() = %q, want %q", got, want)
	}
}

func TestParseAlertOp(t *testing.T) {
	if _, err := ParseAlertOp("sideways"); err == nil {
		t.Error("ParseAlertOp(sideways) expected error")
	}
	if op, err := ParseAlertOp("below"); err != nil || op != AlertBelow {
		t.Errorf("ParseAlertOp(below) = %v, %v", op, err)
	}
}
