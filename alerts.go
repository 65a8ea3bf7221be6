package folio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/shopspring/decimal"
)

// AlertOp tells on which side of the threshold an alert fires.
type AlertOp string

const (
	AlertAbove AlertOp = "above"
	AlertBelow AlertOp = "below"
)

// ParseAlertOp converts user input to an AlertOp.
func ParseAlertOp(s string) (AlertOp, error) {
	switch AlertOp(s) {
	case AlertAbove, AlertBelow:
		return AlertOp(s), nil
	}
	return "", fmt.Errorf("unknown alert operator %q (above or below)", s)
}

// Alert is a one shot price watch on a declared security. Once
// triggered it stays quiet until rearmed.
type Alert struct {
	ID        int             `json:"id"`
	Ticker    string          `json:"ticker"`
	Op        AlertOp         `json:"op"`
	Threshold decimal.Decimal `json:"threshold"`
	Note      string          `json:"note,omitempty"`
	Triggered bool            `json:"triggered,omitempty"`
}

// Matches reports whether the price is on the alert's firing side of
// the threshold.
func (a Alert) Matches(price Money) bool {
	switch a.Op {
	case AlertAbove:
		return price.value.GreaterThanOrEqual(a.Threshold)
	case AlertBelow:
		return price.value.LessThanOrEqual(a.Threshold)
	}
	return false
}

func (a Alert) String() string {
	return fmt.Sprintf("#%d %s %s %s", a.ID, a.Ticker, a.Op, a.Threshold)
}

// Alerts is the set of price watches attached to one ledger.
type Alerts struct {
	alerts []Alert
}

// Add registers a new alert and returns it with its assigned ID.
func (as *Alerts) Add(ticker string, op AlertOp, threshold decimal.Decimal, note string) Alert {
	id := 1
	for _, a := range as.alerts {
		if a.ID >= id {
			id = a.ID + 1
		}
	}
	a := Alert{ID: id, Ticker: ticker, Op: op, Threshold: threshold, Note: note}
	as.alerts = append(as.alerts, a)
	return a
}

// Remove deletes the alert with the given ID.
func (as *Alerts) Remove(id int) error {
	for i, a := range as.alerts {
		if a.ID == id {
			as.alerts = slices.Delete(as.alerts, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("no alert with id %d", id)
}

// Rearm resets a triggered alert so it can fire again.
func (as *Alerts) Rearm(id int) error {
	for i, a := range as.alerts {
		if a.ID == id {
			as.alerts[i].Triggered = false
			return nil
		}
	}
	return fmt.Errorf("no alert with id %d", id)
}

// Get returns the alert with the given ID.
func (as *Alerts) Get(id int) (Alert, bool) {
	for _, a := range as.alerts {
		if a.ID == id {
			return a, true
		}
	}
	return Alert{}, false
}

// All returns the alerts sorted by ID.
func (as *Alerts) All() []Alert {
	out := slices.Clone(as.alerts)
	slices.SortFunc(out, func(a, b Alert) int { return a.ID - b.ID })
	return out
}

// Len returns the number of alerts, armed or not.
func (as *Alerts) Len() int { return len(as.alerts) }

// Evaluate checks every armed alert against the snapshot's prices and
// returns the ones that fire. Fired alerts flip to triggered and stay
// that way until Rearm.
func (as *Alerts) Evaluate(s *Snapshot) []Alert {
	var fired []Alert
	for i, a := range as.alerts {
		if a.Triggered {
			continue
		}
		price := s.Price(a.Ticker)
		if price.IsZero() {
			continue
		}
		if a.Matches(price) {
			as.alerts[i].Triggered = true
			fired = append(fired, as.alerts[i])
		}
	}
	return fired
}

// AlertsPath returns the alerts file that goes with a ledger file, a
// JSONL sibling with the same base name.
func AlertsPath(ledgerPath string) string {
	ext := filepath.Ext(ledgerPath)
	return ledgerPath[:len(ledgerPath)-len(ext)] + ".alerts" + ext
}

// DecodeAlerts reads alerts from JSONL, one alert per line. Malformed
// lines are skipped with a warning, like the ledger decoder.
func DecodeAlerts(r io.Reader) (*Alerts, error) {
	as := &Alerts{}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var a Alert
		if err := json.Unmarshal(line, &a); err != nil {
			log.Printf("warning: skipping malformed alert at line %d: %v", lineno, err)
			continue
		}
		as.alerts = append(as.alerts, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read alerts: %w", err)
	}
	return as, nil
}

// EncodeAlerts writes alerts as JSONL in ID order.
func EncodeAlerts(w io.Writer, as *Alerts) error {
	for _, a := range as.All() {
		b, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("could not encode alert #%d: %w", a.ID, err)
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// LoadAlerts reads the alerts file at path. A missing file yields an
// empty set.
func LoadAlerts(path string) (*Alerts, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Alerts{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open alerts file %q: %w", path, err)
	}
	defer f.Close()
	return DecodeAlerts(f)
}

// SaveAlerts writes the alerts to path atomically, same scheme as
// SaveLedger.
func SaveAlerts(path string, as *Alerts) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create alerts directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temporary alerts file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeAlerts(tmp, as); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temporary alerts file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not replace alerts file %q: %w", path, err)
	}
	return nil
}
