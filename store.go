package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadLedger reads the JSONL ledger file at path. A missing file is not
// an error: it yields an empty ledger, so the first command against a
// fresh portfolio just works.
func LoadLedger(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		l := NewLedger()
		l.SetName(ledgerName(path))
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	l, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	l.SetName(ledgerName(path))
	return l, nil
}

// SaveLedger writes the ledger to path atomically: the canonical form
// goes to a temporary file in the same directory, which then replaces
// the original. A crash mid-write never corrupts the previous file.
func SaveLedger(path string, l *Ledger) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create ledger directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temporary ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeLedger(tmp, l); err != nil {
		tmp.Close()
		return fmt.Errorf("could not encode ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temporary ledger file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not replace ledger file %q: %w", path, err)
	}
	return nil
}

// AppendTransaction appends one transaction to the ledger file without
// rewriting it. The caller is expected to have validated the
// transaction against a loaded ledger first.
func AppendTransaction(path string, tx Transaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create ledger directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()
	return EncodeTransaction(f, tx)
}

func ledgerName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
