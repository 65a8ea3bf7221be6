package folio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"
)

// This file implements the CSV interchange format: a transaction log
// export for spreadsheets, and an import for broker statements.

// csvHeader is the column set of both the export and the import.
var csvHeader = []string{"date", "command", "account", "security", "quantity", "amount", "currency", "fee", "memo"}

// ExportCSV writes the ledger's transactions as CSV, one row per
// transaction, in chronological order. Convert transactions span two
// rows would be ambiguous, so the 'to' side lands in the memo-adjacent
// amount columns of a single row with currency pairs spelled out.
func ExportCSV(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("could not write CSV header: %w", err)
	}
	for _, tx := range l.Transactions() {
		row := []string{tx.When().String(), string(tx.What()), tx.Where(), "", "", "", "", "", ""}
		switch v := tx.(type) {
		case Init:
			row[6] = v.Currency
			row[8] = v.Memo
		case Declare:
			row[3] = v.Ticker
			row[6] = v.Currency
			row[8] = v.Memo
		case Buy:
			row[3] = v.Security
			row[4] = v.Quantity.String()
			row[5] = v.Amount.value.String()
			row[6] = v.Amount.Currency()
			if !v.Fee.IsZero() {
				row[7] = v.Fee.value.String()
			}
			row[8] = v.Memo
		case Sell:
			row[3] = v.Security
			row[4] = v.Quantity.String()
			row[5] = v.Amount.value.String()
			row[6] = v.Amount.Currency()
			if !v.Fee.IsZero() {
				row[7] = v.Fee.value.String()
			}
			row[8] = v.Memo
		case Dividend:
			row[3] = v.Security
			row[5] = v.Amount.value.String()
			row[6] = v.Amount.Currency()
			row[8] = v.Memo
		case Deposit:
			row[5] = v.Amount.value.String()
			row[6] = v.Currency()
			row[8] = v.Memo
		case Withdraw:
			row[5] = v.Amount.value.String()
			row[6] = v.Currency()
			row[8] = v.Memo
		case Convert:
			row[5] = v.FromAmount.value.String()
			row[6] = v.FromCurrency()
			row[8] = fmt.Sprintf("to %s %s %s", v.ToAmount.value, v.ToCurrency(), v.Memo)
		case UpdatePrice:
			row[3] = v.Security
			row[5] = v.Price.value.String()
			row[6] = v.Price.Currency()
		case Split:
			row[3] = v.Security
			row[8] = fmt.Sprintf("%d:%d", v.Numerator, v.Denominator)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportGainsCSV writes a gains report as CSV, one row per security
// plus a total row, amounts in plain decimal form.
func ExportGainsCSV(w io.Writer, r *GainsReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"security", "quantity", "currency", "realized", "unrealized"}); err != nil {
		return fmt.Errorf("could not write CSV header: %w", err)
	}
	for _, s := range r.Securities {
		row := []string{s.Security, s.Quantity.String(), s.Realized.Currency(),
			s.Realized.Amount().String(), s.Unrealized.Amount().String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write CSV row: %w", err)
		}
	}
	total := []string{"TOTAL", "", r.ReportingCurrency,
		r.Realized.Amount().String(), r.Unrealized.Amount().String()}
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("could not write CSV total: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV reads a broker statement in the export column format and
// returns the transactions it describes, validated against the ledger
// in row order. Malformed rows are skipped with a warning, matching the
// ledger decoder's behavior.
func ImportCSV(r io.Reader, l *Ledger) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read CSV header: %w", err)
	}
	for i, want := range csvHeader {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected CSV header column %d: got %q, want %q", i, header[i], want)
		}
	}

	var txs []Transaction
	line := 1
	for {
		line++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			log.Printf("warning: skipping malformed CSV row at line %d: %v", line, err)
			continue
		}
		if err != nil {
			// Not a row problem but a broken source. Bail out with
			// whatever was imported so far.
			return txs, fmt.Errorf("could not read CSV: %w", err)
		}
		tx, err := transactionFromRow(record)
		if err != nil {
			log.Printf("warning: skipping CSV row at line %d: %v", line, err)
			continue
		}
		tx, err = l.Validate(tx)
		if err != nil {
			log.Printf("warning: skipping CSV row at line %d: %v", line, err)
			continue
		}
		l.Append(tx)
		txs = append(txs, tx)
	}
	return txs, nil
}

func transactionFromRow(row []string) (Transaction, error) {
	on, err := ParseDate(row[0])
	if err != nil {
		return nil, err
	}
	account, security, memo := row[2], row[3], row[8]

	parse := func(s string) (decimal.Decimal, error) {
		if s == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(s)
	}
	quantity, err := parse(row[4])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", row[4], err)
	}
	amount, err := parse(row[5])
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", row[5], err)
	}
	fee, err := parse(row[7])
	if err != nil {
		return nil, fmt.Errorf("invalid fee %q: %w", row[7], err)
	}
	currency := row[6]
	feeMoney := Money{}
	if !fee.IsZero() {
		feeMoney = M(fee, currency)
	}

	switch CommandType(row[1]) {
	case CmdBuy:
		return NewBuy(on, memo, account, security, Q(quantity), M(amount, currency), feeMoney), nil
	case CmdSell:
		return NewSell(on, memo, account, security, Q(quantity), M(amount, currency), feeMoney), nil
	case CmdDividend:
		return NewDividend(on, memo, account, security, M(amount, currency)), nil
	case CmdDeposit:
		return NewDeposit(on, memo, account, M(amount, currency)), nil
	case CmdWithdraw:
		return NewWithdraw(on, memo, account, M(amount, currency)), nil
	default:
		return nil, fmt.Errorf("unsupported CSV command %q", row[1])
	}
}
