package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// amountCmd decodes the flattened amount/currency fields shared by
// every transaction that carries a Money, plus the optional fee.
type amountCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Fee      decimal.Decimal `json:"fee"`
}

func (a amountCmd) Money() Money { return M(a.Amount, a.Currency) }

func (a amountCmd) FeeMoney() Money {
	if a.Fee.IsZero() {
		return Money{}
	}
	return M(a.Fee, a.Currency)
}

// priceCmd decodes the price/currency fields of an update-price line.
type priceCmd struct {
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

func (a priceCmd) PriceMoney() Money { return M(a.Price, a.Currency) }

// convertCmd decodes the four flattened fields of a convert line.
type convertCmd struct {
	baseCmd
	FromAmount   decimal.Decimal `json:"fromAmount"`
	FromCurrency string          `json:"fromCurrency"`
	ToAmount     decimal.Decimal `json:"toAmount"`
	ToCurrency   string          `json:"toCurrency"`
}

func (a convertCmd) FromMoney() Money { return M(a.FromAmount, a.FromCurrency) }
func (a convertCmd) ToMoney() Money   { return M(a.ToAmount, a.ToCurrency) }

// DecodeTransaction decodes a single JSONL line into its transaction type.
func DecodeTransaction(line []byte) (Transaction, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(line, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command: %w", err)
	}

	var tx Transaction
	var err error
	switch identifier.Command {
	case CmdInit:
		var t Init
		err = json.Unmarshal(line, &t)
		tx = t
	case CmdDeclare:
		var t Declare
		err = json.Unmarshal(line, &t)
		tx = t
	case CmdBuy:
		var t Buy
		err = json.Unmarshal(line, &t)
		tx = t
	case CmdSell:
		var t Sell
		err = json.Unmarshal(line, &t)
		tx = t
	case CmdDividend:
		var t Dividend
		err = json.Unmarshal(line, &t)
		tx = t
	case CmdDeposit:
		var t Deposit
		err = json.Unmarshal(line, &t)
		tx = t
	case CmdWithdraw:
		var t Withdraw
		err = json.Unmarshal(line, &t)
		tx = t
	case CmdConvert:
		var t Convert
		err = json.Unmarshal(line, &t)
		tx = t
	case CmdUpdatePrice:
		var t UpdatePrice
		err = json.Unmarshal(line, &t)
		tx = t
	case CmdSplit:
		var t Split
		err = json.Unmarshal(line, &t)
		tx = t
	default:
		return nil, fmt.Errorf("unknown transaction command %q", identifier.Command)
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// DecodeLedger reads a JSONL stream and returns a chronologically
// sorted Ledger. Malformed lines are skipped with a warning, so one bad
// record never makes the whole ledger unreadable.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		tx, err := DecodeTransaction(line)
		if err != nil {
			log.Printf("warning: skipping malformed record at line %d: %v", lineno, err)
			continue
		}
		ledger.Append(tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}
	return ledger, nil
}

// EncodeTransaction writes one transaction as a JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	b, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger writes the whole ledger in canonical JSONL form, in
// chronological order with a stable field order per line.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ledger.stableSort()
	for _, tx := range ledger.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
