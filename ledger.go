package folio

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"sort"
)

// Ledger is the chronologically ordered list of all transactions, plus
// an index of declared securities. It is the single source of truth the
// rest of the system derives from.
type Ledger struct {
	name         string
	transactions []Transaction
	securities   map[string]Security // by ticker
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{securities: make(map[string]Security)}
}

// Name returns the ledger's name, derived from its file path.
func (l *Ledger) Name() string { return l.name }

// SetName sets the ledger's name.
func (l *Ledger) SetName(name string) { l.name = name }

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Get returns the transaction at the given position in chronological order.
func (l *Ledger) Get(i int) (Transaction, bool) {
	if i < 0 || i >= len(l.transactions) {
		return nil, false
	}
	return l.transactions[i], true
}

// Delete removes the transaction at the given position.
func (l *Ledger) Delete(i int) error {
	if i < 0 || i >= len(l.transactions) {
		return fmt.Errorf("no transaction at position %d", i)
	}
	l.transactions = slices.Delete(l.transactions, i, i+1)
	l.reindex()
	return nil
}

// Security returns the declared security for a ticker, or nil.
func (l *Ledger) Security(ticker string) *Security {
	sec, ok := l.securities[ticker]
	if !ok {
		return nil
	}
	return &sec
}

// Currency returns the reporting currency set by the Init transaction,
// or "" when the ledger has none yet.
func (l *Ledger) Currency() string {
	for _, tx := range l.transactions {
		if init, ok := tx.(Init); ok {
			return init.Currency
		}
	}
	return ""
}

// Append adds transactions and restores chronological order. The sort
// is stable: same-day transactions keep their relative order.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.index(txs...)
	l.stableSort()
}

// AppendOrUpdate adds market-data transactions, replacing an existing
// entry for the same security and day instead of duplicating it. The
// background price refresher uses it so that polling twice a day does
// not grow the ledger.
func (l *Ledger) AppendOrUpdate(txs ...Transaction) {
	for _, tx := range txs {
		var replaced bool
		switch newTx := tx.(type) {
		case UpdatePrice:
			for i, existing := range l.transactions {
				if old, ok := existing.(UpdatePrice); ok && old.When() == newTx.When() && old.Security == newTx.Security {
					if !old.Price.Equal(newTx.Price) {
						log.Printf("%s: update %s price %s with %s", newTx.Date, newTx.Security, old.Price, newTx.Price)
						l.transactions[i] = newTx
					}
					replaced = true
					break
				}
			}
		case Split:
			for i, existing := range l.transactions {
				if old, ok := existing.(Split); ok && old.When() == newTx.When() && old.Security == newTx.Security {
					if old.Numerator != newTx.Numerator || old.Denominator != newTx.Denominator {
						log.Printf("%s: update %s split %d/%d with %d/%d", newTx.Date, newTx.Security,
							old.Numerator, old.Denominator, newTx.Numerator, newTx.Denominator)
						l.transactions[i] = newTx
					}
					replaced = true
					break
				}
			}
		}
		if !replaced {
			l.Append(tx)
		}
	}
}

// Validate checks a transaction against the current ledger state and
// applies its quick fixes (missing date, sell-all, currency inference).
// It returns the possibly amended transaction, ready to append.
func (l *Ledger) Validate(tx Transaction) (Transaction, error) {
	ntx, err := tx.Validate(l)
	if err != nil {
		return ntx, fmt.Errorf("invalid %s transaction on %s: %w", tx.What(), tx.When(), err)
	}
	return ntx, nil
}

// index records security declarations carried by the transactions.
func (l *Ledger) index(txs ...Transaction) {
	for _, tx := range txs {
		if d, ok := tx.(Declare); ok {
			l.securities[d.Ticker] = NewSecurity(d.ID, d.Ticker, d.Currency)
		}
	}
}

// reindex rebuilds the security index from scratch, after a deletion.
func (l *Ledger) reindex() {
	l.securities = make(map[string]Security)
	l.index(l.transactions...)
}

func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// OldestTransactionDate returns the date of the first transaction, or
// the zero date for an empty ledger.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the last transaction, or
// the zero date for an empty ledger.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}

// Transactions iterates over transactions in chronological order,
// yielding each with its position. With filters, a transaction is
// yielded when it matches all of them.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
	next:
		for i, tx := range l.transactions {
			for _, filter := range filters {
				if !filter(tx) {
					continue next
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// CashBalance computes the cash held in one currency on a date. An
// empty account sums over all accounts; otherwise only transactions of
// that account count.
func (l *Ledger) CashBalance(currency string, on Date, account string) Money {
	balance := M(0, currency)
	for _, tx := range l.transactions {
		if tx.When().After(on) {
			break
		}
		if account != "" && tx.Where() != account {
			continue
		}
		switch v := tx.(type) {
		case Buy:
			if sec := l.Security(v.Security); sec != nil && sec.Currency() == currency {
				balance = balance.Sub(v.Amount).Sub(v.Fee)
			}
		case Sell:
			if sec := l.Security(v.Security); sec != nil && sec.Currency() == currency {
				balance = balance.Add(v.Amount).Sub(v.Fee)
			}
		case Dividend:
			if v.Amount.Currency() == currency {
				balance = balance.Add(v.Amount)
			}
		case Deposit:
			if v.Currency() == currency {
				balance = balance.Add(v.Amount)
			}
		case Withdraw:
			if v.Currency() == currency {
				balance = balance.Sub(v.Amount)
			}
		case Convert:
			if v.FromCurrency() == currency {
				balance = balance.Sub(v.FromAmount)
			}
			if v.ToCurrency() == currency {
				balance = balance.Add(v.ToAmount)
			}
		}
	}
	return balance
}

// Position computes the quantity of a security held on a date. An empty
// account sums over all accounts. Splits apply to every account.
func (l *Ledger) Position(security string, on Date, account string) Quantity {
	var position Quantity
	for _, tx := range l.transactions {
		if tx.When().After(on) {
			break
		}
		switch v := tx.(type) {
		case Buy:
			if v.Security == security && (account == "" || v.Account == account) {
				position = position.Add(v.Quantity)
			}
		case Sell:
			if v.Security == security && (account == "" || v.Account == account) {
				position = position.Sub(v.Quantity)
			}
		case Split:
			if v.Security == security {
				position = position.Mul(Q(v.Numerator)).Div(Q(v.Denominator))
			}
		}
	}
	return position
}

// AllSecurities iterates over declared securities, in ticker order.
func (l *Ledger) AllSecurities() iter.Seq[Security] {
	return func(yield func(Security) bool) {
		tickers := slices.Sorted(maps.Keys(l.securities))
		for _, ticker := range tickers {
			if !yield(l.securities[ticker]) {
				return
			}
		}
	}
}

// AllAccounts iterates over the distinct account names appearing in the
// ledger, in order of first appearance. The default "" account is not
// yielded.
func (l *Ledger) AllAccounts() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, tx := range l.transactions {
			account := tx.Where()
			if account == "" {
				continue
			}
			if _, ok := seen[account]; ok {
				continue
			}
			seen[account] = struct{}{}
			if !yield(account) {
				return
			}
		}
	}
}

// AllCurrencies iterates over the distinct currencies appearing in the
// ledger, sorted, reporting currency included.
func (l *Ledger) AllCurrencies() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		add := func(cur string) {
			if cur != "" {
				seen[cur] = struct{}{}
			}
		}
		for _, tx := range l.transactions {
			switch v := tx.(type) {
			case Init:
				add(v.Currency)
			case Declare:
				add(v.Currency)
			case Buy:
				add(v.Currency())
			case Sell:
				add(v.Currency())
			case Dividend:
				add(v.Amount.Currency())
			case Deposit:
				add(v.Currency())
			case Withdraw:
				add(v.Currency())
			case Convert:
				add(v.FromCurrency())
				add(v.ToCurrency())
			}
		}
		for _, cur := range slices.Sorted(maps.Keys(seen)) {
			if !yield(cur) {
				return
			}
		}
	}
}

// InceptionDate returns the date of the first transaction involving a
// security, price updates excluded.
func (l *Ledger) InceptionDate(security string) (Date, bool) {
	for _, tx := range l.transactions {
		switch v := tx.(type) {
		case Buy:
			if v.Security == security {
				return v.Date, true
			}
		case Sell:
			if v.Security == security {
				return v.Date, true
			}
		case Dividend:
			if v.Security == security {
				return v.Date, true
			}
		case Split:
			if v.Security == security {
				return v.Date, true
			}
		}
	}
	return Date{}, false
}

// LastPriceDate returns the date of the most recent price update for a
// security.
func (l *Ledger) LastPriceDate(security string) (Date, bool) {
	for i := len(l.transactions) - 1; i >= 0; i-- {
		if v, ok := l.transactions[i].(UpdatePrice); ok && v.Security == security {
			return v.Date, true
		}
	}
	return Date{}, false
}

// BySecurity filters transactions about one security.
func BySecurity(ticker string) func(Transaction) bool {
	return func(tx Transaction) bool {
		switch v := tx.(type) {
		case Buy:
			return v.Security == ticker
		case Sell:
			return v.Security == ticker
		case Dividend:
			return v.Security == ticker
		case Split:
			return v.Security == ticker
		case UpdatePrice:
			return v.Security == ticker
		case Declare:
			return v.Ticker == ticker
		}
		return false
	}
}

// ByAccount filters transactions of one account.
func ByAccount(account string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Where() == account }
}

// ByCommand filters transactions of one command type.
func ByCommand(cmd CommandType) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.What() == cmd }
}

// ByRange filters transactions inside an inclusive date range.
func ByRange(from, to Date) func(Transaction) bool {
	return func(tx Transaction) bool {
		return !tx.When().Before(from) && !tx.When().After(to)
	}
}
