package folio

import "fmt"

// event is a single atomic operation in the portfolio's history. It is
// the lowest-level, immutable fact from which all snapshot values are
// derived.
type event interface {
	date() Date
}

// Journal holds the chronologically sorted events lowered from a ledger.
type Journal struct {
	cur    string // the reporting currency
	events []event
}

// Currency returns the journal's reporting currency.
func (j *Journal) Currency() string { return j.cur }

// creditCash increases a cash balance. external marks money entering
// the portfolio from outside, which matters for cash-flow metrics.
type creditCash struct {
	on       Date
	account  string
	amount   Money
	external bool
}

func (e creditCash) date() Date       { return e.on }
func (e creditCash) currency() string { return e.amount.Currency() }

// debitCash decreases a cash balance.
type debitCash struct {
	on       Date
	account  string
	amount   Money
	external bool
}

func (e debitCash) date() Date       { return e.on }
func (e debitCash) currency() string { return e.amount.Currency() }

// acquireLot opens a new lot of a security. cost includes commission.
type acquireLot struct {
	on       Date
	account  string
	security string
	quantity Quantity
	cost     Money
}

func (e acquireLot) date() Date { return e.on }

// disposeLot consumes a quantity of a security. proceeds are net of
// commission.
type disposeLot struct {
	on       Date
	account  string
	security string
	quantity Quantity
	proceeds Money
}

func (e disposeLot) date() Date { return e.on }

// receiveDividend records dividend income for a held security.
type receiveDividend struct {
	on       Date
	account  string
	security string
	amount   Money
}

func (e receiveDividend) date() Date { return e.on }

// declareSecurity maps a ticker to its global ID and currency.
type declareSecurity struct {
	on       Date
	ticker   string
	id       ID
	currency string
}

func (e declareSecurity) date() Date { return e.on }

// updatePrice sets the observed price of a security on a day.
type updatePrice struct {
	on       Date
	security string
	price    Money
}

func (e updatePrice) date() Date { return e.on }

// updateForex sets the value of one unit of a foreign currency in the
// reporting currency.
type updateForex struct {
	on       Date
	currency string
	rate     Money
}

func (e updateForex) date() Date { return e.on }

// splitShare rescales every open lot of a security by num/den.
type splitShare struct {
	on          Date
	security    string
	numerator   int64
	denominator int64
}

func (e splitShare) date() Date { return e.on }

// NewJournal lowers a ledger of high-level transactions into atomic
// events. The reporting currency defaults to the ledger's Init currency
// when the argument is empty.
func NewJournal(ledger *Ledger, reportingCurrency string) (*Journal, error) {
	if reportingCurrency == "" {
		reportingCurrency = ledger.Currency()
	}
	if reportingCurrency == "" {
		reportingCurrency = DefaultCurrency
	}
	j := &Journal{
		cur:    reportingCurrency,
		events: make([]event, 0, 2*len(ledger.transactions)),
	}

	for _, tx := range ledger.transactions {
		switch v := tx.(type) {
		case Init:
			// Init only fixes the reporting currency, handled above.
		case Declare:
			j.events = append(j.events,
				declareSecurity{on: v.Date, ticker: v.Ticker, id: v.ID, currency: v.Currency})
		case Buy:
			if ledger.Security(v.Security) == nil {
				return nil, fmt.Errorf("security %q not declared for buy on %s", v.Security, v.Date)
			}
			j.events = append(j.events,
				acquireLot{on: v.Date, account: v.Account, security: v.Security, quantity: v.Quantity, cost: v.Amount.Add(v.Fee)},
				debitCash{on: v.Date, account: v.Account, amount: v.Amount.Add(v.Fee)})
		case Sell:
			if ledger.Security(v.Security) == nil {
				return nil, fmt.Errorf("security %q not declared for sell on %s", v.Security, v.Date)
			}
			net := v.Amount.Sub(v.Fee)
			j.events = append(j.events,
				disposeLot{on: v.Date, account: v.Account, security: v.Security, quantity: v.Quantity, proceeds: net},
				creditCash{on: v.Date, account: v.Account, amount: net})
		case Dividend:
			j.events = append(j.events,
				receiveDividend{on: v.Date, account: v.Account, security: v.Security, amount: v.Amount},
				creditCash{on: v.Date, account: v.Account, amount: v.Amount})
		case Deposit:
			j.events = append(j.events,
				creditCash{on: v.Date, account: v.Account, amount: v.Amount, external: true})
		case Withdraw:
			j.events = append(j.events,
				debitCash{on: v.Date, account: v.Account, amount: v.Amount, external: true})
		case Convert:
			j.events = append(j.events,
				debitCash{on: v.Date, account: v.Account, amount: v.FromAmount},
				creditCash{on: v.Date, account: v.Account, amount: v.ToAmount})
		case UpdatePrice:
			j.events = append(j.events,
				updatePrice{on: v.Date, security: v.Security, price: v.Price})
			// A price for a declared currency pair quoted in the
			// reporting currency is also the forex rate.
			if sec := ledger.Security(v.Security); sec != nil {
				if base, quote, err := sec.ID().CurrencyPair(); err == nil && quote == j.cur {
					j.events = append(j.events,
						updateForex{on: v.Date, currency: base, rate: v.Price})
				}
			}
		case Split:
			j.events = append(j.events,
				splitShare{on: v.Date, security: v.Security, numerator: v.Numerator, denominator: v.Denominator})
		default:
			return nil, fmt.Errorf("unhandled transaction type %T", tx)
		}
	}
	return j, nil
}
