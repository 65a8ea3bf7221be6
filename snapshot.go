package folio

import "iter"

// Snapshot is a view of the portfolio at a single point in time. It is
// a stateless calculator: every value is computed on the fly from the
// journal events up to (and including) its date.
//
// A snapshot can be scoped to one account; the empty account covers the
// whole portfolio.
type Snapshot struct {
	journal *Journal
	on      Date
	account string
}

// NewSnapshot returns a snapshot of the whole portfolio on a date.
func NewSnapshot(j *Journal, on Date) *Snapshot {
	return &Snapshot{journal: j, on: on}
}

// NewAccountSnapshot returns a snapshot scoped to one account.
func NewAccountSnapshot(j *Journal, on Date, account string) *Snapshot {
	return &Snapshot{journal: j, on: on, account: account}
}

// On returns the date of the snapshot.
func (s *Snapshot) On() Date { return s.on }

// Account returns the account the snapshot is scoped to, "" for all.
func (s *Snapshot) Account() string { return s.account }

// events iterates the journal up to the snapshot's date. Market events
// (prices, forex, splits, declarations) are never account-scoped;
// position and cash events are filtered when the snapshot has an account.
func (s *Snapshot) events() iter.Seq[event] {
	return func(yield func(event) bool) {
		for _, e := range s.journal.events {
			if e.date().After(s.on) {
				break
			}
			if s.account != "" {
				switch v := e.(type) {
				case creditCash:
					if v.account != s.account {
						continue
					}
				case debitCash:
					if v.account != s.account {
						continue
					}
				case acquireLot:
					if v.account != s.account {
						continue
					}
				case disposeLot:
					if v.account != s.account {
						continue
					}
				case receiveDividend:
					if v.account != s.account {
						continue
					}
				}
			}
			if !yield(e) {
				return
			}
		}
	}
}

// openLots replays the journal and returns the lots still open for a
// security, FIFO order, split-adjusted.
func (s *Snapshot) openLots(ticker string) lots {
	var open lots
	for e := range s.events() {
		switch v := e.(type) {
		case acquireLot:
			if v.security == ticker {
				open = append(open, lot{Date: v.on, Quantity: v.quantity, Cost: v.cost})
			}
		case disposeLot:
			if v.security == ticker {
				open = open.sell(v.quantity)
			}
		case splitShare:
			if v.security == ticker {
				open = open.split(v.numerator, v.denominator)
			}
		}
	}
	return open
}

// Position returns the quantity of a security held on the snapshot date.
func (s *Snapshot) Position(ticker string) Quantity {
	var position Quantity
	for e := range s.events() {
		switch v := e.(type) {
		case acquireLot:
			if v.security == ticker {
				position = position.Add(v.quantity)
			}
		case disposeLot:
			if v.security == ticker {
				position = position.Sub(v.quantity)
			}
		case splitShare:
			if v.security == ticker {
				position = position.Mul(Q(v.numerator)).Div(Q(v.denominator))
			}
		}
	}
	return position
}

// SecurityDetails returns the declaration of a ticker, if any.
func (s *Snapshot) SecurityDetails(ticker string) (Security, bool) {
	for e := range s.events() {
		if d, ok := e.(declareSecurity); ok && d.ticker == ticker {
			return NewSecurity(d.id, d.ticker, d.currency), true
		}
	}
	return Security{}, false
}

// Price returns the last known price of a security on or before the
// snapshot date.
func (s *Snapshot) Price(ticker string) Money {
	sec, ok := s.SecurityDetails(ticker)
	if !ok {
		return Money{}
	}
	price := M(0, sec.Currency())
	for e := range s.events() {
		if u, ok := e.(updatePrice); ok && u.security == ticker {
			price = u.price
		}
	}
	return price
}

// MarketValue returns position times last price for a security.
func (s *Snapshot) MarketValue(ticker string) Money {
	return s.Price(ticker).Mul(s.Position(ticker))
}

// Cash returns the balance of one cash currency on the snapshot date.
func (s *Snapshot) Cash(currency string) Money {
	balance := M(0, currency)
	for e := range s.events() {
		switch v := e.(type) {
		case creditCash:
			if v.currency() == currency {
				balance = balance.Add(v.amount)
			}
		case debitCash:
			if v.currency() == currency {
				balance = balance.Sub(v.amount)
			}
		}
	}
	return balance
}

// Dividends returns the dividend income received for a security since
// inception.
func (s *Snapshot) Dividends(ticker string) Money {
	var total Money
	for e := range s.events() {
		if v, ok := e.(receiveDividend); ok && v.security == ticker {
			total = total.Add(v.amount)
		}
	}
	return total
}

// CostBasis returns the cost of the shares still held, computed with
// the given method. FIFO replays lots; AverageCost keeps a running
// total.
func (s *Snapshot) CostBasis(ticker string, method CostBasisMethod) Money {
	switch method {
	case FIFO:
		var total Money
		for _, open := range s.openLots(ticker) {
			total = total.Add(open.Cost)
		}
		return total
	case AverageCost:
		var quantity Quantity
		var cost Money
		for e := range s.events() {
			switch v := e.(type) {
			case acquireLot:
				if v.security == ticker {
					quantity = quantity.Add(v.quantity)
					cost = cost.Add(v.cost)
				}
			case disposeLot:
				if v.security == ticker {
					if !quantity.IsZero() {
						cost = cost.Sub(cost.Mul(v.quantity).Div(quantity))
					}
					quantity = quantity.Sub(v.quantity)
				}
			case splitShare:
				if v.security == ticker {
					quantity = quantity.Mul(Q(v.numerator)).Div(Q(v.denominator))
				}
			}
		}
		return cost
	}
	return Money{}
}

// RealizedGains returns the profit and loss locked in by sales of a
// security since inception, with the given cost basis method.
func (s *Snapshot) RealizedGains(ticker string, method CostBasisMethod) Money {
	switch method {
	case FIFO:
		var realized Money
		var open lots
		for e := range s.events() {
			switch v := e.(type) {
			case acquireLot:
				if v.security == ticker {
					open = append(open, lot{Date: v.on, Quantity: v.quantity, Cost: v.cost})
				}
			case disposeLot:
				if v.security == ticker {
					realized = realized.Add(v.proceeds.Sub(open.costOfSale(v.quantity)))
					open = open.sell(v.quantity)
				}
			case splitShare:
				if v.security == ticker {
					open = open.split(v.numerator, v.denominator)
				}
			}
		}
		return realized
	case AverageCost:
		var realized Money
		var quantity Quantity
		var cost Money
		for e := range s.events() {
			switch v := e.(type) {
			case acquireLot:
				if v.security == ticker {
					quantity = quantity.Add(v.quantity)
					cost = cost.Add(v.cost)
				}
			case disposeLot:
				if v.security == ticker {
					var costOfSale Money
					if !quantity.IsZero() {
						costOfSale = cost.Mul(v.quantity).Div(quantity)
					}
					realized = realized.Add(v.proceeds.Sub(costOfSale))
					cost = cost.Sub(costOfSale)
					quantity = quantity.Sub(v.quantity)
				}
			case splitShare:
				if v.security == ticker {
					quantity = quantity.Mul(Q(v.numerator)).Div(Q(v.denominator))
				}
			}
		}
		return realized
	}
	return Money{}
}

// UnrealizedGains returns the paper profit on the shares still held:
// market value minus cost basis.
func (s *Snapshot) UnrealizedGains(ticker string, method CostBasisMethod) Money {
	return s.MarketValue(ticker).Sub(s.CostBasis(ticker, method))
}

// NetTradingFlow returns the net cash put into a security since
// inception: buys minus sell proceeds. Positive means net invested.
func (s *Snapshot) NetTradingFlow(ticker string) Money {
	var flow Money
	for e := range s.events() {
		switch v := e.(type) {
		case acquireLot:
			if v.security == ticker {
				flow = flow.Add(v.cost)
			}
		case disposeLot:
			if v.security == ticker {
				flow = flow.Sub(v.proceeds)
			}
		}
	}
	return flow
}

// CashFlow returns the net external cash moved in or out for one
// currency since inception. Deposits count positive, withdrawals negative.
func (s *Snapshot) CashFlow(currency string) Money {
	flow := M(0, currency)
	for e := range s.events() {
		switch v := e.(type) {
		case creditCash:
			if v.external && v.currency() == currency {
				flow = flow.Add(v.amount)
			}
		case debitCash:
			if v.external && v.currency() == currency {
				flow = flow.Sub(v.amount)
			}
		}
	}
	return flow
}

// Securities iterates over declared tickers, in declaration order.
func (s *Snapshot) Securities() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for e := range s.events() {
			if d, ok := e.(declareSecurity); ok {
				if _, dup := seen[d.ticker]; !dup {
					seen[d.ticker] = struct{}{}
					if !yield(d.ticker) {
						return
					}
				}
			}
		}
	}
}

// Currencies iterates over currencies seen so far, reporting currency
// first, then in order of first appearance.
func (s *Snapshot) Currencies() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		emit := func(cur string) bool {
			if cur == "" {
				return true
			}
			if _, dup := seen[cur]; dup {
				return true
			}
			seen[cur] = struct{}{}
			return yield(cur)
		}
		if !emit(s.journal.cur) {
			return
		}
		for e := range s.events() {
			var cur string
			switch v := e.(type) {
			case creditCash:
				cur = v.currency()
			case debitCash:
				cur = v.currency()
			case declareSecurity:
				cur = v.currency
			}
			if !emit(cur) {
				return
			}
		}
	}
}

// ExchangeRate returns the last known value of one unit of a currency
// in the reporting currency, or zero when no rate is known.
func (s *Snapshot) ExchangeRate(currency string) Money {
	if currency == s.journal.cur {
		return M(1, s.journal.cur)
	}
	var rate Money
	for e := range s.events() {
		if u, ok := e.(updateForex); ok && u.currency == currency {
			rate = u.rate
		}
	}
	if rate.IsZero() {
		return M(0, s.journal.cur)
	}
	return rate
}

// Convert converts an amount into the reporting currency using the last
// known exchange rate.
func (s *Snapshot) Convert(amount Money) Money {
	return s.ExchangeRate(amount.Currency()).Mul(Q(amount.value))
}

// sum applies a metric over a key sequence, converting each value to
// the reporting currency before adding it up.
func (s *Snapshot) sum(keys iter.Seq[string], metric func(string) Money) Money {
	total := M(0, s.journal.cur)
	for key := range keys {
		total = total.Add(s.Convert(metric(key)))
	}
	return total
}

// TotalMarket returns the market value of all securities, converted.
func (s *Snapshot) TotalMarket() Money {
	return s.sum(s.Securities(), s.MarketValue)
}

// TotalCash returns the cash balance across all currencies, converted.
func (s *Snapshot) TotalCash() Money {
	return s.sum(s.Currencies(), s.Cash)
}

// TotalPortfolio returns securities plus cash, converted.
func (s *Snapshot) TotalPortfolio() Money {
	return s.TotalMarket().Add(s.TotalCash())
}

// TotalCashFlow returns external cash flow across all currencies, converted.
func (s *Snapshot) TotalCashFlow() Money {
	return s.sum(s.Currencies(), s.CashFlow)
}

// TotalDividends returns dividend income across all securities, converted.
func (s *Snapshot) TotalDividends() Money {
	return s.sum(s.Securities(), s.Dividends)
}

// TotalRealizedGains returns realized gains across all securities, converted.
func (s *Snapshot) TotalRealizedGains(method CostBasisMethod) Money {
	return s.sum(s.Securities(), func(ticker string) Money {
		return s.RealizedGains(ticker, method)
	})
}

// TotalUnrealizedGains returns unrealized gains across all securities, converted.
func (s *Snapshot) TotalUnrealizedGains(method CostBasisMethod) Money {
	return s.sum(s.Securities(), func(ticker string) Money {
		return s.UnrealizedGains(ticker, method)
	})
}

// TotalCostBasis returns the cost basis across all securities, converted.
func (s *Snapshot) TotalCostBasis(method CostBasisMethod) Money {
	return s.sum(s.Securities(), func(ticker string) Money {
		return s.CostBasis(ticker, method)
	})
}
