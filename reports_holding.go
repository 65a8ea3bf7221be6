package folio

import "time"

// HoldingReport is a detailed view of what the portfolio holds on a
// date: positions with their last price, cash per currency, and the
// grand total in the reporting currency.
type HoldingReport struct {
	Date              Date
	Time              time.Time // generation time
	Account           string    // "" for the whole portfolio
	ReportingCurrency string
	Securities        []SecurityHolding
	Cash              []CashHolding
	TotalMarket       Money
	TotalCash         Money
	TotalValue        Money
}

// SecurityHolding is one position line of the holding report.
type SecurityHolding struct {
	Ticker      string
	ID          ID
	Currency    string
	Quantity    Quantity
	Price       Money
	MarketValue Money // in reporting currency
}

// CashHolding is one currency line of the holding report.
type CashHolding struct {
	Currency string
	Balance  Money // in its own currency
	Value    Money // in reporting currency
}

// NewHoldingReport computes the holding report on a date, optionally
// scoped to one account. Securities with a zero position are left out.
func NewHoldingReport(j *Journal, on Date, account string) *HoldingReport {
	s := NewAccountSnapshot(j, on, account)
	report := &HoldingReport{
		Date:              on,
		Time:              time.Now(),
		Account:           account,
		ReportingCurrency: j.Currency(),
	}

	for ticker := range s.Securities() {
		position := s.Position(ticker)
		if position.IsZero() {
			continue
		}
		sec, _ := s.SecurityDetails(ticker)
		report.Securities = append(report.Securities, SecurityHolding{
			Ticker:      ticker,
			ID:          sec.ID(),
			Currency:    sec.Currency(),
			Quantity:    position,
			Price:       s.Price(ticker),
			MarketValue: s.Convert(s.MarketValue(ticker)),
		})
	}

	for currency := range s.Currencies() {
		balance := s.Cash(currency)
		if balance.IsZero() {
			continue
		}
		report.Cash = append(report.Cash, CashHolding{
			Currency: currency,
			Balance:  balance,
			Value:    s.Convert(balance),
		})
	}

	report.TotalMarket = s.TotalMarket()
	report.TotalCash = s.TotalCash()
	report.TotalValue = s.TotalPortfolio()
	return report
}
