package folio

import "github.com/shopspring/decimal"

// GainsReport is the capital gains breakdown over a period: realized
// gains locked in during the period, and the unrealized standing at its
// end, per security and in total.
type GainsReport struct {
	Range             Range
	Method            CostBasisMethod
	Account           string // "" for the whole portfolio
	ReportingCurrency string
	Securities        []SecurityGains
	Realized          Money
	Unrealized        Money
	Total             Money // portfolio value change net of external deposits and withdrawals
}

// SecurityGains is one line of the gains report.
type SecurityGains struct {
	Security   string
	Quantity   Quantity
	Realized   Money // in the security's currency
	Unrealized Money // in the security's currency
}

// NewGainsReport computes realized and unrealized gains over a period
// with the given cost basis method. Securities with nothing to report
// are left out.
func NewGainsReport(j *Journal, period Range, method CostBasisMethod, account string) *GainsReport {
	end := NewAccountSnapshot(j, period.To, account)
	start := NewAccountSnapshot(j, period.From.Add(-1), account)

	report := &GainsReport{
		Range:             period,
		Method:            method,
		Account:           account,
		ReportingCurrency: j.Currency(),
	}

	totalRealized := M(decimal.Zero, j.Currency())
	for ticker := range end.Securities() {
		realized := end.RealizedGains(ticker, method).Sub(start.RealizedGains(ticker, method))
		unrealized := end.UnrealizedGains(ticker, method)
		position := end.Position(ticker)

		totalRealized = totalRealized.Add(end.Convert(realized))

		if realized.IsZero() && unrealized.IsZero() && position.IsZero() {
			continue
		}
		report.Securities = append(report.Securities, SecurityGains{
			Security:   ticker,
			Quantity:   position,
			Realized:   realized,
			Unrealized: unrealized,
		})
	}

	report.Realized = totalRealized
	report.Unrealized = end.TotalUnrealizedGains(method)

	// Deposits and withdrawals move the portfolio value without being
	// gains. Strip the period's external flow so Total measures what the
	// holdings actually earned.
	flow := end.TotalCashFlow().Sub(start.TotalCashFlow())
	report.Total = end.TotalPortfolio().Sub(start.TotalPortfolio()).Sub(flow)
	return report
}
