package folio

import "folio/date"

// Performance holds the start and end value of the portfolio over a
// period, and the return net of external cash flows.
type Performance struct {
	StartValue Money
	EndValue   Money
	Return     Percent
}

// newPerformance computes the simple return between two snapshots,
// deducting the external cash moved in or out during the period so a
// deposit does not read as a gain.
func newPerformance(start, end *Snapshot) Performance {
	p := Performance{
		StartValue: start.TotalPortfolio(),
		EndValue:   end.TotalPortfolio(),
	}
	flow := end.TotalCashFlow().Sub(start.TotalCashFlow())
	gain := p.EndValue.Sub(p.StartValue).Sub(flow)
	if !p.StartValue.IsZero() {
		p.Return = Percent(gain.value.Div(p.StartValue.value).InexactFloat64())
	}
	return p
}

// SummaryReport is an at-a-glance overview of the portfolio on a date:
// its total value and the return over the usual calendar periods.
type SummaryReport struct {
	Date              Date
	Account           string // "" for the whole portfolio
	ReportingCurrency string
	TotalMarketValue  Money
	TotalCash         Money
	TotalValue        Money
	Daily             Performance
	WTD               Performance // week to date
	MTD               Performance // month to date
	QTD               Performance // quarter to date
	YTD               Performance // year to date
	Inception         Performance
}

// NewSummaryReport computes the summary on a date, optionally scoped to
// one account.
func NewSummaryReport(j *Journal, on Date, account string) *SummaryReport {
	at := func(d Date) *Snapshot { return NewAccountSnapshot(j, d, account) }
	end := at(on)

	report := &SummaryReport{
		Date:              on,
		Account:           account,
		ReportingCurrency: j.Currency(),
		TotalMarketValue:  end.TotalMarket(),
		TotalCash:         end.TotalCash(),
		TotalValue:        end.TotalPortfolio(),
	}

	report.Daily = newPerformance(at(on.Add(-1)), end)
	report.WTD = newPerformance(at(on.StartOf(date.Weekly).Add(-1)), end)
	report.MTD = newPerformance(at(on.StartOf(date.Monthly).Add(-1)), end)
	report.QTD = newPerformance(at(on.StartOf(date.Quarterly).Add(-1)), end)
	report.YTD = newPerformance(at(on.StartOf(date.Yearly).Add(-1)), end)

	inception := Performance{EndValue: end.TotalPortfolio()}
	flow := end.TotalCashFlow()
	if !flow.IsZero() {
		inception.Return = Percent(inception.EndValue.Sub(flow).value.Div(flow.value).InexactFloat64())
	}
	report.Inception = inception
	return report
}
