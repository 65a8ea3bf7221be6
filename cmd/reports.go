package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio"
	"folio/date"
	"folio/renderer"
)

// --- Holding Command ---

type holdingCmd struct {
	date    string
	account string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "positions and cash balances on a given day" }
func (*holdingCmd) Usage() string {
	return `pfd holding [-d <date>] [-a <account>]

  Displays every open position with its market value and every non-zero cash
  balance, converted to the reporting currency.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Report date (YYYY-MM-DD)")
	f.StringVar(&c.account, "a", "", "Restrict the report to one account")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	j, err := journal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HoldingMarkdown(folio.NewHoldingReport(j, day, c.account)))
	return subcommands.ExitSuccess
}

// --- Gains Command ---

type gainsCmd struct {
	period  string
	start   string
	end     string
	method  string
	account string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized and unrealized gain analysis" }
func (*gainsCmd) Usage() string {
	return `pfd gains [-period <period>] [-s <date>] [-d <date>] [-method <method>] [-a <account>]

  Calculates and displays realized and unrealized gains for each security
  over the reporting period.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "month", "Predefined period (day, week, month, quarter, year)")
	f.StringVar(&c.start, "s", "", "Start date of a custom reporting period, overrides -period")
	f.StringVar(&c.end, "d", date.Today().String(), "End date of the reporting period")
	f.StringVar(&c.method, "method", folio.FIFO.String(), "Cost basis method (fifo, average)")
	f.StringVar(&c.account, "a", "", "Restrict the report to one account")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, status := reportRange(c.period, c.start, c.end)
	if status != subcommands.ExitSuccess {
		return status
	}
	method, err := folio.ParseCostBasisMethod(c.method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing cost basis method: %v\n", err)
		return subcommands.ExitUsageError
	}
	j, err := journal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.GainsMarkdown(folio.NewGainsReport(j, period, method, c.account)))
	return subcommands.ExitSuccess
}

// --- Summary Command ---

type summaryCmd struct {
	date    string
	account string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "portfolio value and performance over standard periods" }
func (*summaryCmd) Usage() string {
	return `pfd summary [-d <date>] [-a <account>]

  Displays the total portfolio value and its performance over the day, week,
  month, quarter, year and since inception.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Report date (YYYY-MM-DD)")
	f.StringVar(&c.account, "a", "", "Restrict the report to one account")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	j, err := journal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(folio.NewSummaryReport(j, day, c.account)))
	return subcommands.ExitSuccess
}

// reportRange resolves the -period/-s/-d flag triple into a range.
func reportRange(period, start, end string) (folio.Range, subcommands.ExitStatus) {
	endDate, err := date.Parse(end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return folio.Range{}, subcommands.ExitUsageError
	}
	if start != "" {
		startDate, err := date.Parse(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return folio.Range{}, subcommands.ExitUsageError
		}
		return folio.Range{From: startDate, To: endDate}, subcommands.ExitSuccess
	}
	p, err := date.ParsePeriod(period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return folio.Range{}, subcommands.ExitUsageError
	}
	return date.NewRange(endDate, p), subcommands.ExitSuccess
}
