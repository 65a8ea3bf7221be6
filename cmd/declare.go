package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio"
	"folio/date"
)

type declareCmd struct {
	ticker   string
	id       string
	currency string
	date     string
	memo     string
}

func (*declareCmd) Name() string     { return "declare" }
func (*declareCmd) Synopsis() string { return "declare a security for use within the ledger" }
func (*declareCmd) Usage() string {
	return `pfd declare -ticker <ticker> -id <security-id> -c <currency> [-d <date>] [-m <memo>]

  Declares a security, creating a mapping from a ledger-internal ticker to a
  globally unique security ID and its currency. This declaration is required
  before using the ticker in any transaction.

  The ID is either an ISIN.MIC pair (like 'US0378331005.XNAS'), a currency
  pair (like 'USDEUR'), or a free-form private name.
`
}

func (c *declareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ledger-internal ticker to define (e.g., 'AAPL')")
	f.StringVar(&c.id, "id", "", "Full, unique security ID (e.g., 'US0378331005.XNAS')")
	f.StringVar(&c.currency, "c", "", "The currency the security trades in (e.g., 'USD')")
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *declareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.id == "" || c.currency == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker, -id, and -c flags are all required.")
		return subcommands.ExitUsageError
	}

	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	id, err := folio.ParseID(c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing security ID: %v\n", err)
		return subcommands.ExitUsageError
	}
	return handleTransaction(folio.NewDeclare(day, c.memo, c.ticker, id, c.currency))
}
