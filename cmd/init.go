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

type initCmd struct {
	currency string
	date     string
	memo     string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "set the reporting currency of a new ledger" }
func (*initCmd) Usage() string {
	return `pfd init -c <currency> [-d <date>] [-m <memo>]

  Declares the reporting currency of the ledger. Must come before any
  other transaction. Without an init, reports default to EUR.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", folio.DefaultCurrency, "Reporting currency (ISO 4217 code)")
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return handleTransaction(folio.NewInit(day, c.memo, c.currency))
}
