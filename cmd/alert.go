package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"folio"
	"folio/renderer"
)

type alertCmd struct {
	ticker    string
	op        string
	threshold float64
	id        int
	memo      string
}

func (*alertCmd) Name() string     { return "alert" }
func (*alertCmd) Synopsis() string { return "manage price alerts" }
func (*alertCmd) Usage() string {
	return `pfd alert list
pfd alert add -s <security> -op <above|below> -t <threshold> [-m <memo>]
pfd alert rm -id <id>
pfd alert rearm -id <id>

  Manages price alerts. An alert fires once when the security's price
  crosses its threshold during a price update, and stays quiet until it is
  rearmed.
`
}

func (c *alertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "s", "", "Security ticker to watch")
	f.StringVar(&c.op, "op", "above", "Fire when the price is above or below the threshold")
	f.Float64Var(&c.threshold, "t", 0, "Price threshold, in the security's currency")
	f.IntVar(&c.id, "id", 0, "Alert identifier, for rm and rearm")
	f.StringVar(&c.memo, "m", "", "An optional note shown when the alert fires")
}

func (c *alertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := folio.AlertsPath(*ledgerFile)
	alerts, err := folio.LoadAlerts(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading alerts %q: %v\n", path, err)
		return subcommands.ExitFailure
	}

	action := "list"
	if f.NArg() > 0 {
		action = f.Arg(0)
	}

	switch action {
	case "list":
		printMarkdown(renderer.AlertsMarkdown(alerts))
		return subcommands.ExitSuccess

	case "add":
		if c.ticker == "" || c.threshold <= 0 {
			f.Usage()
			return subcommands.ExitUsageError
		}
		op, err := folio.ParseAlertOp(c.op)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		ledger, err := decodeLedger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
			return subcommands.ExitFailure
		}
		if ledger.Security(c.ticker) == nil {
			fmt.Fprintf(os.Stderr, "Error: security %q is not declared in the ledger.\n", c.ticker)
			return subcommands.ExitFailure
		}
		a := alerts.Add(c.ticker, op, decimal.NewFromFloat(c.threshold), c.memo)
		fmt.Printf("Added alert %s\n", a)

	case "rm":
		if err := alerts.Remove(c.id); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Removed alert #%d\n", c.id)

	case "rearm":
		if err := alerts.Rearm(c.id); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Rearmed alert #%d\n", c.id)

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown alert action %q.\n", action)
		return subcommands.ExitUsageError
	}

	if err := folio.SaveAlerts(path, alerts); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving alerts %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
