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

// --- Price Command ---

type priceCmd struct {
	date     string
	security string
	price    float64
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "record the observed price of a security" }
func (*priceCmd) Usage() string {
	return `pfd price -s <security> -p <price> [-d <date>]

  Records the price of one security on a day, in the security's currency.
  When the security is a currency pair its price doubles as the exchange
  rate used to convert reports.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Observation date (YYYY-MM-DD)")
	f.StringVar(&c.security, "s", "", "Security ticker")
	f.Float64Var(&c.price, "p", 0, "Price of one share or unit")
}

func (c *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return handleTransaction(folio.NewUpdatePrice(day, c.security, folio.M(c.price, "")))
}

// --- Split Command ---

type splitCmd struct {
	date     string
	security string
	num      int64
	den      int64
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "record a stock split or reverse split" }
func (*splitCmd) Usage() string {
	return `pfd split -s <security> -num <n> -den <n> [-d <date>]

  Records a stock split: each -den existing shares become -num shares.
  A 2-for-1 split is -num 2 -den 1, a reverse split has -num < -den.
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Split date (YYYY-MM-DD)")
	f.StringVar(&c.security, "s", "", "Security ticker")
	f.Int64Var(&c.num, "num", 0, "Shares after the split, per -den shares before")
	f.Int64Var(&c.den, "den", 1, "Shares before the split")
}

func (c *splitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || c.num <= 0 || c.den <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return handleTransaction(folio.NewSplit(day, c.security, c.num, c.den))
}
