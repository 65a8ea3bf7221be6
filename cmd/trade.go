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

// --- Buy Command ---

type buyCmd struct {
	date     string
	security string
	account  string
	quantity float64
	amount   float64
	fee      float64
	memo     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `pfd buy -s <security> -q <quantity> -amount <total> [-fee <fee>] [-a <account>] [-d <date>] [-m <memo>]

  Purchases shares of a security. The total cost, fee included, is debited
  from the account's cash balance in the security's currency.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.security, "s", "", "Security ticker")
	f.StringVar(&c.account, "a", "", "Account the trade settles in")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.amount, "amount", 0, "Total paid for the shares, fee excluded")
	f.Float64Var(&c.fee, "fee", 0, "Broker commission, in the security's currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || c.quantity <= 0 || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	var fee folio.Money
	if c.fee != 0 {
		fee = folio.M(c.fee, "")
	}
	tx := folio.NewBuy(day, c.memo, c.account, c.security, folio.Q(c.quantity), folio.M(c.amount, ""), fee)
	return handleTransaction(tx)
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	security string
	account  string
	quantity float64
	amount   float64
	fee      float64
	memo     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `pfd sell -s <security> -amount <total> [-q <quantity>] [-fee <fee>] [-a <account>] [-d <date>] [-m <memo>]

  Sells shares of a security. The proceeds, fee deducted, are credited to the
  account's cash balance. If -q is missing all shares are sold.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.security, "s", "", "Security ticker")
	f.StringVar(&c.account, "a", "", "Account the trade settles in")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares, if missing all shares are sold")
	f.Float64Var(&c.amount, "amount", 0, "Total proceeds of the sale, fee excluded")
	f.Float64Var(&c.fee, "fee", 0, "Broker commission, in the security's currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || c.quantity < 0 || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	var fee folio.Money
	if c.fee != 0 {
		fee = folio.M(c.fee, "")
	}
	tx := folio.NewSell(day, c.memo, c.account, c.security, folio.Q(c.quantity), folio.M(c.amount, ""), fee)
	return handleTransaction(tx)
}

// --- Dividend Command ---

type dividendCmd struct {
	date     string
	security string
	account  string
	amount   float64
	memo     string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a cash dividend received for a position" }
func (*dividendCmd) Usage() string {
	return `pfd dividend -s <security> -amount <total> [-a <account>] [-d <date>] [-m <memo>]

  Records a cash dividend. The amount is credited to the account's cash
  balance in the security's currency.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.security, "s", "", "Security ticker")
	f.StringVar(&c.account, "a", "", "Account the dividend is paid into")
	f.Float64Var(&c.amount, "amount", 0, "Total dividend received")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := folio.NewDividend(day, c.memo, c.account, c.security, folio.M(c.amount, ""))
	return handleTransaction(tx)
}
