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

// --- Deposit Command ---

type depositCmd struct {
	date     string
	account  string
	amount   float64
	currency string
	memo     string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record external cash added to an account" }
func (*depositCmd) Usage() string {
	return `pfd deposit -amount <amount> -c <currency> [-a <account>] [-d <date>] [-m <memo>]

  Records a cash deposit from outside the portfolio, like a salary transfer
  to a brokerage account.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.account, "a", "", "Account the cash lands in")
	f.Float64Var(&c.amount, "amount", 0, "Amount deposited")
	f.StringVar(&c.currency, "c", "", "Currency of the deposit (ISO 4217 code)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 || c.currency == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return handleTransaction(folio.NewDeposit(day, c.memo, c.account, folio.M(c.amount, c.currency)))
}

// --- Withdraw Command ---

type withdrawCmd struct {
	date     string
	account  string
	amount   float64
	currency string
	memo     string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record external cash removed from an account" }
func (*withdrawCmd) Usage() string {
	return `pfd withdraw -c <currency> [-amount <amount>] [-a <account>] [-d <date>] [-m <memo>]

  Records a cash withdrawal out of the portfolio. If -amount is missing the
  whole balance in that currency is withdrawn.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.account, "a", "", "Account the cash leaves")
	f.Float64Var(&c.amount, "amount", 0, "Amount withdrawn, if missing the whole balance is withdrawn")
	f.StringVar(&c.currency, "c", "", "Currency of the withdrawal (ISO 4217 code)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount < 0 || c.currency == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return handleTransaction(folio.NewWithdraw(day, c.memo, c.account, folio.M(c.amount, c.currency)))
}

// --- Convert Command ---

type convertCmd struct {
	date         string
	account      string
	fromAmount   float64
	fromCurrency string
	toAmount     float64
	toCurrency   string
	memo         string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "exchange cash from one currency to another" }
func (*convertCmd) Usage() string {
	return `pfd convert -from <currency> -to <currency> -to-amount <amount> [-from-amount <amount>] [-a <account>] [-d <date>] [-m <memo>]

  Records an in-account currency exchange. If -from-amount is missing the
  whole balance in the source currency is converted.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.account, "a", "", "Account the exchange happens in")
	f.Float64Var(&c.fromAmount, "from-amount", 0, "Amount sold, if missing the whole balance is converted")
	f.StringVar(&c.fromCurrency, "from", "", "Currency sold (ISO 4217 code)")
	f.Float64Var(&c.toAmount, "to-amount", 0, "Amount bought")
	f.StringVar(&c.toCurrency, "to", "", "Currency bought (ISO 4217 code)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.fromCurrency == "" || c.toCurrency == "" || c.toAmount <= 0 || c.fromAmount < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	from := folio.M(c.fromAmount, c.fromCurrency)
	to := folio.M(c.toAmount, c.toCurrency)
	return handleTransaction(folio.NewConvert(day, c.memo, c.account, from, to))
}
