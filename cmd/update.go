package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio"
	"folio/quote"
)

// providers assembles the configured quote providers, each wrapped with
// retries. Binance needs API keys from the environment.
func providers() []quote.Provider {
	list := []quote.Provider{quote.NewTradegate()}
	if key := os.Getenv("BINANCE_API_KEY"); key != "" {
		list = append(list, quote.NewBinance(key, os.Getenv("BINANCE_SECRET_KEY")))
	}
	for i, p := range list {
		list[i] = quote.WithRetry(p, quote.DefaultRetry)
	}
	return list
}

// --- Update Command ---

type updateCmd struct{}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "fetch the latest prices for all declared securities"
}
func (*updateCmd) Usage() string {
	return `pfd update

  Fetches the latest prices from the configured quote providers and records
  them in the ledger. Triggered alerts are reported and disarmed.
`
}

func (*updateCmd) SetFlags(_ *flag.FlagSet) {}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	recorded, err := quote.UpdatePrices(ctx, ledger, providers()...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: some providers failed:", err)
	}
	if len(recorded) == 0 {
		fmt.Println("No prices updated.")
		return subcommands.ExitSuccess
	}

	if err := folio.SaveLedger(*ledgerFile, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %d prices in %s\n", len(recorded), *ledgerFile)

	return evaluateAlerts(ledger)
}

// evaluateAlerts checks the alert set against today's prices and reports
// the ones that fired.
func evaluateAlerts(ledger *folio.Ledger) subcommands.ExitStatus {
	path := folio.AlertsPath(*ledgerFile)
	alerts, err := folio.LoadAlerts(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading alerts %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	if alerts.Len() == 0 {
		return subcommands.ExitSuccess
	}

	j, err := folio.NewJournal(ledger, ledger.Currency())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building journal: %v\n", err)
		return subcommands.ExitFailure
	}
	fired := alerts.Evaluate(folio.NewSnapshot(j, folio.Today()))
	for _, a := range fired {
		fmt.Printf("Alert fired: %s\n", a)
	}
	if len(fired) == 0 {
		return subcommands.ExitSuccess
	}

	if err := folio.SaveAlerts(path, alerts); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving alerts %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- Import Trades Command ---

type importTradesCmd struct {
	symbol   string
	currency string
	account  string
}

func (*importTradesCmd) Name() string { return "import-trades" }
func (*importTradesCmd) Synopsis() string {
	return "import past trades for one symbol from the Binance exchange"
}
func (*importTradesCmd) Usage() string {
	return `pfd import-trades -s <symbol> -c <quote-currency> [-a <account>]

  Fetches the trade history for one symbol from Binance and appends the
  trades missing from the ledger. Requires BINANCE_API_KEY and
  BINANCE_SECRET_KEY in the environment.
`
}

func (c *importTradesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Exchange symbol, like 'BTCEUR'")
	f.StringVar(&c.currency, "c", "", "Quote currency of the symbol, like 'EUR'")
	f.StringVar(&c.account, "a", "binance", "Account to book the trades on")
}

func (c *importTradesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.currency == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	key := os.Getenv("BINANCE_API_KEY")
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: BINANCE_API_KEY is not set.")
		return subcommands.ExitFailure
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	b := quote.NewBinance(key, os.Getenv("BINANCE_SECRET_KEY"))
	trades, err := b.ImportTrades(ctx, c.symbol, c.currency, c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error fetching trades:", err)
		return subcommands.ExitFailure
	}

	before := ledger.Len()
	ledger.AppendOrUpdate(trades...)
	if ledger.Len() == before {
		fmt.Println("No new trades.")
		return subcommands.ExitSuccess
	}

	if err := folio.SaveLedger(*ledgerFile, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d new trades into %s\n", ledger.Len()-before, *ledgerFile)
	return subcommands.ExitSuccess
}
