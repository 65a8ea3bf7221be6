// Package cmd implements the pfd CLI to manage an investment portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio"
)

// Register registers every subcommand on the commander. A main package
// calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "ledger")
	c.Register(&declareCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")

	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&dividendCmd{}, "transactions")
	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&convertCmd{}, "transactions")
	c.Register(&splitCmd{}, "transactions")
	c.Register(&priceCmd{}, "transactions")

	c.Register(&logCmd{}, "reports")
	c.Register(&holdingCmd{}, "reports")
	c.Register(&gainsCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&searchCmd{}, "reports")

	c.Register(&alertCmd{}, "alerts")

	c.Register(&updateCmd{}, "market data")
	c.Register(&importTradesCmd{}, "market data")

	c.Register(&exportCmd{}, "exchange")
	c.Register(&importCmd{}, "exchange")

	c.Register(&serveCmd{}, "dashboard")
	c.Register(&assistCmd{}, "dashboard")
}

// As a CLI application it has a very short lived lifecycle, so it is ok
// to use global variables.

var ledgerFile = flag.String("ledger", "portfolio.jsonl", "Path to the ledger file (JSONL format)")
var reportingCurrency = flag.String("currency", "", "Reporting currency, overrides the ledger's init currency")

// decodeLedger loads the application ledger. A missing file yields an
// empty ledger so that read-only commands work before the first init.
func decodeLedger() (*folio.Ledger, error) {
	return folio.LoadLedger(*ledgerFile)
}

// journal builds the journal for the application ledger. The reporting
// currency comes from the -currency flag, or the ledger's init.
func journal() (*folio.Journal, error) {
	ledger, err := decodeLedger()
	if err != nil {
		return nil, err
	}
	return folio.NewJournal(ledger, *reportingCurrency)
}

// handleTransaction validates a transaction against the ledger and
// appends it to the application ledger file.
func handleTransaction(tx folio.Transaction) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	tx, err = ledger.Validate(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := folio.AppendTransaction(*ledgerFile, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}
