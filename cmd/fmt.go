package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"folio"
)

// printMarkdown renders a markdown report on the terminal. When the
// renderer fails (dumb terminal, pipe) the raw markdown is still
// perfectly readable, so print that instead.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `pfd fmt

  Validates and formats the ledger file. This command reads all transactions,
  sorts them by date, and writes them back in a canonical JSONL format.
`
}

func (*fmtCmd) SetFlags(_ *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	if err := folio.SaveLedger(*ledgerFile, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatted %d transactions in %s\n", ledger.Len(), *ledgerFile)
	return subcommands.ExitSuccess
}
