package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio"
)

// --- Export Command ---

type exportCmd struct {
	output string
	gains  bool
	period string
	end    string
	method string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger or the gains report as CSV" }
func (*exportCmd) Usage() string {
	return `pfd export [-o <file>] [-gains [-period <period>] [-d <date>] [-method <method>]]

  Writes every transaction as one CSV row, for spreadsheets or another tool.
  With -gains, writes the capital gains report for the period instead.
  Without -o the CSV goes to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, stdout if missing")
	f.BoolVar(&c.gains, "gains", false, "Export the gains report instead of the transactions")
	f.StringVar(&c.period, "period", "year", "Gains period (day, week, month, quarter, year)")
	f.StringVar(&c.end, "d", folio.Today().String(), "End date of the gains period")
	f.StringVar(&c.method, "method", folio.FIFO.String(), "Cost basis method (fifo, average)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out := os.Stdout
	if c.output != "" {
		var err error
		out, err = os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}

	if c.gains {
		return c.exportGains(out)
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	if err := folio.ExportCSV(out, ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error exporting:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *exportCmd) exportGains(out *os.File) subcommands.ExitStatus {
	period, status := reportRange(c.period, "", c.end)
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

	if err := folio.ExportGainsCSV(out, folio.NewGainsReport(j, period, method, "")); err != nil {
		fmt.Fprintln(os.Stderr, "Error exporting:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- Import Command ---

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a CSV file" }
func (*importCmd) Usage() string {
	return `pfd import -i <file>

  Reads transactions from a CSV file in the export format and appends the
  valid ones to the ledger. Invalid rows are skipped with a warning.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "CSV file to import")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	in, err := os.Open(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.input, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	imported, err := folio.ImportCSV(in, ledger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error importing:", err)
		return subcommands.ExitFailure
	}

	if err := folio.SaveLedger(*ledgerFile, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d transactions into %s\n", len(imported), *ledgerFile)
	return subcommands.ExitSuccess
}
