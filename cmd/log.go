package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"folio"
	"folio/renderer"
)

// --- Log Command ---

type logCmd struct {
	period  string
	start   string
	end     string
	head    int
	tail    int
	account string
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list transactions in the ledger" }
func (*logCmd) Usage() string {
	return `pfd log [-period <period> | -s <start_date>] [-d <end_date>] [-head <n>] [-tail <n>] [-a <account>]

  Lists transactions from the ledger in chronological order, with options
  for filtering and limiting the output.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "Predefined period (day, week, month, quarter, year)")
	f.StringVar(&c.start, "s", "", "Start date of a custom range, overrides -period")
	f.StringVar(&c.end, "d", "", "End date of the range")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions")
	f.StringVar(&c.account, "a", "", "Show only transactions for one account")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	filters := []func(folio.Transaction) bool{}
	if c.account != "" {
		filters = append(filters, folio.ByAccount(c.account))
	}
	if c.period != "" || c.start != "" || c.end != "" {
		end := c.end
		if end == "" {
			end = folio.Today().String()
		}
		period, status := reportRange(orDefault(c.period, "year"), c.start, end)
		if status != subcommands.ExitSuccess {
			return status
		}
		filters = append(filters, folio.ByRange(period.From, period.To))
	}

	var transactions []folio.Transaction
	for _, tx := range ledger.Transactions(filters...) {
		transactions = append(transactions, tx)
	}

	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	printMarkdown(renderer.LogMarkdown("Transactions", transactions))
	return subcommands.ExitSuccess
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// --- Search Command ---

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search transactions by ticker, account or memo" }
func (*searchCmd) Usage() string {
	return `pfd search <query>

  Lists the transactions whose command, ticker, account or memo contains the
  query, case-insensitively, in chronological order.
`
}

func (*searchCmd) SetFlags(_ *flag.FlagSet) {}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	var transactions []folio.Transaction
	for _, tx := range ledger.Search(query) {
		transactions = append(transactions, tx)
	}

	printMarkdown(renderer.LogMarkdown(fmt.Sprintf("Search %q", query), transactions))
	return subcommands.ExitSuccess
}
