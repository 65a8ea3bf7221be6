package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio/server"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the dashboard backend" }
func (*serveCmd) Usage() string {
	return `pfd serve [-addr <address>]

  Serves the dashboard JSON API over the ledger, with periodic price
  refresh and websocket push. Configuration comes from the environment
  and an optional .env file, see the PFD_* variables.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, overrides PFD_ADDR")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := server.LoadConfig()
	cfg.LedgerPath = *ledgerFile
	if c.addr != "" {
		cfg.Addr = c.addr
	}

	srv, err := server.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := srv.Run(ctx, providers()...); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
