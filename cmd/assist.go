package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"folio/agent"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `pfd assist [initial prompt]

  Starts an interactive session with the AI assistant. The assistant can
  read the ledger and search the web for news about the held securities.
  Requires Gemini credentials in the environment.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst()
	accountant := agent.NewAccountant(journal)
	a := agent.New(os.Stdout, os.Stdin, analyst, accountant)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
