package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"folio/cmd"
)

func main() {
	cmd.Completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
