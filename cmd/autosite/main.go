package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/autosite/cmd/autosite/commands"
	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("autosite"),
		kong.Description("Build a static HTML site from Markdown content."),
		kong.UsageOnError(),
	)

	err := parser.Run(&commands.Global{}, cli)
	if err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		os.Exit(adapter.HandleError(err))
	}
}
