package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/fragsync/cmd/fragsync/commands"
	"git.home.luguber.info/inful/fragsync/internal/foundation/errors"
	"git.home.luguber.info/inful/fragsync/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("fragsync"),
		kong.Description("Synchronize shared HTML fragments from a canonical page into the rest of a static site."),
		commands.Vars(version.String()),
		kong.UsageOnError(),
	)

	if err := ctx.Run(commands.NewGlobal(slog.Default(), os.Stdout)); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
