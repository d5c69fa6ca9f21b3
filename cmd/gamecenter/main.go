package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version   kong.VersionFlag `short:"v" help:"Show version"`
	Menu      MenuCmd          `cmd:"" default:"1" help:"Pick a game from the menu (default)"`
	Blackjack BlackjackCmd     `cmd:"" help:"Play Blackjack against the dealer"`
	OldMaid   OldMaidCmd       `cmd:"old-maid" help:"Play Old Maid against the computer"`
	War       WarCmd           `cmd:"" help:"Play War"`
	Simulate  SimulateCmd      `cmd:"" help:"Play many bot games and report statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gamecenter"),
		kong.Description("Console card games: Blackjack, Old Maid and War"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
