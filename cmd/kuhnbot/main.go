package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play hands against a bot in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Run a batch evaluation between two bots"`
	Serve    ServeCmd         `cmd:"" help:"Run the WebSocket parity server"`
	Contract ContractCmd      `cmd:"" help:"Write or check the shared contract artifact"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("kuhnbot"),
		kong.Description("Kuhn poker contract core: play, evaluate, and serve hands"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
