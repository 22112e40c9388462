package main

import (
	"context"
	"os"

	"github.com/luwae/permanent/internal/cli/command"
	"github.com/luwae/permanent/internal/infra/shutdown"
)

func main() {
	ctx, stop := shutdown.WithSignals(context.Background())
	defer stop()

	app := command.App()

	// exit codes carried by cli.Exit are applied inside RunContext
	if err := app.RunContext(ctx, os.Args); err != nil {
		stop()
		command.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
