// Command ledgerd runs a single leader or validator node.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var app *cli.App

func init() {
	app = &cli.App{
		Name:    "ledgerd",
		Usage:   "run a ledger leader or validator node",
		Version: "0.1.0",
	}
	app.Commands = []*cli.Command{
		commandLeader,
		commandValidator,
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
