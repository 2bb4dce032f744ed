package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "polyneurons-validator",
		Usage: "PolyNeurons proof-of-reasoning validator plugin",
		Commands: []*cli.Command{
			RunCommand(),
			ProveCommand(),
			VerifyPeerCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
