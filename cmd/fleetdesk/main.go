package main

import (
	"os"

	"github.com/example/fleetdesk/internal/cli"
	"github.com/example/fleetdesk/internal/wire"
)

func main() {
	rootCmd := cli.NewRootCmd()

	err := rootCmd.Execute()
	wire.Close()
	if err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}
