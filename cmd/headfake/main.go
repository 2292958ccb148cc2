// Command headfake generates synthetic datasets from templates.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/headfake/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
