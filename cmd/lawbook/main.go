// Command lawbook maintains a local catalog of mathematical laws.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/lawbook/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
