// Package main is the entry point for the tickreg CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/tickreg/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Commands that already rendered their error (text or JSON) return an
		// ExitError; only report the rest here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
