// ABOUTME: Entry point for voltride CLI
// ABOUTME: Terminal client for the Voltride EV rental platform

package main

import (
	"fmt"
	"os"

	"github.com/voltride/voltride-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
