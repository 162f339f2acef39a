// SPDX-License-Identifier: MIT

// Package main provides the entry point for the timewarp CLI.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/timewarp/cmd/timewarp/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
