// Package main is the entry point for the poolplane CLI.
// The CLI is the developer terminal tool for interacting with the poolplane API.
package main

import (
	"os"

	"poolplane/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
