// Package main is the entry point for the cloudguide CLI.
package main

import (
	"fmt"
	"os"

	"cloudguide/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
