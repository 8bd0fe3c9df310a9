// Package main is the entry point for the rowfold CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rowfold/rowfold/cmd/rowfold/commands"
)

var (
	// Version information (set by build)
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := commands.Execute(Version, Commit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
