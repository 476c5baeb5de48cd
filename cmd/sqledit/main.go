// Package main is the entry point for the sqledit command.
//
// sqledit drives the editing core from the command line: it highlights
// SQL files, finds matching brackets, lists key bindings and replays
// key sequences against a document.
package main

import (
	"fmt"
	"os"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
