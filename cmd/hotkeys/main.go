// Package main is the entry point for the hotkeys binary.
package main

import (
	"os"

	"github.com/dshills/hotkeys/internal/cli"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
