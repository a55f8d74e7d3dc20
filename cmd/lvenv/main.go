// Package main is the entry point for the lvenv CLI.
//
// lvenv creates a Python virtual environment and installs a logging
// sitecustomize.py into it. All functionality lives in internal/cli.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release build. During development they default to "dev",
// "none", and "unknown".
package main

import (
	"github.com/shinji-kodama/lvenv/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
