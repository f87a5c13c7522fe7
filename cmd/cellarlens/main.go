// Package main provides the entry point for the cellarlens CLI tool.
package main

import "github.com/cellarlens/cellarlens/cmd/cellarlens/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
