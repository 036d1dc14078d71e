// Package main is the entry point for the covgate CLI.
package main

import (
	"github.com/covgate/covgate/cmd"
	"github.com/covgate/covgate/internal/contract"
	"github.com/covgate/covgate/internal/history"
)

func main() {
	defer history.CloseHistory()

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
