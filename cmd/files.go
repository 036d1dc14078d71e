package cmd

import (
	"github.com/covgate/covgate/core"
	"github.com/covgate/covgate/internal/contract"
	"github.com/spf13/cobra"
)

// filesCmd lists the files with the lowest coverage.
var filesCmd = &cobra.Command{
	Use:   "files [report-path]",
	Short: "List the least-covered files with their components",
	Long: `Rank individual files by line coverage, lowest first.

Each file is annotated with the component and tier it was classified into,
which makes it easy to see where a failing component's gap comes from.

Examples:
  # Show the 25 least-covered files
  covgate files coverage.xml

  # Narrow the list
  covgate files --limit 10 coverage.xml`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFiles(cfg); err != nil {
			contract.LogFatal("File analysis failed", err)
		}
	},
}
