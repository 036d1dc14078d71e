package cmd

import (
	"github.com/covgate/covgate/core"
	"github.com/covgate/covgate/internal/contract"
	"github.com/spf13/cobra"
)

// componentsCmd shows per-component coverage without failing the build.
var componentsCmd = &cobra.Command{
	Use:   "components [report-path]",
	Short: "Show per-component coverage without gating",
	Long: `Aggregate a coverage report into components and print the result table.

Unlike 'gate', this command always exits 0 when the report parses, so it is
safe to run in pipelines that only want visibility into component coverage.

Examples:
  # Show component coverage for a Cobertura report
  covgate components coverage.xml

  # Emit machine-readable output for dashboards
  covgate components --output json coverage.xml`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteComponents(cfg); err != nil {
			contract.LogFatal("Component analysis failed", err)
		}
	},
}
