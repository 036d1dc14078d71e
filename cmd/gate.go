package cmd

import (
	"github.com/covgate/covgate/core"
	"github.com/covgate/covgate/internal/contract"
	"github.com/covgate/covgate/internal/history"
	"github.com/spf13/cobra"
)

// gateCmd focused on CI/CD release gating.
var gateCmd = &cobra.Command{
	Use:   "gate [report-path]",
	Short: "Enforce coverage thresholds for CI/CD pipelines (fails build on violations)",
	Long: `Evaluate a coverage report against per-component thresholds and fail the build on violations.

Files are classified into components by pattern rules, coverage is aggregated
from raw line counts, and each component is held to its tier's threshold.
Exits with a non-zero code when any component or the overall floor fails.

Exit codes:
  0 - all components and the overall floor passed
  1 - one or more thresholds failed
  2 - the report or configuration could not be processed

Use cases:
- Pull request gates - block merges that drop component coverage
- Release validation - hold critical components to a higher bar
- Quality enforcement - keep experimental code from dragging the build down

Examples:
  # Gate on a Cobertura report with rules from .covgate.yaml
  covgate gate coverage.xml

  # Gate on a JSON report
  covgate gate --format json coverage.json

  # Record the verdict in a local SQLite history
  covgate gate --history-backend sqlite coverage.xml`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Validation is done in ExecuteCoverageGate
		if err := core.ExecuteCoverageGate(cfg, history.Manager.Store()); err != nil {
			contract.LogFatal("Coverage gate failed", err)
		}
	},
}
