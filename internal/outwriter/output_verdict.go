package outwriter

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/covgate/covgate/internal/contract"
	"github.com/covgate/covgate/schema"
)

// maxSkippedToShow bounds the skipped-entry listing in text output; the
// full list is always present in JSON output.
const maxSkippedToShow = 5

// printVerdictText prints the verdict in a concise format suitable for CI logs.
func printVerdictText(v *schema.Verdict, cfg *contract.Config, duration time.Duration) error {
	printVerdictHeader(v, cfg, duration)

	if err := printComponentsTable(v, cfg); err != nil {
		return err
	}

	printOverallLine(v, cfg)

	if v.Passed() {
		printGateSuccess(cfg)
	} else {
		printGateFailure(v, cfg)
	}

	printSkippedEntries(v.SkippedEntries)
	return nil
}

// printVerdictHeader prints the common header information for gate results.
func printVerdictHeader(v *schema.Verdict, cfg *contract.Config, duration time.Duration) {
	fmt.Println("Coverage Gate Results:")

	// Define labels and values for dynamic padding
	labels := []string{"Report:", "Format:", "Thresholds:"}
	values := []any{
		cfg.ReportPath,
		cfg.Format,
		fmt.Sprintf("critical=%.1f, standard=%.1f, experimental=%.1f, overall-min=%.1f",
			cfg.Policy.LineThreshold(schema.CriticalTier),
			cfg.Policy.LineThreshold(schema.StandardTier),
			cfg.Policy.LineThreshold(schema.ExperimentalTier),
			cfg.Policy.OverallMin),
	}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	// Print each label-value pair with consistent padding
	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()

	fmt.Printf("Evaluated %d files across %d components in %v\n\n", v.RecordCount, len(v.Components), duration)
}

// printOverallLine prints the project-wide aggregate with its floor. The
// overall check is reported independently from per-component failures.
func printOverallLine(v *schema.Verdict, cfg *contract.Config) {
	status := schema.PassStatus
	if v.OverallBelowMin {
		status = schema.FailStatus
	}
	statusStr := string(status)
	if cfg.UseColors {
		statusStr = contract.GetColorStatus(status)
	}
	fmt.Printf("Overall: %.*f%% (%d/%d lines), floor %.1f%% [%s]\n",
		cfg.Precision, v.OverallPercent, v.OverallLinesCov, v.OverallLinesValid, v.OverallMin, statusStr)
}

// printGateSuccess prints the success case output.
func printGateSuccess(cfg *contract.Config) {
	if cfg.UseEmojis {
		fmt.Printf("\n✅ All components passed their coverage tiers\n")
	} else {
		fmt.Printf("\nAll components passed their coverage tiers\n")
	}
}

// printGateFailure prints the failure case output with the worst offenders
// first, matching the verdict's recommendation order.
func printGateFailure(v *schema.Verdict, cfg *contract.Config) {
	if cfg.UseEmojis {
		fmt.Printf("\n❌ Coverage gate failed: %d component(s) below their tier bar\n", v.FailedComponents)
	} else {
		fmt.Printf("\nCoverage gate failed: %d component(s) below their tier bar\n", v.FailedComponents)
	}
	if v.OverallBelowMin {
		fmt.Printf("Aggregate coverage %.1f%% dropped below the %.1f%% floor\n", v.OverallPercent, v.OverallMin)
	}
	if len(v.Recommendations) > 0 {
		fmt.Printf("Raise coverage first in: %s\n", strings.Join(v.Recommendations, ", "))
	}
}

// printSkippedEntries reports rejected report entries. No rejection is ever
// silently dropped; beyond the display cap the count is still shown.
func printSkippedEntries(skipped []schema.SkippedEntry) {
	if len(skipped) == 0 {
		return
	}

	fmt.Fprintf(os.Stderr, "\nSkipped %d malformed report entries:\n", len(skipped))
	shown := 0
	for _, s := range skipped {
		if shown >= maxSkippedToShow {
			fmt.Fprintf(os.Stderr, "  ... and %d more\n", len(skipped)-shown)
			break
		}
		fmt.Fprintf(os.Stderr, "  - %s: %s\n", s.Path, s.Reason)
		shown++
	}
}
