// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"time"

	"github.com/covgate/covgate/internal/contract"
	"github.com/covgate/covgate/schema"
)

// PrintVerdict outputs the gate verdict using the configured output format.
func PrintVerdict(v *schema.Verdict, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printVerdictJSON(v, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printComponentsCSV(v, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable gate summary
		if err := printVerdictText(v, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// PrintComponents outputs the per-component table using the configured
// output format, without the gate framing.
func PrintComponents(v *schema.Verdict, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printVerdictJSON(v, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printComponentsCSV(v, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printComponentsTable(v, cfg); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
		fmt.Printf("Evaluated %d files across %d components in %v using %d workers.\n",
			v.RecordCount, len(v.Components), duration, cfg.Workers)
	}
	return nil
}

// PrintFiles outputs per-file coverage records using the configured output
// format.
func PrintFiles(files []schema.FileCoverage, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printFilesJSON(files, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printFilesCSV(files, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printFilesTable(files, cfg); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
		fmt.Printf("Showing %d files with lowest coverage (in %v).\n", len(files), duration)
	}
	return nil
}
