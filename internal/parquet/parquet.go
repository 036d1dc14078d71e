// Package parquet provides data structures and functions for exporting verdict
// history data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/covgate/covgate/schema"
	"github.com/parquet-go/parquet-go"
)

// GateRun represents a single coverage gate run with metadata.
// This struct maps to the covgate_runs database table.
type GateRun struct {
	// RunID is the unique identifier for this gate run
	RunID int64 `parquet:"run_id,snappy"`

	// StartedAt is when the evaluation began (stored as TIMESTAMP with nanosecond precision)
	StartedAt time.Time `parquet:"started_at,snappy"`

	// ReportPath is the coverage report the run evaluated
	ReportPath string `parquet:"report_path,snappy"`

	// OverallPercent is the aggregate line coverage across all components
	OverallPercent float64 `parquet:"overall_percent,snappy"`

	// OverallStatus is "pass" or "fail"
	OverallStatus string `parquet:"overall_status,snappy"`

	// RecordCount is the number of file records evaluated
	RecordCount int32 `parquet:"record_count,snappy"`

	// SkippedCount is the number of malformed entries skipped during parsing
	SkippedCount int32 `parquet:"skipped_count,snappy"`

	// FailedComponents is the number of components below their thresholds
	FailedComponents int32 `parquet:"failed_components,snappy"`

	// DurationMs is the wall-clock duration of the run in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`
}

// ComponentResult represents the outcome for a single component in a gate run.
// This struct maps to the covgate_component_results database table.
type ComponentResult struct {
	// RunID references the parent gate run
	RunID int64 `parquet:"run_id,snappy"`

	// Component is the component name
	Component string `parquet:"component,snappy"`

	// Tier is the component's policy tier
	Tier string `parquet:"tier,snappy"`

	// Percent is the component's aggregate line coverage
	Percent float64 `parquet:"percent,snappy"`

	// Threshold is the minimum coverage the tier requires
	Threshold float64 `parquet:"threshold,snappy"`

	// Status is "pass" or "fail"
	Status string `parquet:"status,snappy"`

	// LinesCovered is the number of covered lines in the component
	LinesCovered int64 `parquet:"lines_covered,snappy"`

	// LinesValid is the number of coverable lines in the component
	LinesValid int64 `parquet:"lines_valid,snappy"`
}

// WriteGateRunsParquet writes a slice of GateRun structs to a Parquet file.
func WriteGateRunsParquet(data []GateRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the GateRun struct tags
	writer := parquet.NewGenericWriter[GateRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteComponentResultsParquet writes a slice of ComponentResult structs to a Parquet file.
func WriteComponentResultsParquet(data []ComponentResult, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ComponentResult struct tags
	writer := parquet.NewGenericWriter[ComponentResult](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to GateRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []GateRun {
	result := make([]GateRun, len(records))
	for i, record := range records {
		result[i] = GateRun{
			RunID:            record.ID,
			StartedAt:        record.StartedAt,
			ReportPath:       record.ReportPath,
			OverallPercent:   record.OverallPercent,
			OverallStatus:    string(record.OverallStatus),
			RecordCount:      int32(record.RecordCount),
			SkippedCount:     int32(record.SkippedCount),
			FailedComponents: int32(record.FailedComponents),
			DurationMs:       record.DurationMS,
		}
	}
	return result
}

// ConvertComponentRunRecords converts schema.ComponentRunRecord to ComponentResult for Parquet export.
func ConvertComponentRunRecords(records []schema.ComponentRunRecord) []ComponentResult {
	result := make([]ComponentResult, len(records))
	for i, record := range records {
		result[i] = ComponentResult{
			RunID:        record.RunID,
			Component:    record.Name,
			Tier:         string(record.Tier),
			Percent:      record.Percent,
			Threshold:    record.Threshold,
			Status:       string(record.Status),
			LinesCovered: int64(record.LinesCovered),
			LinesValid:   int64(record.LinesValid),
		}
	}
	return result
}
