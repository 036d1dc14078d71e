package history

import (
	"errors"
	"fmt"

	"github.com/covgate/covgate/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of verdict history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.Store()
	if store == nil {
		return errors.New("history tracking is disabled; set --history-backend to export")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no gate history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total gate runs: %d\n", status.TotalRuns)
	fmt.Printf("Total component records: %d\n", status.TableSizes[componentResultsTable])

	// Retrieve all gate runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve gate runs: %w", err)
	}

	// Retrieve all component results
	componentResults, err := store.GetAllComponentResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve component results: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetComponents := parquet.ConvertComponentRunRecords(componentResults)

	// Write gate runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteGateRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write gate runs: %w", err)
	}
	fmt.Printf("Exported %d gate runs to: %s\n", len(parquetRuns), runsFile)

	// Write component results to Parquet
	componentsFile := outputFile + ".component_results.parquet"
	if err := parquet.WriteComponentResultsParquet(parquetComponents, componentsFile); err != nil {
		return fmt.Errorf("failed to write component results: %w", err)
	}
	fmt.Printf("Exported %d component records to: %s\n", len(parquetComponents), componentsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
