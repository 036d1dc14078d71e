package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/covgate/covgate/schema"
)

// placeholders returns count SQL placeholders for the backend, starting at 1.
func placeholders(backend schema.DatabaseBackend, count int) []string {
	out := make([]string, count)
	for i := range out {
		if backend == schema.PostgreSQLBackend {
			out[i] = fmt.Sprintf("$%d", i+1)
		} else {
			out[i] = "?"
		}
	}
	return out
}

// RecordRun persists a finished gate run and its component results.
// It returns the run ID for the new row.
func (s *StoreImpl) RecordRun(startedAt time.Time, reportPath string, verdict *schema.Verdict, duration time.Duration) (int64, error) {
	if s.db == nil {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	runID, err := s.insertRun(tx, startedAt, reportPath, verdict, duration)
	if err != nil {
		return 0, err
	}

	if err := s.insertComponentResults(tx, runID, verdict); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run record: %w", err)
	}

	return runID, nil
}

func (s *StoreImpl) insertRun(tx *sql.Tx, startedAt time.Time, reportPath string, verdict *schema.Verdict, duration time.Duration) (int64, error) {
	ph := placeholders(s.backend, 8)
	quotedTableName := quoteTableName(runsTable, s.backend)

	query := fmt.Sprintf(`
		INSERT INTO %s (started_at, report_path, overall_percent, overall_status,
			record_count, skipped_count, failed_components, duration_ms)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s)
	`, quotedTableName, ph[0], ph[1], ph[2], ph[3], ph[4], ph[5], ph[6], ph[7])

	args := []any{
		formatTime(startedAt, s.backend),
		reportPath,
		verdict.OverallPercent,
		string(verdict.OverallStatus),
		verdict.RecordCount,
		len(verdict.SkippedEntries),
		verdict.FailedComponents,
		duration.Milliseconds(),
	}

	// PostgreSQL requires RETURNING to fetch the generated key
	if s.backend == schema.PostgreSQLBackend {
		var runID int64
		query += " RETURNING run_id"
		if err := tx.QueryRow(query, args...).Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		return runID, nil
	}

	result, err := tx.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

func (s *StoreImpl) insertComponentResults(tx *sql.Tx, runID int64, verdict *schema.Verdict) error {
	ph := placeholders(s.backend, 8)
	quotedTableName := quoteTableName(componentResultsTable, s.backend)

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, component, tier, percent, threshold, status,
			lines_covered, lines_valid)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s)
	`, quotedTableName, ph[0], ph[1], ph[2], ph[3], ph[4], ph[5], ph[6], ph[7])

	for _, comp := range verdict.Components {
		_, err := tx.Exec(query,
			runID,
			comp.Name,
			string(comp.Tier),
			comp.Percent,
			comp.Threshold,
			string(comp.Status),
			comp.LinesCovered,
			comp.LinesValid,
		)
		if err != nil {
			return fmt.Errorf("failed to insert component result for %q: %w", comp.Name, err)
		}
	}

	return nil
}

// GetRecentRuns returns the most recent runs, newest first.
func (s *StoreImpl) GetRecentRuns(limit int) ([]schema.RunRecord, error) {
	if s.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(runsTable, s.backend)
	ph := placeholders(s.backend, 1)
	query := fmt.Sprintf(`
		SELECT run_id, started_at, report_path, overall_percent, overall_status,
			record_count, skipped_count, failed_components, duration_ms
		FROM %s
		ORDER BY run_id DESC
		LIMIT %s
	`, quotedTableName, ph[0])

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanRuns(rows)
}

// GetAllRuns returns every recorded run, oldest first.
func (s *StoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if s.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(runsTable, s.backend)
	query := fmt.Sprintf(`
		SELECT run_id, started_at, report_path, overall_percent, overall_status,
			record_count, skipped_count, failed_components, duration_ms
		FROM %s
		ORDER BY run_id ASC
	`, quotedTableName)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanRuns(rows)
}

func (s *StoreImpl) scanRuns(rows *sql.Rows) ([]schema.RunRecord, error) {
	var runs []schema.RunRecord
	for rows.Next() {
		var run schema.RunRecord
		var rawTime any
		if err := rows.Scan(
			&run.ID,
			&rawTime,
			&run.ReportPath,
			&run.OverallPercent,
			&run.OverallStatus,
			&run.RecordCount,
			&run.SkippedCount,
			&run.FailedComponents,
			&run.DurationMS,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		startedAt, err := scanTime(rawTime, s.backend)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		run.StartedAt = startedAt
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetAllComponentResults returns every recorded component result, oldest
// run first.
func (s *StoreImpl) GetAllComponentResults() ([]schema.ComponentRunRecord, error) {
	if s.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(componentResultsTable, s.backend)
	query := fmt.Sprintf(`
		SELECT run_id, component, tier, percent, threshold, status,
			lines_covered, lines_valid
		FROM %s
		ORDER BY run_id ASC, component ASC
	`, quotedTableName)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query component results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ComponentRunRecord
	for rows.Next() {
		var rec schema.ComponentRunRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Name,
			&rec.Tier,
			&rec.Percent,
			&rec.Threshold,
			&rec.Status,
			&rec.LinesCovered,
			&rec.LinesValid,
		); err != nil {
			return nil, fmt.Errorf("failed to scan component result row: %w", err)
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}

// GetStatus returns summary information about the history store.
func (s *StoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    s.backend,
		Location:   s.connStr,
		TableSizes: make(map[string]int64),
	}

	if s.db == nil {
		return status, nil
	}

	for _, table := range []string{runsTable, componentResultsTable} {
		quotedTableName := quoteTableName(table, s.backend)
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
		if err := s.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalRuns = status.TableSizes[runsTable]

	return status, nil
}

// Close closes the underlying database connection.
func (s *StoreImpl) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
