// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/covgate/covgate/schema"
)

// HistoryStore defines the interface for the append-only verdict history.
// Historical tracking is an embedding concern, not part of the core
// pipeline: the engine stays a pure function from (report, rules, policy)
// to Verdict, and the store only observes finished runs. The interface
// allows mocking the store for testing.
type HistoryStore interface {
	// RecordRun appends one finished evaluation run keyed by its start
	// timestamp and returns the run's unique ID.
	RecordRun(startedAt time.Time, reportPath string, verdict *schema.Verdict, duration time.Duration) (int64, error)

	// GetRecentRuns returns the most recent runs, newest first.
	GetRecentRuns(limit int) ([]schema.RunRecord, error)

	// GetAllRuns returns every recorded run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllComponentResults returns every per-component row across all runs.
	GetAllComponentResults() ([]schema.ComponentRunRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}
