package schema

import "time"

// RunRecord is one evaluation run as persisted in the verdict history.
type RunRecord struct {
	ID               int64
	StartedAt        time.Time
	ReportPath       string
	OverallPercent   float64
	OverallStatus    Status
	RecordCount      int
	SkippedCount     int
	FailedComponents int
	DurationMS       int64
}

// ComponentRunRecord is one per-component result row in the verdict history.
type ComponentRunRecord struct {
	RunID        int64
	Name         string
	Tier         Tier
	Percent      float64
	Threshold    float64
	Status       Status
	LinesCovered int
	LinesValid   int
}

// HistoryStatus represents status information about the history store.
type HistoryStatus struct {
	Backend    DatabaseBackend
	Location   string
	TotalRuns  int64
	TableSizes map[string]int64
}
