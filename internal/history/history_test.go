package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/covgate/covgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVerdict() *schema.Verdict {
	return &schema.Verdict{
		OverallPercent:    86.67,
		OverallStatus:     schema.FailStatus,
		OverallMin:        80.0,
		FailedComponents:  1,
		RecordCount:       4,
		OverallLinesValid: 300,
		OverallLinesCov:   260,
		SkippedEntries: []schema.SkippedEntry{
			{Path: "broken.rs", Reason: "missing line counts"},
		},
		Components: []schema.ComponentResult{
			{
				Name:         "adapters",
				Tier:         schema.StandardTier,
				Percent:      70.0,
				Threshold:    80.0,
				Status:       schema.FailStatus,
				LinesCovered: 70,
				LinesValid:   100,
				MatchedFiles: 1,
			},
			{
				Name:         "bitcoin",
				Tier:         schema.CriticalTier,
				Percent:      95.0,
				Threshold:    85.0,
				Status:       schema.PassStatus,
				LinesCovered: 190,
				LinesValid:   200,
				MatchedFiles: 2,
			},
		},
		Recommendations: []string{"adapters"},
	}
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// RecordRun should return 0 for NoneBackend
	runID, err := store.RecordRun(time.Now(), "coverage.json", sampleVerdict(), time.Second)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Read operations should not error and return nothing
	runs, err := store.GetRecentRuns(10)
	assert.NoError(t, err)
	assert.Empty(t, runs)

	runs, err = store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	results, err := store.GetAllComponentResults()
	assert.NoError(t, err)
	assert.Empty(t, results)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.Zero(t, status.TotalRuns)

	err = store.Close()
	assert.NoError(t, err)
}

func TestHistoryStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	startedAt := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	runID, err := store.RecordRun(startedAt, "coverage.json", sampleVerdict(), 1500*time.Millisecond)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	// Run row round-trips with all fields intact
	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.ID)
	assert.True(t, run.StartedAt.Equal(startedAt))
	assert.Equal(t, "coverage.json", run.ReportPath)
	assert.InDelta(t, 86.67, run.OverallPercent, 0.001)
	assert.Equal(t, schema.FailStatus, run.OverallStatus)
	assert.Equal(t, 4, run.RecordCount)
	assert.Equal(t, 1, run.SkippedCount)
	assert.Equal(t, 1, run.FailedComponents)
	assert.Equal(t, int64(1500), run.DurationMS)

	// One component result per verdict component
	results, err := store.GetAllComponentResults()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "adapters", results[0].Name)
	assert.Equal(t, schema.StandardTier, results[0].Tier)
	assert.InDelta(t, 70.0, results[0].Percent, 0.001)
	assert.InDelta(t, 80.0, results[0].Threshold, 0.001)
	assert.Equal(t, schema.FailStatus, results[0].Status)
	assert.Equal(t, 70, results[0].LinesCovered)
	assert.Equal(t, 100, results[0].LinesValid)
	assert.Equal(t, "bitcoin", results[1].Name)
	assert.Equal(t, runID, results[1].RunID)
}

func TestHistoryStore_RecentRunsOrder(t *testing.T) {
	store, err := NewStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	verdict := sampleVerdict()
	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := store.RecordRun(time.Now(), "coverage.json", verdict, time.Second)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// Recent runs come back newest first, capped at the limit
	recent, err := store.GetRecentRuns(3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, ids[4], recent[0].ID)
	assert.Equal(t, ids[3], recent[1].ID)
	assert.Equal(t, ids[2], recent[2].ID)

	// All runs come back oldest first
	all, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, ids[0], all[0].ID)
	assert.Equal(t, ids[4], all[4].ID)
}

func TestHistoryStore_GetStatus(t *testing.T) {
	store, err := NewStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, int64(0), status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes["covgate_runs"])
	assert.Equal(t, int64(0), status.TableSizes["covgate_component_results"])

	_, err = store.RecordRun(time.Now(), "coverage.json", sampleVerdict(), time.Second)
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.TotalRuns)
	assert.Equal(t, int64(1), status.TableSizes["covgate_runs"])
	assert.Equal(t, int64(2), status.TableSizes["covgate_component_results"])
}

func TestHistoryStore_FileBacked(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)

	runID, err := store.RecordRun(time.Now(), "coverage.xml", sampleVerdict(), 200*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopen and confirm the run survived
	store, err = NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "coverage.xml", runs[0].ReportPath)
}

func TestHistoryStore_UnsupportedBackend(t *testing.T) {
	_, err := NewStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}
