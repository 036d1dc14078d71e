package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name    string
		covered int
		valid   int
		want    float64
	}{
		{"full coverage", 100, 100, 100.0},
		{"half coverage", 50, 100, 50.0},
		{"zero coverage", 0, 100, 0.0},
		{"zero valid is vacuously full", 0, 0, 100.0},
		{"non-integer result", 1000, 1010, 1000 * 100.0 / 1010},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percent(tt.covered, tt.valid), 1e-9)
		})
	}
}

func TestComponentAggregateAdd(t *testing.T) {
	agg := ComponentAggregate{Name: "core"}

	agg.Add(CoverageRecord{Path: "a.rs", LinesValid: 100, LinesCovered: 80})
	agg.Add(CoverageRecord{Path: "b.rs", LinesValid: 50, LinesCovered: 50, BranchesValid: 10, BranchesCovered: 4, HasBranchData: true})

	assert.Equal(t, 150, agg.LinesValid)
	assert.Equal(t, 130, agg.LinesCovered)
	assert.Equal(t, 2, agg.MatchedFiles)
	assert.Equal(t, 10, agg.BranchesValid)
	assert.Equal(t, 4, agg.BranchesCovered)
	assert.True(t, agg.HasBranchData)
}

func TestComponentAggregateAddIgnoresAbsentBranchCounts(t *testing.T) {
	agg := ComponentAggregate{Name: "core"}

	// Branch counts without HasBranchData must not leak into the sums.
	agg.Add(CoverageRecord{Path: "a.rs", LinesValid: 10, LinesCovered: 5, BranchesValid: 99, BranchesCovered: 99})

	assert.Equal(t, 0, agg.BranchesValid)
	assert.Equal(t, 0, agg.BranchesCovered)
	assert.False(t, agg.HasBranchData)

	_, ok := agg.BranchPercent()
	assert.False(t, ok, "aggregate without branch data should report no branch percent")
}

func TestComponentAggregateMergeIsCommutative(t *testing.T) {
	make2 := func() (ComponentAggregate, ComponentAggregate) {
		a := ComponentAggregate{Name: "x", LinesValid: 100, LinesCovered: 60, MatchedFiles: 2}
		b := ComponentAggregate{Name: "x", LinesValid: 40, LinesCovered: 40, MatchedFiles: 1, BranchesValid: 8, BranchesCovered: 6, HasBranchData: true}
		return a, b
	}

	a1, b1 := make2()
	a1.Merge(&b1)

	a2, b2 := make2()
	b2.Merge(&a2)

	assert.Equal(t, a1.LinesValid, b2.LinesValid)
	assert.Equal(t, a1.LinesCovered, b2.LinesCovered)
	assert.Equal(t, a1.MatchedFiles, b2.MatchedFiles)
	assert.Equal(t, a1.BranchesValid, b2.BranchesValid)
	assert.Equal(t, a1.HasBranchData, b2.HasBranchData)
	assert.InDelta(t, a1.LinePercent(), b2.LinePercent(), 1e-9)
}

func TestLinePercentIsNotAnAverageOfFilePercents(t *testing.T) {
	// One big well-covered file and one tiny uncovered file. Averaging the
	// per-file percentages would give 50%; summing counts gives ~99%.
	agg := ComponentAggregate{Name: "core"}
	agg.Add(CoverageRecord{Path: "big.rs", LinesValid: 1000, LinesCovered: 1000})
	agg.Add(CoverageRecord{Path: "tiny.rs", LinesValid: 10, LinesCovered: 0})

	assert.InDelta(t, 1000*100.0/1010, agg.LinePercent(), 1e-9)
	assert.Greater(t, agg.LinePercent(), 99.0)
}

func TestTierPolicyBranchThreshold(t *testing.T) {
	p := TierPolicy{
		LineThresholds:   map[Tier]float64{CriticalTier: 85},
		BranchThresholds: map[Tier]float64{CriticalTier: 70, StandardTier: 0},
	}

	threshold, enforced := p.BranchThreshold(CriticalTier)
	assert.True(t, enforced)
	assert.Equal(t, 70.0, threshold)

	_, enforced = p.BranchThreshold(StandardTier)
	assert.False(t, enforced, "zero branch threshold means not enforced")

	_, enforced = p.BranchThreshold(ExperimentalTier)
	assert.False(t, enforced, "missing branch threshold means not enforced")
}

func TestDefaultTierPolicy(t *testing.T) {
	p := DefaultTierPolicy()

	require.Len(t, p.LineThresholds, 3)
	assert.Equal(t, DefaultCriticalThreshold, p.LineThreshold(CriticalTier))
	assert.Equal(t, DefaultStandardThreshold, p.LineThreshold(StandardTier))
	assert.Equal(t, DefaultExperimentalThreshold, p.LineThreshold(ExperimentalTier))
	assert.Equal(t, DefaultOverallMin, p.OverallMin)
	assert.Empty(t, p.BranchThresholds)
}

func TestComponentResultFailed(t *testing.T) {
	tests := []struct {
		name   string
		result ComponentResult
		want   bool
	}{
		{"line pass", ComponentResult{Status: PassStatus}, false},
		{"line fail", ComponentResult{Status: FailStatus}, true},
		{"branch fail", ComponentResult{Status: PassStatus, HasBranchData: true, BranchStatus: FailStatus}, true},
		{"branch status without data is ignored", ComponentResult{Status: PassStatus, BranchStatus: FailStatus}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Failed())
		})
	}
}

func TestVerdictExitCode(t *testing.T) {
	pass := Verdict{OverallStatus: PassStatus}
	fail := Verdict{OverallStatus: FailStatus}

	assert.True(t, pass.Passed())
	assert.Equal(t, ExitPass, pass.ExitCode())
	assert.False(t, fail.Passed())
	assert.Equal(t, ExitFail, fail.ExitCode())
}
