package agg

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/covgate/covgate/core/classify"
	"github.com/covgate/covgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClassifier(t *testing.T) *classify.Classifier {
	t.Helper()
	c, err := classify.New([]schema.ComponentRule{
		{Name: "bitcoin", Pattern: "adapters/bitcoin/", Tier: schema.CriticalTier, Priority: 5},
		{Name: "adapters", Pattern: "adapters/", Tier: schema.StandardTier, Priority: 20},
		{Name: "router", Pattern: "core/router/", Tier: schema.CriticalTier, Priority: 10},
	})
	require.NoError(t, err)
	return c
}

func testRecords() []schema.CoverageRecord {
	return []schema.CoverageRecord{
		{Path: "adapters/bitcoin/htlc.rs", LinesValid: 100, LinesCovered: 95},
		{Path: "adapters/bitcoin/spv.rs", LinesValid: 100, LinesCovered: 95, BranchesValid: 20, BranchesCovered: 15, HasBranchData: true},
		{Path: "adapters/ethereum/client.rs", LinesValid: 50, LinesCovered: 25},
		{Path: "adapters/cosmos/ibc.rs", LinesValid: 50, LinesCovered: 45},
		{Path: "core/router/engine.rs", LinesValid: 200, LinesCovered: 180},
		{Path: "docs/notes.md", LinesValid: 10, LinesCovered: 0},
	}
}

func TestFold(t *testing.T) {
	c := testClassifier(t)
	result := Fold(testRecords(), c, 4)

	require.Len(t, result.Components, 4)

	bitcoin := result.Components["bitcoin"]
	require.NotNil(t, bitcoin)
	assert.Equal(t, 200, bitcoin.LinesValid)
	assert.Equal(t, 190, bitcoin.LinesCovered)
	assert.Equal(t, 2, bitcoin.MatchedFiles)
	assert.True(t, bitcoin.HasBranchData)
	assert.Equal(t, 20, bitcoin.BranchesValid)
	assert.Equal(t, 15, bitcoin.BranchesCovered)
	assert.Equal(t, schema.CriticalTier, result.Tiers["bitcoin"])

	adapters := result.Components["adapters"]
	require.NotNil(t, adapters)
	assert.Equal(t, 100, adapters.LinesValid)
	assert.Equal(t, 70, adapters.LinesCovered)
	assert.Equal(t, 2, adapters.MatchedFiles)
	assert.False(t, adapters.HasBranchData)
	assert.Equal(t, schema.StandardTier, result.Tiers["adapters"])

	unclassified := result.Components[schema.UnclassifiedComponent]
	require.NotNil(t, unclassified)
	assert.Equal(t, 10, unclassified.LinesValid)
	assert.Equal(t, schema.StandardTier, result.Tiers[schema.UnclassifiedComponent])

	// Overall sums every record exactly once regardless of component.
	assert.Equal(t, 510, result.Overall.LinesValid)
	assert.Equal(t, 440, result.Overall.LinesCovered)
	assert.Equal(t, 6, result.Overall.MatchedFiles)
}

func TestFoldOrderIndependent(t *testing.T) {
	c := testClassifier(t)
	records := testRecords()

	baseline := Fold(records, c, 1)

	rng := rand.New(rand.NewSource(42))
	for i := range 10 {
		shuffled := make([]schema.CoverageRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		result := Fold(shuffled, c, 3)
		require.Len(t, result.Components, len(baseline.Components), "iteration %d", i)
		for name, comp := range baseline.Components {
			got := result.Components[name]
			require.NotNil(t, got, "iteration %d missing component %s", i, name)
			assert.Equal(t, comp.LinesValid, got.LinesValid)
			assert.Equal(t, comp.LinesCovered, got.LinesCovered)
			assert.Equal(t, comp.MatchedFiles, got.MatchedFiles)
			assert.Equal(t, comp.BranchesValid, got.BranchesValid)
			assert.Equal(t, comp.HasBranchData, got.HasBranchData)
		}
		assert.Equal(t, baseline.Overall.LinesValid, result.Overall.LinesValid)
		assert.Equal(t, baseline.Overall.LinesCovered, result.Overall.LinesCovered)
	}
}

func TestFoldWorkerCountDoesNotChangeResult(t *testing.T) {
	c := testClassifier(t)
	records := testRecords()
	baseline := Fold(records, c, 1)

	for _, workers := range []int{0, 2, 4, 8, 100} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			result := Fold(records, c, workers)
			assert.Equal(t, baseline.Overall.LinesValid, result.Overall.LinesValid)
			assert.Equal(t, baseline.Overall.LinesCovered, result.Overall.LinesCovered)
			assert.Len(t, result.Components, len(baseline.Components))
		})
	}
}

func TestFoldEmptyInput(t *testing.T) {
	c := testClassifier(t)
	result := Fold(nil, c, 4)

	assert.Empty(t, result.Components)
	assert.Equal(t, 0, result.Overall.LinesValid)
	assert.InDelta(t, 100.0, result.Overall.LinePercent(), 1e-9)
}

func TestFoldManyRecords(t *testing.T) {
	c := testClassifier(t)

	var records []schema.CoverageRecord
	wantValid, wantCovered := 0, 0
	for i := range 1000 {
		lv := 10 + i%17
		lc := lv - i%5
		records = append(records, schema.CoverageRecord{
			Path:         fmt.Sprintf("adapters/bitcoin/file_%d.rs", i),
			LinesValid:   lv,
			LinesCovered: lc,
		})
		wantValid += lv
		wantCovered += lc
	}

	result := Fold(records, c, 8)
	bitcoin := result.Components["bitcoin"]
	require.NotNil(t, bitcoin)
	assert.Equal(t, wantValid, bitcoin.LinesValid)
	assert.Equal(t, wantCovered, bitcoin.LinesCovered)
	assert.Equal(t, 1000, bitcoin.MatchedFiles)
}
