package core

import (
	"sort"

	"github.com/covgate/covgate/core/policy"
	"github.com/covgate/covgate/schema"
)

// renderVerdict turns the policy evaluation into the final Verdict. This is
// a pure presentation/mapping step: it performs no recomputation of coverage
// numbers, so display and gating logic can never disagree.
func renderVerdict(eval *policy.Evaluation, skipped []schema.SkippedEntry, recordCount int, overallMin float64) *schema.Verdict {
	v := &schema.Verdict{
		OverallPercent:    eval.OverallPercent,
		OverallStatus:     eval.OverallStatus,
		OverallMin:        overallMin,
		OverallBelowMin:   eval.OverallBelowMin,
		Components:        eval.Components,
		SkippedEntries:    skipped,
		RecordCount:       recordCount,
		OverallLinesValid: eval.OverallLinesValid,
		OverallLinesCov:   eval.OverallLinesCov,
	}
	if v.SkippedEntries == nil {
		v.SkippedEntries = []schema.SkippedEntry{}
	}

	for _, cr := range v.Components {
		if cr.Failed() {
			v.FailedComponents++
		}
	}

	v.Recommendations = buildRecommendations(eval.Components)
	return v
}

// buildRecommendations lists components below their threshold, worst
// offender first. Ties are broken by component name ascending so the order
// is deterministic across runs.
func buildRecommendations(components []schema.ComponentResult) []string {
	failing := make([]schema.ComponentResult, 0, len(components))
	for _, cr := range components {
		if cr.Failed() {
			failing = append(failing, cr)
		}
	}

	sort.Slice(failing, func(i, j int) bool {
		if failing[i].Percent != failing[j].Percent {
			return failing[i].Percent < failing[j].Percent
		}
		return failing[i].Name < failing[j].Name
	})

	names := make([]string, 0, len(failing))
	for _, cr := range failing {
		names = append(names, cr.Name)
	}
	return names
}

// SortFilesByCoverage orders per-file records with the worst line coverage
// first, falling back to path order for equal percentages, and truncates to
// the result limit.
func SortFilesByCoverage(files []schema.FileCoverage, limit int) []schema.FileCoverage {
	sorted := make([]schema.FileCoverage, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		pi := schema.Percent(sorted[i].Record.LinesCovered, sorted[i].Record.LinesValid)
		pj := schema.Percent(sorted[j].Record.LinesCovered, sorted[j].Record.LinesValid)
		if pi != pj {
			return pi < pj
		}
		return sorted[i].Record.Path < sorted[j].Record.Path
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
