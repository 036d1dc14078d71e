// Package schema has models, constants and helpers for all parts of covgate.
package schema

// CoverageRecord represents the measured coverage for a single source file,
// as reported by the external instrumentation tool. Records are created once
// by the parser and never mutated afterwards.
type CoverageRecord struct {
	Path            string // Path identifier as reported by the tool (may be rewritten/aliased)
	LinesValid      int    // Number of instrumentable lines
	LinesCovered    int    // Number of lines executed at least once
	BranchesValid   int    // Number of instrumentable branches (meaningful only if HasBranchData)
	BranchesCovered int    // Number of branches taken (meaningful only if HasBranchData)
	HasBranchData   bool   // Distinguishes absent branch data from zero branches
}

// SkippedEntry records one report entry the parser rejected, with the reason.
type SkippedEntry struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ComponentRule is a single classification rule. Rules are configuration,
// loaded once per run and immutable.
type ComponentRule struct {
	Name     string // Component name the rule assigns
	Pattern  string // Substring or glob pattern matched against the record path
	Tier     Tier   // Coverage tier the component is held to
	Priority int    // Lower value is evaluated first; first match wins
}

// ComponentAggregate accumulates coverage counts for one component.
// It is mutated only while folding records and is read-only afterwards.
type ComponentAggregate struct {
	Name            string
	LinesValid      int
	LinesCovered    int
	BranchesValid   int
	BranchesCovered int
	MatchedFiles    int
	HasBranchData   bool // True if any folded record carried branch data
}

// Add folds one coverage record into the aggregate.
func (a *ComponentAggregate) Add(r CoverageRecord) {
	a.LinesValid += r.LinesValid
	a.LinesCovered += r.LinesCovered
	a.MatchedFiles++
	if r.HasBranchData {
		a.BranchesValid += r.BranchesValid
		a.BranchesCovered += r.BranchesCovered
		a.HasBranchData = true
	}
}

// Merge combines another aggregate into this one. Merging is plain integer
// addition per field, so it is associative and commutative: partial
// aggregates built by concurrent workers can be merged in any order.
func (a *ComponentAggregate) Merge(other *ComponentAggregate) {
	a.LinesValid += other.LinesValid
	a.LinesCovered += other.LinesCovered
	a.BranchesValid += other.BranchesValid
	a.BranchesCovered += other.BranchesCovered
	a.MatchedFiles += other.MatchedFiles
	a.HasBranchData = a.HasBranchData || other.HasBranchData
}

// LinePercent returns the line coverage percentage. The percentage is always
// recomputed from the integer sums, never averaged across files: averaging
// per-file percentages misweights large and small files. An aggregate with
// zero valid lines is vacuously fully covered.
func (a *ComponentAggregate) LinePercent() float64 {
	return Percent(a.LinesCovered, a.LinesValid)
}

// BranchPercent returns the branch coverage percentage and whether branch
// data exists at all. Callers must treat ok=false as "no data", not 0%.
func (a *ComponentAggregate) BranchPercent() (pct float64, ok bool) {
	if !a.HasBranchData {
		return 0, false
	}
	return Percent(a.BranchesCovered, a.BranchesValid), true
}

// Percent computes covered*100/valid over integer counts. A zero denominator
// means zero required lines, which is vacuously full coverage.
func Percent(covered, valid int) float64 {
	if valid == 0 {
		return 100.0
	}
	return float64(covered) * 100.0 / float64(valid)
}

// TierPolicy maps each tier to the required line coverage threshold, plus an
// optional branch threshold per tier and a project-wide overall minimum.
// A branch threshold of zero means branch coverage is not enforced for that
// tier. Immutable configuration.
type TierPolicy struct {
	LineThresholds   map[Tier]float64
	BranchThresholds map[Tier]float64
	OverallMin       float64
}

// LineThreshold returns the required line coverage for a tier.
func (p TierPolicy) LineThreshold(tier Tier) float64 {
	return p.LineThresholds[tier]
}

// BranchThreshold returns the required branch coverage for a tier and
// whether branch enforcement is enabled for it.
func (p TierPolicy) BranchThreshold(tier Tier) (float64, bool) {
	t, ok := p.BranchThresholds[tier]
	if !ok || t <= 0 {
		return 0, false
	}
	return t, true
}

// DefaultTierPolicy returns the built-in thresholds used when the config
// file does not override them.
func DefaultTierPolicy() TierPolicy {
	return TierPolicy{
		LineThresholds: map[Tier]float64{
			CriticalTier:     DefaultCriticalThreshold,
			StandardTier:     DefaultStandardThreshold,
			ExperimentalTier: DefaultExperimentalThreshold,
		},
		BranchThresholds: map[Tier]float64{},
		OverallMin:       DefaultOverallMin,
	}
}
