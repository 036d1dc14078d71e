package schema

// ComponentResult is the finalized evaluation for one component.
type ComponentResult struct {
	Name         string  `json:"name"`
	Tier         Tier    `json:"tier"`
	Percent      float64 `json:"percent"`
	Threshold    float64 `json:"threshold"`
	Status       Status  `json:"status"`
	LinesCovered int     `json:"lines_covered"`
	LinesValid   int     `json:"lines_valid"`
	MatchedFiles int     `json:"matched_files"`

	// Branch evaluation. Components without branch data are excluded from
	// branch-threshold checks but still evaluated on line coverage.
	HasBranchData   bool    `json:"has_branch_data"`
	BranchPercent   float64 `json:"branch_percent,omitempty"`
	BranchThreshold float64 `json:"branch_threshold,omitempty"`
	BranchStatus    Status  `json:"branch_status,omitempty"`
}

// Failed reports whether the component missed any enforced threshold.
func (c ComponentResult) Failed() bool {
	if c.Status == FailStatus {
		return true
	}
	return c.HasBranchData && c.BranchStatus == FailStatus
}

// Verdict is the final output of one coverage evaluation run. It is produced
// once per run and never mutated after construction.
type Verdict struct {
	OverallPercent float64 `json:"overall_percent"`
	OverallStatus  Status  `json:"overall_status"`
	OverallMin     float64 `json:"overall_min"`

	// OverallBelowMin and FailedComponents are reported independently so a
	// caller can distinguish "a component is below its tier bar" from
	// "aggregate coverage dropped below the floor".
	OverallBelowMin  bool `json:"overall_below_min"`
	FailedComponents int  `json:"failed_components"`

	Components      []ComponentResult `json:"components"`
	Recommendations []string          `json:"recommendations"`
	SkippedEntries  []SkippedEntry    `json:"skipped_entries"`

	RecordCount       int `json:"record_count"`
	OverallLinesValid int `json:"overall_lines_valid"`
	OverallLinesCov   int `json:"overall_lines_covered"`
}

// Passed reports whether the whole run passed.
func (v *Verdict) Passed() bool {
	return v.OverallStatus == PassStatus
}

// ExitCode maps the verdict to the process exit code used for CI gating.
// Internal errors never reach a Verdict, so only pass/fail apply here.
func (v *Verdict) ExitCode() int {
	if v.Passed() {
		return ExitPass
	}
	return ExitFail
}

// FileCoverage pairs one coverage record with its classification. Used by
// the per-file listing, not by gating.
type FileCoverage struct {
	Record    CoverageRecord
	Component string
	Tier      Tier
}
