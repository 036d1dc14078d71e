// Package policy evaluates aggregated coverage against tiered thresholds.
package policy

import (
	"fmt"
	"sort"

	"github.com/covgate/covgate/core/agg"
	"github.com/covgate/covgate/schema"
)

// Evaluation holds the per-component and overall pass/fail outcomes.
// A failing component is a well-formed business outcome, communicated
// purely through status fields, never as an error value.
type Evaluation struct {
	Components []schema.ComponentResult

	OverallPercent     float64
	OverallLinesValid  int
	OverallLinesCov    int
	OverallBelowMin    bool
	AnyComponentFailed bool
	OverallStatus      schema.Status
}

// Validate checks that every configured threshold is a sane percentage.
func Validate(p schema.TierPolicy) error {
	for tier, t := range p.LineThresholds {
		if _, ok := schema.ValidTiers[tier]; !ok {
			return fmt.Errorf("%w: unknown tier %q in line thresholds", schema.ErrInvalidPolicy, tier)
		}
		if t < 0 || t > 100 {
			return fmt.Errorf("%w: line threshold for tier %q is %.1f, must be within [0, 100]", schema.ErrInvalidPolicy, tier, t)
		}
	}
	for tier, t := range p.BranchThresholds {
		if _, ok := schema.ValidTiers[tier]; !ok {
			return fmt.Errorf("%w: unknown tier %q in branch thresholds", schema.ErrInvalidPolicy, tier)
		}
		if t < 0 || t > 100 {
			return fmt.Errorf("%w: branch threshold for tier %q is %.1f, must be within [0, 100]", schema.ErrInvalidPolicy, tier, t)
		}
	}
	if p.OverallMin < 0 || p.OverallMin > 100 {
		return fmt.Errorf("%w: overall minimum is %.1f, must be within [0, 100]", schema.ErrInvalidPolicy, p.OverallMin)
	}
	return nil
}

// Evaluate judges every component against its tier threshold and the
// overall aggregate against the project-wide floor. The two failure
// conditions are checked and reported independently.
func Evaluate(result *agg.Result, p schema.TierPolicy) *Evaluation {
	eval := &Evaluation{}

	// Deterministic component order regardless of map iteration.
	names := make([]string, 0, len(result.Components))
	for name := range result.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		comp := result.Components[name]
		tier := result.Tiers[name]
		eval.Components = append(eval.Components, evaluateComponent(comp, tier, p))
	}

	for _, cr := range eval.Components {
		if cr.Failed() {
			eval.AnyComponentFailed = true
			break
		}
	}

	eval.OverallPercent = result.Overall.LinePercent()
	eval.OverallLinesValid = result.Overall.LinesValid
	eval.OverallLinesCov = result.Overall.LinesCovered
	eval.OverallBelowMin = eval.OverallPercent < p.OverallMin

	eval.OverallStatus = schema.PassStatus
	if eval.AnyComponentFailed || eval.OverallBelowMin {
		eval.OverallStatus = schema.FailStatus
	}

	return eval
}

// evaluateComponent judges a single component. Line coverage is always
// enforced; branch coverage only when the tier has a branch threshold and
// the component actually carries branch data.
func evaluateComponent(comp *schema.ComponentAggregate, tier schema.Tier, p schema.TierPolicy) schema.ComponentResult {
	pct := comp.LinePercent()
	threshold := p.LineThreshold(tier)

	cr := schema.ComponentResult{
		Name:         comp.Name,
		Tier:         tier,
		Percent:      pct,
		Threshold:    threshold,
		Status:       schema.PassStatus,
		LinesCovered: comp.LinesCovered,
		LinesValid:   comp.LinesValid,
		MatchedFiles: comp.MatchedFiles,
	}
	if pct < threshold {
		cr.Status = schema.FailStatus
	}

	if branchPct, hasData := comp.BranchPercent(); hasData {
		cr.HasBranchData = true
		cr.BranchPercent = branchPct
		if branchThreshold, enforced := p.BranchThreshold(tier); enforced {
			cr.BranchThreshold = branchThreshold
			cr.BranchStatus = schema.PassStatus
			if branchPct < branchThreshold {
				cr.BranchStatus = schema.FailStatus
			}
		}
	}

	return cr
}
