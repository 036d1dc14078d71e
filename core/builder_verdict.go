package core

import (
	"fmt"

	"github.com/covgate/covgate/core/agg"
	"github.com/covgate/covgate/core/classify"
	"github.com/covgate/covgate/core/parse"
	"github.com/covgate/covgate/core/policy"
	"github.com/covgate/covgate/internal/contract"
	"github.com/covgate/covgate/schema"
)

// VerdictBuilder builds the verdict using a builder pattern. The stages run
// strictly parser -> classifier -> aggregator -> policy -> verdict; there is
// no shared mutable state between stages and each run is a pure function of
// (report, rules, policy).
type VerdictBuilder struct {
	cfg        *contract.Config
	classifier *classify.Classifier
	parsed     *parse.Result
	aggregated *agg.Result
	evaluation *policy.Evaluation
	verdict    *schema.Verdict
}

// NewVerdictBuilder creates a new builder for coverage verdicts.
func NewVerdictBuilder(cfg *contract.Config) *VerdictBuilder {
	return &VerdictBuilder{cfg: cfg}
}

// BuildClassifier validates the rule set and constructs the classifier.
// Rule configuration errors are fatal and must surface before any parsing
// or aggregation work happens.
func (b *VerdictBuilder) BuildClassifier() (*VerdictBuilder, error) {
	c, err := classify.New(b.cfg.Rules)
	if err != nil {
		return nil, err
	}
	b.classifier = c

	if err := policy.Validate(b.cfg.Policy); err != nil {
		return nil, err
	}
	return b, nil
}

// ParseReport reads the coverage report and collects valid records plus
// skipped entries. A report with zero valid records cannot produce a
// meaningful verdict and is surfaced as an internal error.
func (b *VerdictBuilder) ParseReport() (*VerdictBuilder, error) {
	res, err := parse.ReportFile(b.cfg.ReportPath, b.cfg.Format)
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("%w: %q (%d entries skipped)", schema.ErrEmptyReport, b.cfg.ReportPath, len(res.Skipped))
	}
	b.parsed = res
	return b, nil
}

// Aggregate folds all records into per-component and overall totals.
func (b *VerdictBuilder) Aggregate() *VerdictBuilder {
	b.aggregated = agg.Fold(b.parsed.Records, b.classifier, b.cfg.Workers)
	return b
}

// ApplyPolicy evaluates the aggregated totals against the tier policy.
func (b *VerdictBuilder) ApplyPolicy() *VerdictBuilder {
	b.evaluation = policy.Evaluate(b.aggregated, b.cfg.Policy)
	return b
}

// BuildVerdict constructs the final Verdict from the policy evaluation.
func (b *VerdictBuilder) BuildVerdict() *VerdictBuilder {
	b.verdict = renderVerdict(b.evaluation, b.parsed.Skipped, len(b.parsed.Records), b.cfg.Policy.OverallMin)
	return b
}

// GetVerdict returns the built Verdict.
func (b *VerdictBuilder) GetVerdict() *schema.Verdict {
	return b.verdict
}

// ClassifyRecords pairs every parsed record with its component and tier.
// Used by the per-file listing, not by gating.
func (b *VerdictBuilder) ClassifyRecords() []schema.FileCoverage {
	files := make([]schema.FileCoverage, 0, len(b.parsed.Records))
	for _, r := range b.parsed.Records {
		name, tier := b.classifier.Classify(r.Path)
		files = append(files, schema.FileCoverage{Record: r, Component: name, Tier: tier})
	}
	return files
}

// Evaluate runs the full pipeline and returns the verdict. This is the
// library entry point for embedding the engine without the CLI.
func Evaluate(cfg *contract.Config) (*schema.Verdict, error) {
	builder := NewVerdictBuilder(cfg)

	if _, err := builder.BuildClassifier(); err != nil {
		return nil, err
	}
	if _, err := builder.ParseReport(); err != nil {
		return nil, err
	}

	builder.Aggregate().ApplyPolicy().BuildVerdict()

	return builder.GetVerdict(), nil
}
