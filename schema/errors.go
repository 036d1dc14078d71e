package schema

import "errors"

// Sentinel errors for the evaluation pipeline. Callers match with
// errors.Is; the wrapped message carries the offending detail.
var (
	// ErrEmptyReport means the report contained zero valid entries after
	// parsing. A verdict cannot be meaningfully computed from it.
	ErrEmptyReport = errors.New("coverage report has no valid entries")

	// ErrMalformedRecord marks one rejected report entry. It is recovered
	// locally: the entry is skipped and recorded, the run continues.
	ErrMalformedRecord = errors.New("malformed coverage record")

	// ErrInvalidRuleConfig marks a broken component rule set: duplicate
	// (name, priority) pairs, unknown tiers or empty patterns. Fatal, since
	// silently misclassifying coverage is worse than stopping.
	ErrInvalidRuleConfig = errors.New("invalid component rule config")

	// ErrInvalidPolicy marks tier thresholds outside the 0-100 range.
	ErrInvalidPolicy = errors.New("invalid tier policy config")
)
