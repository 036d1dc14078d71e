// Package classify maps coverage records to named components via ordered
// pattern rules.
package classify

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/covgate/covgate/schema"
)

// Classifier resolves a record path to exactly one component. Rules are
// evaluated in ascending priority order and the first match wins: overlap
// between patterns is resolved by the explicit priority field, never by
// pattern-specificity inference.
type Classifier struct {
	rules []schema.ComponentRule
}

// New validates the rule set and returns a classifier. The incoming slice
// order does not matter; evaluation order is defined by priority alone
// (stable sort, so rules sharing a priority keep their config order).
func New(rules []schema.ComponentRule) (*Classifier, error) {
	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: rule with empty name (pattern %q)", schema.ErrInvalidRuleConfig, r.Pattern)
		}
		if strings.TrimSpace(r.Pattern) == "" {
			return nil, fmt.Errorf("%w: rule %q has an empty pattern", schema.ErrInvalidRuleConfig, r.Name)
		}
		if _, ok := schema.ValidTiers[r.Tier]; !ok {
			return nil, fmt.Errorf("%w: rule %q has unknown tier %q (must be critical, standard, experimental)", schema.ErrInvalidRuleConfig, r.Name, r.Tier)
		}
		key := fmt.Sprintf("%s\x00%d", r.Name, r.Priority)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate rule %q with priority %d", schema.ErrInvalidRuleConfig, r.Name, r.Priority)
		}
		seen[key] = struct{}{}
	}

	sorted := make([]schema.ComponentRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	return &Classifier{rules: sorted}, nil
}

// Classify returns the component name and tier for a record path. Paths
// matching no rule land in the unclassified sentinel component, held to the
// standard tier, so the overall percentage stays path-complete even when
// the component taxonomy is incomplete.
func (c *Classifier) Classify(path string) (string, schema.Tier) {
	for _, r := range c.rules {
		if MatchesPattern(path, r.Pattern) {
			return r.Name, r.Tier
		}
	}
	return schema.UnclassifiedComponent, schema.StandardTier
}

// Rules returns the rules in evaluation order.
func (c *Classifier) Rules() []schema.ComponentRule {
	return c.rules
}

// MatchesPattern returns true if the given path matches the pattern.
// Patterns containing glob characters (*, ?, [ ]) are matched with
// filepath.Match against both the full path and the base filename, so a
// user can write patterns like "*_adapter.rs" or "core/router/*". All
// other patterns are plain substring matches.
func MatchesPattern(path, pattern string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}

	if strings.ContainsAny(pattern, "*?[") {
		pat := strings.ReplaceAll(pattern, "**", "*")
		if ok, err := filepath.Match(pat, path); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
			return true
		}
		return false
	}

	return strings.Contains(path, pattern)
}
