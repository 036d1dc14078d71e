// Package agg folds coverage records into per-component and overall totals.
package agg

import (
	"sync"

	"github.com/covgate/covgate/core/classify"
	"github.com/covgate/covgate/schema"
)

// OverallComponent names the implicit aggregate that sums every record
// regardless of classification.
const OverallComponent = "overall"

// Result maps each classified component, plus the implicit overall
// aggregate, to its summed counts. Tiers records the tier assigned to each
// component by the rule that classified it.
type Result struct {
	Components map[string]*schema.ComponentAggregate
	Overall    *schema.ComponentAggregate
	Tiers      map[string]schema.Tier
}

// partial is one worker's private fold state. Workers never share state;
// partials are merged with plain integer addition at the end, so the final
// totals are independent of both input order and merge order.
type partial struct {
	components map[string]*schema.ComponentAggregate
	overall    schema.ComponentAggregate
	tiers      map[string]schema.Tier
}

func newPartial() *partial {
	return &partial{
		components: make(map[string]*schema.ComponentAggregate),
		overall:    schema.ComponentAggregate{Name: OverallComponent},
		tiers:      make(map[string]schema.Tier),
	}
}

// add folds one record into the partial.
func (p *partial) add(r schema.CoverageRecord, c *classify.Classifier) {
	name, tier := c.Classify(r.Path)
	comp, ok := p.components[name]
	if !ok {
		comp = &schema.ComponentAggregate{Name: name}
		p.components[name] = comp
		p.tiers[name] = tier
	}
	comp.Add(r)
	p.overall.Add(r)
}

// merge combines another partial into this one.
func (p *partial) merge(other *partial) {
	for name, comp := range other.components {
		if existing, ok := p.components[name]; ok {
			existing.Merge(comp)
		} else {
			p.components[name] = comp
			p.tiers[name] = other.tiers[name]
		}
	}
	p.overall.Merge(&other.overall)
}

// Fold aggregates all records grouped by classifier output. Records are
// processed by a pool of workers; classification of independent records
// needs no coordination because records are immutable and each worker folds
// into private partial aggregates.
func Fold(records []schema.CoverageRecord, c *classify.Classifier, workers int) *Result {
	if workers < 1 {
		workers = 1
	}
	if workers > len(records) && len(records) > 0 {
		workers = len(records)
	}

	recordCh := make(chan schema.CoverageRecord, len(records))
	partialCh := make(chan *partial, workers)
	var wg sync.WaitGroup

	// Start worker pool
	for range workers {
		wg.Go(func() {
			p := newPartial()
			for r := range recordCh {
				p.add(r, c)
			}
			partialCh <- p
		})
	}

	// Send records to worker channel
	for _, r := range records {
		recordCh <- r
	}
	close(recordCh)

	// Wait for all workers to finish folding
	wg.Wait()
	close(partialCh)

	// Final reduction: merge partials in arrival order. Merge order never
	// changes the result since every field is an integer sum.
	final := newPartial()
	for p := range partialCh {
		final.merge(p)
	}

	return &Result{
		Components: final.components,
		Overall:    &final.overall,
		Tiers:      final.tiers,
	}
}
