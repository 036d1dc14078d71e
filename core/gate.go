package core

import (
	"fmt"
	"os"
	"time"

	"github.com/covgate/covgate/internal/contract"
	"github.com/covgate/covgate/internal/outwriter"
	"github.com/covgate/covgate/schema"
)

// ExecuteCoverageGate runs the gate command for CI/CD gating. It evaluates
// the coverage report against the component rules and tier policy, prints
// the verdict, and exits non-zero when the gate fails. Internal errors
// (unreadable report, empty report, bad config) are returned to the caller,
// which maps them to the internal-error exit code.
func ExecuteCoverageGate(cfg *contract.Config, store contract.HistoryStore) error {
	start := time.Now()

	verdict, err := Evaluate(cfg)
	if err != nil {
		return err
	}

	recordRun(store, start, cfg, verdict)

	if err := outwriter.PrintVerdict(verdict, cfg, time.Since(start)); err != nil {
		return err
	}

	// A failing gate is a business outcome, reported through the exit
	// code rather than an error value.
	if !verdict.Passed() {
		fmt.Printf("%d policy gap(s) found\n", gapCount(verdict))
		os.Exit(schema.ExitFail)
	}
	return nil
}

// ExecuteComponents runs the components command: a per-component coverage
// table without gating side effects.
func ExecuteComponents(cfg *contract.Config) error {
	start := time.Now()

	verdict, err := Evaluate(cfg)
	if err != nil {
		return err
	}

	return outwriter.PrintComponents(verdict, cfg, time.Since(start))
}

// ExecuteFiles runs the files command: per-file coverage records with their
// classification, worst coverage first.
func ExecuteFiles(cfg *contract.Config) error {
	start := time.Now()

	builder := NewVerdictBuilder(cfg)
	if _, err := builder.BuildClassifier(); err != nil {
		return err
	}
	if _, err := builder.ParseReport(); err != nil {
		return err
	}

	files := SortFilesByCoverage(builder.ClassifyRecords(), cfg.ResultLimit)
	return outwriter.PrintFiles(files, cfg, time.Since(start))
}

// gapCount counts independent policy gaps: failing components plus the
// overall floor if it was missed.
func gapCount(v *schema.Verdict) int {
	n := v.FailedComponents
	if v.OverallBelowMin {
		n++
	}
	return n
}

// recordRun appends the finished run to the verdict history if a store is
// configured. History failures never affect the verdict or the exit code.
func recordRun(store contract.HistoryStore, start time.Time, cfg *contract.Config, verdict *schema.Verdict) {
	if store == nil {
		return
	}
	if _, err := store.RecordRun(start, cfg.ReportPath, verdict, time.Since(start)); err != nil {
		contract.LogWarn("Failed to record run in history", err)
	}
}
