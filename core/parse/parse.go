// Package parse converts external coverage reports into coverage records.
package parse

import (
	"fmt"
	"io"
	"os"

	"github.com/covgate/covgate/schema"
)

// Result holds the outcome of parsing one coverage report: the records that
// passed validation plus every entry that was rejected, with the reason.
// A single bad row never aborts the whole run.
type Result struct {
	Records []schema.CoverageRecord
	Skipped []schema.SkippedEntry
}

// ReportFile opens and parses a coverage report from disk.
func ReportFile(path string, format schema.ReportFormat) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open coverage report %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Report(f, format)
}

// Report parses a coverage report from a reader. The whole-document error
// path (unreadable or syntactically broken report) is distinct from
// per-entry rejection, which lands in Result.Skipped instead.
func Report(r io.Reader, format schema.ReportFormat) (*Result, error) {
	switch format {
	case schema.CoberturaFormat:
		return parseCobertura(r)
	case schema.JSONFormat:
		return parseJSON(r)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// validateCounts checks the count invariants shared by every report format.
// It returns a human-readable rejection reason, or "" if the entry is valid.
func validateCounts(path string, linesValid, linesCovered int, branchesValid, branchesCovered int, hasBranches bool) string {
	if path == "" {
		return "missing filename"
	}
	if linesValid < 0 || linesCovered < 0 {
		return "negative line counts"
	}
	if linesCovered > linesValid {
		return fmt.Sprintf("lines_covered %d exceeds lines_valid %d", linesCovered, linesValid)
	}
	if hasBranches {
		if branchesValid < 0 || branchesCovered < 0 {
			return "negative branch counts"
		}
		if branchesCovered > branchesValid {
			return fmt.Sprintf("branches_covered %d exceeds branches_valid %d", branchesCovered, branchesValid)
		}
	}
	return ""
}

// appendEntry validates one raw entry and routes it into records or skips.
func (res *Result) appendEntry(path string, linesValid, linesCovered int, branchesValid, branchesCovered int, hasBranches bool) {
	if reason := validateCounts(path, linesValid, linesCovered, branchesValid, branchesCovered, hasBranches); reason != "" {
		res.Skipped = append(res.Skipped, schema.SkippedEntry{Path: path, Reason: reason})
		return
	}
	res.Records = append(res.Records, schema.CoverageRecord{
		Path:            path,
		LinesValid:      linesValid,
		LinesCovered:    linesCovered,
		BranchesValid:   branchesValid,
		BranchesCovered: branchesCovered,
		HasBranchData:   hasBranches,
	})
}
