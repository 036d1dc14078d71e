package parse

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/covgate/covgate/schema"
)

// jsonEntry is the minimal file-granular report shape: line counts required,
// branch counts optional. Pointers distinguish absent branch data from zero.
type jsonEntry struct {
	Filename        string `json:"filename"`
	LinesValid      *int   `json:"lines_valid"`
	LinesCovered    *int   `json:"lines_covered"`
	BranchesValid   *int   `json:"branches_valid"`
	BranchesCovered *int   `json:"branches_covered"`
}

// parseJSON decodes a JSON array of file coverage entries.
func parseJSON(r io.Reader) (*Result, error) {
	var entries []jsonEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode json report: %w", err)
	}

	res := &Result{}
	for _, e := range entries {
		if e.LinesValid == nil || e.LinesCovered == nil {
			res.Skipped = append(res.Skipped, schema.SkippedEntry{
				Path:   e.Filename,
				Reason: "missing line counts",
			})
			continue
		}

		hasBranches := e.BranchesValid != nil && e.BranchesCovered != nil
		if (e.BranchesValid == nil) != (e.BranchesCovered == nil) {
			res.Skipped = append(res.Skipped, schema.SkippedEntry{
				Path:   e.Filename,
				Reason: "partial branch counts",
			})
			continue
		}

		branchesValid, branchesCovered := 0, 0
		if hasBranches {
			branchesValid = *e.BranchesValid
			branchesCovered = *e.BranchesCovered
		}
		res.appendEntry(e.Filename, *e.LinesValid, *e.LinesCovered, branchesValid, branchesCovered, hasBranches)
	}
	return res, nil
}
