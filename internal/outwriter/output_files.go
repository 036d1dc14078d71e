package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/covgate/covgate/internal/contract"
	"github.com/covgate/covgate/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// printFilesTable renders per-file coverage records, worst first.
func printFilesTable(files []schema.FileCoverage, cfg *contract.Config) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Rank", "Path", "Component", "Tier", "Coverage", "Label", "Lines", "Branch"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxPathWidth := GetMaxTablePathWidth(cfg)

	var data [][]string
	for i, f := range files {
		pct := schema.Percent(f.Record.LinesCovered, f.Record.LinesValid)
		label := contract.GetPlainLabel(pct)
		if cfg.UseColors {
			label = contract.GetColorLabel(pct)
		}

		branch := "-"
		if f.Record.HasBranchData {
			branch = fmt.Sprintf("%.*f%%", cfg.Precision,
				schema.Percent(f.Record.BranchesCovered, f.Record.BranchesValid))
		}

		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(f.Record.Path, maxPathWidth),
			f.Component,
			string(f.Tier),
			fmt.Sprintf("%.*f%%", cfg.Precision, pct),
			label,
			fmt.Sprintf("%d/%d", f.Record.LinesCovered, f.Record.LinesValid),
			branch,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// fileJSONOutput represents the structure of per-file JSON data.
type fileJSONOutput struct {
	Rank      int     `json:"rank"`
	Path      string  `json:"path"`
	Component string  `json:"component"`
	Tier      string  `json:"tier"`
	Percent   float64 `json:"percent"`
	Label     string  `json:"label"`

	LinesValid      int  `json:"lines_valid"`
	LinesCovered    int  `json:"lines_covered"`
	HasBranchData   bool `json:"has_branch_data"`
	BranchesValid   int  `json:"branches_valid,omitempty"`
	BranchesCovered int  `json:"branches_covered,omitempty"`
}

// printFilesJSON writes per-file records in JSON format.
func printFilesJSON(files []schema.FileCoverage, cfg *contract.Config) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer func() { _ = closeUnlessStdout(file) }()

	output := make([]fileJSONOutput, len(files))
	for i, f := range files {
		pct := schema.Percent(f.Record.LinesCovered, f.Record.LinesValid)
		output[i] = fileJSONOutput{
			Rank:            i + 1,
			Path:            f.Record.Path,
			Component:       f.Component,
			Tier:            string(f.Tier),
			Percent:         pct,
			Label:           contract.GetPlainLabel(pct),
			LinesValid:      f.Record.LinesValid,
			LinesCovered:    f.Record.LinesCovered,
			HasBranchData:   f.Record.HasBranchData,
			BranchesValid:   f.Record.BranchesValid,
			BranchesCovered: f.Record.BranchesCovered,
		}
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "Wrote JSON to %s\n", cfg.OutputFile)
	}
	return nil
}

// printFilesCSV writes per-file records in CSV format.
func printFilesCSV(files []schema.FileCoverage, cfg *contract.Config) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer func() { _ = closeUnlessStdout(file) }()

	w := csv.NewWriter(file)
	header := []string{
		"rank", "path", "component", "tier", "percent", "label",
		"lines_covered", "lines_valid", "branches_covered", "branches_valid",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, f := range files {
		pct := schema.Percent(f.Record.LinesCovered, f.Record.LinesValid)
		branchCovered, branchValid := "", ""
		if f.Record.HasBranchData {
			branchCovered = strconv.Itoa(f.Record.BranchesCovered)
			branchValid = strconv.Itoa(f.Record.BranchesValid)
		}
		rec := []string{
			strconv.Itoa(i + 1),
			f.Record.Path,
			f.Component,
			string(f.Tier),
			fmt.Sprintf("%.*f", cfg.Precision, pct),
			contract.GetPlainLabel(pct),
			strconv.Itoa(f.Record.LinesCovered),
			strconv.Itoa(f.Record.LinesValid),
			branchCovered,
			branchValid,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "Wrote CSV to %s\n", cfg.OutputFile)
	}
	return w.Error()
}
