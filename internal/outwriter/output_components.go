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

// printComponentsTable renders the per-component table.
func printComponentsTable(v *schema.Verdict, cfg *contract.Config) error {
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"Component", "Tier", "Coverage", "Threshold", "Label", "Status", "Lines", "Files"}
	hasBranchData := false
	for _, cr := range v.Components {
		if cr.HasBranchData {
			hasBranchData = true
			break
		}
	}
	if hasBranchData {
		headers = append(headers, "Branch")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, cr := range v.Components {
		label := contract.GetPlainLabel(cr.Percent)
		status := string(cr.Status)
		if cfg.UseColors {
			label = contract.GetColorLabel(cr.Percent)
			status = contract.GetColorStatus(cr.Status)
		}

		row := []string{
			cr.Name,
			string(cr.Tier),
			fmt.Sprintf("%.*f%%", cfg.Precision, cr.Percent),
			fmt.Sprintf("%.1f%%", cr.Threshold),
			label,
			status,
			fmt.Sprintf("%d/%d", cr.LinesCovered, cr.LinesValid),
			strconv.Itoa(cr.MatchedFiles),
		}
		if hasBranchData {
			row = append(row, formatBranchCell(cr, cfg))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// formatBranchCell renders the branch column. Components without branch
// data show a dash instead of a misleading 0%.
func formatBranchCell(cr schema.ComponentResult, cfg *contract.Config) string {
	if !cr.HasBranchData {
		return "-"
	}
	cell := fmt.Sprintf("%.*f%%", cfg.Precision, cr.BranchPercent)
	if cr.BranchStatus == schema.FailStatus {
		cell += " (<" + fmt.Sprintf("%.1f%%", cr.BranchThreshold) + ")"
	}
	return cell
}

// printVerdictJSON writes the whole verdict document for machine consumption.
func printVerdictJSON(v *schema.Verdict, cfg *contract.Config) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer func() { _ = closeUnlessStdout(file) }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "Wrote JSON to %s\n", cfg.OutputFile)
	}
	return nil
}

// printComponentsCSV writes the per-component results in CSV format.
func printComponentsCSV(v *schema.Verdict, cfg *contract.Config) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer func() { _ = closeUnlessStdout(file) }()

	w := csv.NewWriter(file)
	header := []string{
		"component", "tier", "percent", "threshold", "status",
		"lines_covered", "lines_valid", "matched_files", "branch_percent",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, cr := range v.Components {
		branch := ""
		if cr.HasBranchData {
			branch = fmt.Sprintf("%.*f", cfg.Precision, cr.BranchPercent)
		}
		rec := []string{
			cr.Name,
			string(cr.Tier),
			fmt.Sprintf("%.*f", cfg.Precision, cr.Percent),
			fmt.Sprintf("%.1f", cr.Threshold),
			string(cr.Status),
			strconv.Itoa(cr.LinesCovered),
			strconv.Itoa(cr.LinesValid),
			strconv.Itoa(cr.MatchedFiles),
			branch,
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

// closeUnlessStdout closes the file handle unless it is stdout.
func closeUnlessStdout(file *os.File) error {
	if file == os.Stdout {
		return nil
	}
	return file.Close()
}
