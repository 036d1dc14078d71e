package parse

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// Cobertura-style XML as produced by tarpaulin, gcovr, coverage.py and
// friends. Only the elements needed for file-granular counts are mapped;
// everything else is ignored by the decoder.
type coberturaReport struct {
	XMLName  xml.Name           `xml:"coverage"`
	Packages []coberturaPackage `xml:"packages>package"`
}

type coberturaPackage struct {
	Classes []coberturaClass `xml:"classes>class"`
}

type coberturaClass struct {
	Filename string          `xml:"filename,attr"`
	Lines    []coberturaLine `xml:"lines>line"`
}

type coberturaLine struct {
	Hits              int    `xml:"hits,attr"`
	Branch            bool   `xml:"branch,attr"`
	ConditionCoverage string `xml:"condition-coverage,attr"`
}

// conditionCoverageRe extracts the "(covered/valid)" counts from a
// condition-coverage attribute like "50% (1/2)".
var conditionCoverageRe = regexp.MustCompile(`\((\d+)/(\d+)\)`)

// parseCobertura decodes a Cobertura XML document into per-file records.
// Line totals are derived by counting <line> elements, never by trusting
// the precomputed rate attributes, so rounded rates cannot skew the sums.
func parseCobertura(r io.Reader) (*Result, error) {
	var doc coberturaReport
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode cobertura report: %w", err)
	}

	res := &Result{}
	for _, pkg := range doc.Packages {
		for _, cls := range pkg.Classes {
			linesValid := len(cls.Lines)
			linesCovered := 0
			branchesValid, branchesCovered := 0, 0
			hasBranches := false

			for _, line := range cls.Lines {
				if line.Hits > 0 {
					linesCovered++
				}
				if !line.Branch {
					continue
				}
				covered, valid, ok := parseConditionCoverage(line.ConditionCoverage)
				if !ok {
					// A branch line without usable condition counts carries
					// no branch data; it must not be mistaken for 0/0.
					continue
				}
				branchesValid += valid
				branchesCovered += covered
				hasBranches = true
			}

			res.appendEntry(cls.Filename, linesValid, linesCovered, branchesValid, branchesCovered, hasBranches)
		}
	}
	return res, nil
}

// parseConditionCoverage extracts covered and valid branch counts from a
// condition-coverage attribute value.
func parseConditionCoverage(s string) (covered, valid int, ok bool) {
	m := conditionCoverageRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	covered, errC := strconv.Atoi(m[1])
	valid, errV := strconv.Atoi(m[2])
	if errC != nil || errV != nil {
		return 0, 0, false
	}
	return covered, valid, true
}
