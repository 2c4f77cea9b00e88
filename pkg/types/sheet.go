// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Row maps a column header to its cell text. Blank cells are "".
type Row map[string]string

// Sheet is a spreadsheet read fully into memory. Headers are unique and in
// column order; every Row is keyed by those headers.
type Sheet struct {
	// Name is the source file or worksheet name, for diagnostics.
	Name    string
	Headers []string
	Rows    []Row
}

// HasHeader reports whether h is one of the sheet's headers.
func (s *Sheet) HasHeader(h string) bool {
	for _, x := range s.Headers {
		if x == h {
			return true
		}
	}
	return false
}

// ReportRow is one annotated output row.
type ReportRow struct {
	Values  Row
	Outcome Outcome
}

// Report is the annotated spreadsheet handed to the writer. Columns fixes
// the output column order.
type Report struct {
	Columns []string
	Rows    []ReportRow
}

// Tally counts report rows per status.
func (r Report) Tally() map[Status]int {
	counts := make(map[Status]int)
	for _, row := range r.Rows {
		counts[row.Outcome.Status]++
	}
	return counts
}
