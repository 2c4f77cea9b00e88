// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet reads vehicle spreadsheets into memory and writes the
// annotated verification report. Excel workbooks and CSV files are
// supported in both directions; reports can also be exported as YAML.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/rto-verifier/pkg/types"
)

// ErrNoHeader is returned for a spreadsheet without a header row.
var ErrNoHeader = errors.New("spreadsheet has no header row")

// Read loads the first worksheet of an .xlsx file or a .csv file. The first
// row supplies the headers. Cells are kept as text.
func Read(path string) (*types.Sheet, error) {
	var (
		records [][]string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(path)
	case ".csv":
		records, err = readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet format %q: use .xlsx or .csv", ext)
	}
	if err != nil {
		return nil, err
	}

	s, err := FromRecords(filepath.Base(path), records)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no worksheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading worksheet %q of %s: %w", sheets[0], path, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV %s: %w", path, err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

// FromRecords builds a Sheet from raw rows, the first being the header.
// Blank headers are named "Unnamed: <index>". When a header repeats, the
// first column with that header is kept and later ones are dropped. Short
// rows are padded with blanks and fully blank rows are skipped.
func FromRecords(name string, records [][]string) (*types.Sheet, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	s := &types.Sheet{Name: name}
	var keep []int
	seen := make(map[string]bool)
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		s.Headers = append(s.Headers, h)
		keep = append(keep, i)
	}
	if len(s.Headers) == 0 || allBlank(records[0]) {
		return nil, ErrNoHeader
	}

	for _, rec := range records[1:] {
		if allBlank(rec) {
			continue
		}
		row := make(types.Row, len(s.Headers))
		for j, col := range keep {
			if col < len(rec) {
				row[s.Headers[j]] = rec[col]
			} else {
				row[s.Headers[j]] = ""
			}
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

func allBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
