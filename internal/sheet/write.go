// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rto-verifier/internal/report"
	"github.com/pdiddy/rto-verifier/pkg/types"
)

// ReportSheet is the worksheet name of written workbooks.
const ReportSheet = "Verification"

// Write saves rep to path. The format follows the extension: .xlsx, .csv,
// or .yaml/.yml.
func Write(path string, rep types.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return writeXLSX(path, rep)
	case ".csv":
		return writeCSV(path, rep)
	case ".yaml", ".yml":
		return writeYAML(path, rep)
	default:
		return fmt.Errorf("unsupported report format %q: use .xlsx, .csv or .yaml", ext)
	}
}

// writeXLSX writes a bold header row and fills each status cell with the
// color of its status.
func writeXLSX(path string, rep types.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		return fmt.Errorf("naming worksheet: %w", err)
	}

	header := make([]interface{}, len(rep.Columns))
	for i, c := range rep.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(ReportSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if len(rep.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rep.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(ReportSheet, "A1", last, bold); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
	}

	statusCol := -1
	for i, c := range rep.Columns {
		if c == report.Status {
			statusCol = i + 1
		}
	}
	fills := make(map[types.Status]int)

	for r, row := range rep.Rows {
		values := make([]interface{}, len(rep.Columns))
		for i, c := range rep.Columns {
			values[i] = row.Values[c]
		}
		start, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ReportSheet, start, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", r+1, err)
		}

		if statusCol < 0 || row.Outcome.Status.Fill() == "" {
			continue
		}
		style, ok := fills[row.Outcome.Status]
		if !ok {
			style, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{row.Outcome.Status.Fill()}},
			})
			if err != nil {
				return fmt.Errorf("creating %s fill: %w", row.Outcome.Status, err)
			}
			fills[row.Outcome.Status] = style
		}
		cell, err := excelize.CoordinatesToCellName(statusCol, r+2)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(ReportSheet, cell, cell, style); err != nil {
			return fmt.Errorf("styling %s: %w", cell, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeCSV(path string, rep types.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(rep.Columns); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, row := range rep.Rows {
		rec := make([]string, len(rep.Columns))
		for i, c := range rep.Columns {
			rec[i] = row.Values[c]
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// writeYAML writes one mapping per row with keys in report column order.
func writeYAML(path string, rep types.Report) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range rep.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, c := range rep.Columns {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: row.Values[c]},
			)
		}
		doc.Content = append(doc.Content, m)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
