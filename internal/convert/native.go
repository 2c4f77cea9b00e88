// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// NativeConverter extracts PDF text in process. Glyphs are decoded through
// the font encodings and ToUnicode maps, so composite (Identity-H) fonts
// yield readable text. Files the reader rejects are rewritten by pdfcpu in
// relaxed validation mode and read once more. Text drawn as images is not
// recovered.
type NativeConverter struct{}

// NewNativeConverter returns the in-process converter.
func NewNativeConverter() *NativeConverter {
	return &NativeConverter{}
}

// Convert returns the text of every page, pages separated by a blank line.
func (n *NativeConverter) Convert(ctx context.Context, pdfPath string) (string, error) {
	text, err := readPDFText(ctx, pdfPath)
	if err == nil || ctx.Err() != nil {
		return text, err
	}

	repaired, rerr := repairPDF(pdfPath)
	if rerr != nil {
		return "", fmt.Errorf("reading PDF %s: %w", pdfPath, err)
	}
	defer os.RemoveAll(filepath.Dir(repaired))

	text, err = readPDFText(ctx, repaired)
	if err != nil {
		return "", fmt.Errorf("reading repaired PDF %s: %w", pdfPath, err)
	}
	return text, nil
}

// repairPDF writes a normalized copy of pdfPath into a fresh temp dir.
func repairPDF(pdfPath string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfcpu panic: %v", r)
		}
	}()

	dir, err := os.MkdirTemp("", "rto-verifier-pdf-")
	if err != nil {
		return "", err
	}
	out = filepath.Join(dir, filepath.Base(pdfPath))
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	if err := api.OptimizeFile(pdfPath, out, cfg); err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	return out, nil
}

// readPDFText lays out each page as rows of text, top to bottom. The reader
// panics on some malformed files; those surface as errors.
func readPDFText(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var pages []string
	for pageNr := 1; pageNr <= r.NumPage(); pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(pageNr)
		if p.V.IsNull() {
			continue
		}
		if s := strings.TrimSpace(layoutText(p.Content().Text)); s != "" {
			pages = append(pages, s)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

// wordGap is the horizontal gap, as a share of the font size, above which
// two runs on a row are separated by a space.
const wordGap = 0.25

// layoutText groups runs sharing a baseline into rows and renders the rows
// top to bottom, each left to right. Runs drawn at the same position keep
// their drawing order.
func layoutText(texts []pdf.Text) string {
	rows := make(map[float64][]pdf.Text)
	var baselines []float64
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		y := math.Round(t.Y)
		if _, ok := rows[y]; !ok {
			baselines = append(baselines, y)
		}
		rows[y] = append(rows[y], t)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(baselines)))

	var b strings.Builder
	for _, y := range baselines {
		row := rows[y]
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

		var line strings.Builder
		for i, t := range row {
			if i > 0 && separate(row[i-1], t) && !strings.HasSuffix(line.String(), " ") && !strings.HasPrefix(t.S, " ") {
				line.WriteByte(' ')
			}
			line.WriteString(t.S)
		}
		if s := strings.TrimSpace(line.String()); s != "" {
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// separate reports whether run t starts a new word after prev. Without
// glyph widths any move to the right counts.
func separate(prev, t pdf.Text) bool {
	if prev.W > 0 && t.FontSize > 0 {
		return t.X-(prev.X+prev.W) > wordGap*t.FontSize
	}
	return t.X > prev.X
}
