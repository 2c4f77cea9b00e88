// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/rto-verifier/internal/container"
)

const imagePdftotext = "pdftotext:latest"

// pdftotextCmd reads the PDF from stdin and writes layout-preserving text
// to stdout.
var pdftotextCmd = []string{"pdftotext", "-layout", "-enc", "UTF-8", "-", "-"}

// PdftotextConverter pipes PDFs through poppler's pdftotext in a container.
type PdftotextConverter struct {
	runtime container.Runtime
}

// NewPdftotextConverter returns a converter running on rt, or on the
// detected docker or podman runtime when rt is nil. It fails when the
// pdftotext image is not available locally.
func NewPdftotextConverter(ctx context.Context, rt container.Runtime) (*PdftotextConverter, error) {
	if rt == nil {
		var err error
		if rt, err = container.Detect(ctx); err != nil {
			return nil, err
		}
	}
	if err := rt.ImageExists(ctx, imagePdftotext); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextConverter{runtime: rt}, nil
}

// Convert streams the PDF at pdfPath through the container.
func (p *PdftotextConverter) Convert(ctx context.Context, pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := p.runtime.Run(ctx, imagePdftotext, pdftotextCmd, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with pdftotext: %w", pdfPath, err)
	}
	return out.String(), nil
}
