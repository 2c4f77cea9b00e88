// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns registration documents into plain text. PDFs go
// through a pluggable Converter backend; .txt files are read verbatim.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/rto-verifier/pkg/types"
)

// Converter extracts the text of a PDF file.
type Converter interface {
	// Convert reads the PDF at pdfPath and returns its text.
	Convert(ctx context.Context, pdfPath string) (string, error)
}

// New returns the converter for backend. The pdftotext backend needs a
// working container runtime.
func New(ctx context.Context, backend types.ConversionBackend) (Converter, error) {
	switch backend {
	case types.BackendNative, "":
		return NewNativeConverter(), nil
	case types.BackendPdftotext:
		c, err := NewPdftotextConverter(ctx, nil)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported backend %q", backend)
	}
}

// BatchResult holds the outcome of reading a set of documents.
type BatchResult struct {
	Converted int
	Failed    int
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any document could not be read.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ReadDocument returns the text of one file. Plain text files bypass the
// converter.
func ReadDocument(ctx context.Context, c Converter, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}
	return c.Convert(ctx, path)
}

// ReadDocuments reads every path with up to workers goroutines and returns
// one Document per path in path order. A file that cannot be read becomes a
// Document with Err set; only context cancellation aborts the batch.
// Per-file status lines and a summary are written to w.
func ReadDocuments(ctx context.Context, c Converter, paths []string, workers int, log *zap.Logger, w io.Writer) ([]types.Document, BatchResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if workers <= 0 {
		workers = 1
	}

	docs := make([]types.Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc := types.Document{Name: filepath.Base(p), Path: p}
			text, err := ReadDocument(gctx, c, p)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Warn("document conversion failed", zap.String("document", p), zap.Error(err))
				doc.Err = err.Error()
			} else {
				doc.Text = text
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, BatchResult{}, fmt.Errorf("reading documents: %w", err)
	}

	var result BatchResult
	for _, d := range docs {
		if d.Err != "" {
			result.Failed++
			fmt.Fprintf(w, "failed  %s: %s\n", d.Name, d.Err)
			continue
		}
		result.Converted++
		fmt.Fprintf(w, "converted %s (%d chars)\n", d.Name, len(d.Text))
	}
	fmt.Fprintf(w, "\nConversion summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return docs, result, nil
}
