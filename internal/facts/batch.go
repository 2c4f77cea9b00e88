// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package facts

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/rto-verifier/pkg/types"
)

// BatchSummary holds counts from extracting a set of documents.
type BatchSummary struct {
	// Extracted counts documents with usable text.
	Extracted int
	// Joinable counts facts carrying a chassis number.
	Joinable int
	// Empty counts unreadable or blank documents.
	Empty int
}

// Total returns the number of documents processed.
func (s BatchSummary) Total() int {
	return s.Extracted + s.Empty
}

// ExtractAll extracts every document with up to workers goroutines. The
// returned facts are in document order whatever the scheduling. A document
// with a read error, blank text, or one that panics the extractor yields an
// empty fact; only context cancellation returns an error.
func ExtractAll(ctx context.Context, docs []types.Document, opts Options, workers int, log *zap.Logger, w io.Writer) ([]types.DocumentFact, BatchSummary, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if workers <= 0 {
		workers = 1
	}

	out := make([]types.DocumentFact, len(docs))
	empty := make([]bool, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fact, err := safeExtract(doc, opts)
			if err != nil {
				log.Warn("fact extraction failed", zap.String("document", doc.Name), zap.Error(err))
				fact = types.EmptyFact(doc.Name)
				empty[i] = true
			} else if doc.Err != "" || strings.TrimSpace(doc.Text) == "" {
				empty[i] = true
			}
			out[i] = fact
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, BatchSummary{}, fmt.Errorf("extracting facts: %w", err)
	}

	var summary BatchSummary
	for i, fact := range out {
		name := docs[i].Name
		switch {
		case empty[i]:
			summary.Empty++
			reason := docs[i].Err
			if reason == "" {
				reason = "no text"
			}
			fmt.Fprintf(w, "empty   %s: %s\n", name, reason)
		case fact.HasChassis():
			summary.Extracted++
			summary.Joinable++
			fmt.Fprintf(w, "extracted %s (chassis %s)\n", name, fact.Chassis())
		default:
			summary.Extracted++
			fmt.Fprintf(w, "extracted %s (no chassis)\n", name)
		}
		log.Debug("document facts",
			zap.String("document", name),
			zap.String("vehicle", fact.VehicleNumber),
			zap.String("type", string(fact.RegistrationType)),
			zap.String("chassis", fact.Chassis()),
			zap.String("name", fact.Name()),
		)
	}

	fmt.Fprintf(w, "Scanned %d files. Found valid data in %d files.\n", summary.Total(), summary.Joinable)
	return out, summary, nil
}

func safeExtract(doc types.Document, opts Options) (fact types.DocumentFact, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return Extract(doc.Name, doc.Text, opts), nil
}
