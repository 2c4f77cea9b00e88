// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify runs the reconciliation pipeline: extract facts from every
// document, resolve and canonicalize the spreadsheet columns, join rows to
// facts by chassis number, decide each row, and assemble the report.
//
// Run is a pure batch transformation of its inputs. Per-document and per-row
// problems never stop the batch; missing inputs and unresolvable columns
// stop it before any report exists.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/rto-verifier/internal/columns"
	"github.com/pdiddy/rto-verifier/internal/decide"
	"github.com/pdiddy/rto-verifier/internal/facts"
	"github.com/pdiddy/rto-verifier/internal/join"
	"github.com/pdiddy/rto-verifier/internal/report"
	"github.com/pdiddy/rto-verifier/pkg/types"
)

var (
	// ErrNoDocuments is returned when the run has no documents to check.
	ErrNoDocuments = errors.New("no documents supplied")

	// ErrNoSpreadsheet is returned when the run has no spreadsheet.
	ErrNoSpreadsheet = errors.New("no spreadsheet supplied")
)

// Input holds the explicit inputs of one verification run.
type Input struct {
	Documents []types.Document
	Sheet     *types.Sheet
}

// Result is the output of a successful run.
type Result struct {
	Report     types.Report
	Facts      []types.DocumentFact
	Columns    columns.Resolution
	Extraction facts.BatchSummary
}

// Run verifies every spreadsheet row against the documents. Progress and
// the final tally are written to w.
func Run(ctx context.Context, in Input, cfg types.VerifyConfig, log *zap.Logger, w io.Writer) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if in.Sheet == nil {
		return nil, ErrNoSpreadsheet
	}
	if len(in.Documents) == 0 {
		return nil, ErrNoDocuments
	}

	res, err := columns.Resolve(in.Sheet.Headers, cfg.Columns.Strategy)
	if err != nil {
		return nil, fmt.Errorf("resolving columns of %s: %w", in.Sheet.Name, err)
	}
	log.Info("resolved columns",
		zap.String("chassis", res.Chassis),
		zap.String("name", res.Name),
		zap.String("strategy", string(cfg.Columns.Strategy)),
	)

	opts := facts.Options{NewVehicleRule: cfg.Extraction.NewVehicleRule}
	pool, summary, err := facts.ExtractAll(ctx, in.Documents, opts, cfg.Extraction.Workers, log, w)
	if err != nil {
		return nil, err
	}

	sheet := columns.Canonicalize(in.Sheet, res)
	pairs := join.Join(sheet, pool, log)

	engine := decide.New(cfg.Matching.MinRatio())
	outcomes := make([]types.Outcome, len(pairs))
	for i, p := range pairs {
		outcomes[i] = engine.Decide(p.Name(), p.Fact, pool)
		log.Debug("row decided",
			zap.Int("row", p.Index+1),
			zap.String("chassis", p.Chassis()),
			zap.String("status", string(outcomes[i].Status)),
			zap.String("reason", string(outcomes[i].Reason)),
		)
	}

	rep := report.Assemble(sheet, pairs, outcomes)

	tally := rep.Tally()
	fmt.Fprintf(w, "\nVerified %d rows: %d approve, %d hold, %d pending\n",
		len(rep.Rows), tally[types.StatusApprove], tally[types.StatusHold], tally[types.StatusPending])

	return &Result{
		Report:     rep,
		Facts:      pool,
		Columns:    res,
		Extraction: summary,
	}, nil
}
