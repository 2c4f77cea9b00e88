// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package join associates spreadsheet rows with extracted document facts by
// chassis number. The join is left outer: every row is kept, with at most
// one fact attached.
package join

import (
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/rto-verifier/internal/columns"
	"github.com/pdiddy/rto-verifier/pkg/types"
)

// Pair is one spreadsheet row and the fact joined to it, if any.
type Pair struct {
	// Index is the zero-based row position in the input sheet.
	Index int
	Row   types.Row
	// Fact is nil when no document shares the row's chassis number.
	Fact *types.DocumentFact
}

// Chassis returns the row's trimmed chassis cell.
func (p Pair) Chassis() string {
	return strings.TrimSpace(p.Row[columns.Chassis])
}

// Name returns the row's customer name cell.
func (p Pair) Name() string {
	return p.Row[columns.CustomerName]
}

// Index maps a trimmed chassis number to the first fact carrying it.
type Index map[string]*types.DocumentFact

// BuildIndex indexes the facts that have a chassis number. When several
// facts share a chassis number the first in collection order wins.
func BuildIndex(facts []types.DocumentFact, log *zap.Logger) Index {
	if log == nil {
		log = zap.NewNop()
	}
	idx := make(Index)
	for i := range facts {
		f := &facts[i]
		if !f.HasChassis() {
			continue
		}
		key := strings.TrimSpace(f.Chassis())
		if prev, ok := idx[key]; ok {
			log.Debug("duplicate chassis number, keeping first document",
				zap.String("chassis", key),
				zap.String("kept", prev.Source),
				zap.String("ignored", f.Source),
			)
			continue
		}
		idx[key] = f
	}
	return idx
}

// Join pairs each row of a canonicalized sheet with its fact. The key
// comparison is exact and case-sensitive after trimming whitespace.
func Join(sheet *types.Sheet, facts []types.DocumentFact, log *zap.Logger) []Pair {
	idx := BuildIndex(facts, log)
	pairs := make([]Pair, len(sheet.Rows))
	for i, row := range sheet.Rows {
		p := Pair{Index: i, Row: row}
		if key := p.Chassis(); key != "" {
			p.Fact = idx[key]
		}
		pairs[i] = p
	}
	return pairs
}
