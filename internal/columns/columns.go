// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package columns locates the chassis and customer-name columns in a
// spreadsheet whose header wording varies, and rewrites the sheet so each
// of those fields maps to exactly one canonical column.
package columns

import (
	"fmt"
	"strings"

	"github.com/pdiddy/rto-verifier/internal/textnorm"
	"github.com/pdiddy/rto-verifier/pkg/types"
)

// Canonical headers of the resolved columns in the output report.
const (
	Chassis      = "Chassis number"
	CustomerName = "Customer Name"
)

// Field names used in MissingColumnError.
const (
	FieldChassis = "chassis number"
	FieldName    = "customer name"
)

var (
	chassisSynonyms = []string{"chassis number", "vin number"}
	nameSynonyms    = []string{"customer name"}
)

// Resolution names the physical headers holding each required field.
type Resolution struct {
	Chassis string
	Name    string
}

// MissingColumnError reports a required field that no header satisfies.
// Candidates lists every header actually present.
type MissingColumnError struct {
	Field      string
	Candidates []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found, candidates: %q", e.Field, e.Candidates)
}

// Resolve finds the chassis and name columns among headers. The strict
// strategy accepts only case-insensitive exact synonyms; fuzzy falls back to
// keyword tokens when no synonym is present. Among several candidates the
// first header in column order wins.
func Resolve(headers []string, strategy types.ColumnStrategy) (Resolution, error) {
	var res Resolution

	res.Chassis = findSynonym(headers, chassisSynonyms)
	if res.Chassis == "" && strategy == types.ColumnsFuzzy {
		res.Chassis = findFuzzyChassis(headers)
	}
	if res.Chassis == "" {
		return Resolution{}, &MissingColumnError{Field: FieldChassis, Candidates: headers}
	}

	res.Name = findSynonym(headers, nameSynonyms)
	if res.Name == "" && strategy == types.ColumnsFuzzy {
		res.Name = findFuzzyName(headers, res.Chassis)
	}
	if res.Name == "" {
		return Resolution{}, &MissingColumnError{Field: FieldName, Candidates: headers}
	}

	return res, nil
}

func findSynonym(headers, synonyms []string) string {
	for _, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		for _, s := range synonyms {
			if key == s {
				return h
			}
		}
	}
	return ""
}

func findFuzzyChassis(headers []string) string {
	for _, h := range headers {
		tokens := tokenSet(h)
		if tokens["chassis"] || tokens["vin"] {
			return h
		}
	}
	return ""
}

// findFuzzyName prefers a header naming the customer ("Cust Name") over any
// other header with a "name" token. The chassis column is never reused.
func findFuzzyName(headers []string, exclude string) string {
	fallback := ""
	for _, h := range headers {
		if h == exclude {
			continue
		}
		tokens := tokenSet(h)
		if !tokens["name"] {
			continue
		}
		if tokens["customer"] || tokens["cust"] {
			return h
		}
		if fallback == "" {
			fallback = h
		}
	}
	return fallback
}

func tokenSet(header string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range textnorm.Tokens(header) {
		for _, part := range strings.Split(tok, "_") {
			if part != "" {
				set[part] = true
			}
		}
	}
	return set
}

// Canonicalize returns a copy of sheet with the resolved columns renamed to
// Chassis and CustomerName. Any other column already bearing a canonical
// name is dropped so the rename cannot collide. Row order and the position
// of every kept column are unchanged.
func Canonicalize(sheet *types.Sheet, res Resolution) *types.Sheet {
	rename := map[string]string{
		res.Chassis: Chassis,
		res.Name:    CustomerName,
	}

	out := &types.Sheet{Name: sheet.Name}
	for _, h := range sheet.Headers {
		if to, ok := rename[h]; ok {
			out.Headers = append(out.Headers, to)
			continue
		}
		if h == Chassis || h == CustomerName {
			continue
		}
		out.Headers = append(out.Headers, h)
	}

	out.Rows = make([]types.Row, len(sheet.Rows))
	for i, row := range sheet.Rows {
		nr := make(types.Row, len(out.Headers))
		for _, h := range sheet.Headers {
			if to, ok := rename[h]; ok {
				nr[to] = row[h]
				continue
			}
			if h == Chassis || h == CustomerName {
				continue
			}
			nr[h] = row[h]
		}
		out.Rows[i] = nr
	}
	return out
}
