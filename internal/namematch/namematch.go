// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package namematch scores how well a document-derived customer name covers
// the name typed into the spreadsheet.
//
// The score is asymmetric: it is the share of document tokens found in the
// spreadsheet name, so a short document name ("J Smith") can match a longer
// spreadsheet name ("John Smith"). A single-character document token counts
// as matched when it is the initial of any spreadsheet token.
package namematch

import (
	"strings"

	"github.com/pdiddy/rto-verifier/internal/textnorm"
)

// DefaultThreshold is the inclusive minimum ratio for a match.
const DefaultThreshold = 0.5

// Matcher matches names against a configurable threshold.
type Matcher struct {
	Threshold float64
}

// New returns a Matcher with the given threshold. A zero threshold matches
// any pair of non-blank names.
func New(threshold float64) Matcher {
	return Matcher{Threshold: threshold}
}

// Match reports whether docName covers sheetName at the matcher threshold.
func (m Matcher) Match(sheetName, docName string) bool {
	ratio, ok := Ratio(sheetName, docName)
	return ok && ratio >= m.Threshold
}

// Match reports whether docName covers sheetName at DefaultThreshold.
func Match(sheetName, docName string) bool {
	return New(DefaultThreshold).Match(sheetName, docName)
}

// Ratio returns matched-document-tokens / document-tokens. ok is false when
// either name is blank or the document name has no tokens.
func Ratio(sheetName, docName string) (ratio float64, ok bool) {
	if strings.TrimSpace(sheetName) == "" || strings.TrimSpace(docName) == "" {
		return 0, false
	}

	sheetTokens := textnorm.Tokens(sheetName)
	docTokens := textnorm.Tokens(docName)
	if len(docTokens) == 0 {
		return 0, false
	}

	set := make(map[string]bool, len(sheetTokens))
	for _, tok := range sheetTokens {
		set[tok] = true
	}

	matched := 0
	for _, tok := range docTokens {
		if set[tok] {
			matched++
			continue
		}
		if isInitial(tok) && anyHasPrefix(sheetTokens, tok) {
			matched++
		}
	}
	return float64(matched) / float64(len(docTokens)), true
}

func isInitial(tok string) bool {
	return len([]rune(tok)) == 1
}

func anyHasPrefix(tokens []string, prefix string) bool {
	for _, t := range tokens {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}
