// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm canonicalizes free text before comparison.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// punct matches one character that is neither a word character nor whitespace.
var punct = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]`)

// Normalize lower-cases s, replaces each punctuation character with a space,
// and trims surrounding whitespace. Empty input yields "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = punct.ReplaceAllString(s, " ")
	return strings.TrimSpace(strings.ToLower(s))
}

// Tokens returns the whitespace-separated tokens of Normalize(s).
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// FoldSpaces rewrites Unicode whitespace to ASCII so that patterns written
// with \s and \b see it: line and paragraph separators become '\n', every
// other space character becomes ' '. Tabs, newlines and carriage returns are
// kept.
func FoldSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return r
		case r == '\u0085' || r == '\u2028' || r == '\u2029':
			return '\n'
		case unicode.IsSpace(r), r >= '\x1c' && r <= '\x1f':
			return ' '
		}
		return r
	}, s)
}
