// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// supported lists the document extensions ExpandPaths keeps from globs.
var supported = map[string]bool{".pdf": true, ".txt": true}

// ExpandPaths resolves arguments to document files. A pattern containing
// glob metacharacters is expanded with doublestar ("proofs/**/*.pdf") and
// only .pdf and .txt matches are kept; a directory contributes its supported
// files recursively; any other argument must name an existing file. The
// result keeps argument order, sorts matches within each argument, and
// drops duplicates.
func ExpandPaths(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		if hasMeta(arg) {
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expanding %q: %w", arg, err)
			}
			sort.Strings(matches)
			for _, m := range matches {
				if isSupported(m) {
					add(m)
				}
			}
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(filepath.Join(arg, "**", "*"), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", arg, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if isSupported(m) {
				add(m)
			}
		}
	}
	return out, nil
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

func isSupported(p string) bool {
	return supported[strings.ToLower(filepath.Ext(p))]
}
