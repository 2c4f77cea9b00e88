// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package facts turns the raw text of one registration document into a
// structured DocumentFact by pattern matching. Extraction never fails:
// anything not found degrades to a nil field or a sentinel value.
package facts

import (
	"regexp"
	"strings"

	"github.com/pdiddy/rto-verifier/internal/textnorm"
	"github.com/pdiddy/rto-verifier/pkg/types"
)

// Options tunes classification.
type Options struct {
	NewVehicleRule types.NewVehicleRule
}

// Extract pattern-matches text and returns the document's facts.
func Extract(source, text string, opts Options) types.DocumentFact {
	fact := types.EmptyFact(source)
	if strings.TrimSpace(text) == "" {
		return fact
	}
	text = textnorm.FoldSpaces(text)

	fact.TempKeyword = tempKeywordRe.MatchString(text)

	plate, found := findPlate(text)
	fact.VehicleNumber = plate
	fact.RegistrationType = classify(plate, found, fact.TempKeyword, opts.NewVehicleRule)

	if m := chassisRe.FindString(text); m != "" {
		fact.ChassisNumber = types.Ptr(m)
	}
	fact.CustomerName = findName(text)

	fact.RegistrationDate = submatch(regDateRe, text)
	fact.ReceiptDate = submatch(receiptDateRe, text)
	if fact.RegistrationDate == nil && fact.ReceiptDate == nil {
		if m := anyDateRe.FindString(text); m != "" {
			fact.FallbackDate = types.Ptr(m)
		}
	}

	return fact
}

// findPlate returns the first standard plate, else the first BH-series
// plate. Without either it returns a sentinel and found=false.
func findPlate(text string) (plate string, found bool) {
	if m := plateRe.FindString(text); m != "" {
		return m, true
	}
	if m := bhPlateRe.FindString(text); m != "" {
		return m, true
	}
	if strings.Contains(strings.ToLower(text), "new") {
		return types.VehicleNew, false
	}
	return types.VehicleNotFound, false
}

func classify(plate string, found, tempKeyword bool, rule types.NewVehicleRule) types.RegistrationType {
	switch {
	case found:
		return types.RegistrationPermanent
	case plate == types.VehicleNew:
		if rule == types.NewTemporaryIfKeyword && tempKeyword {
			return types.RegistrationTemporary
		}
		return types.RegistrationPermanent
	default:
		// Keyword or not, a document without a plate is interim proof.
		return types.RegistrationTemporary
	}
}

func findName(text string) *string {
	m := nameRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	tokens := strings.Fields(m[1])
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) > maxNameTokens {
		tokens = tokens[:maxNameTokens]
	}
	return types.Ptr(strings.Join(tokens, " "))
}

func submatch(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return nil
	}
	return types.Ptr(m[1])
}
