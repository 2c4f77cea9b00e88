// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package decide maps a spreadsheet row and its joined document facts to a
// verification outcome. Rules are evaluated in order and the first match
// wins; every input resolves to an outcome.
package decide

import (
	"github.com/pdiddy/rto-verifier/internal/namematch"
	"github.com/pdiddy/rto-verifier/pkg/types"
)

// Remarks written to the report.
const (
	RemarkApproved     = "Approved"
	RemarkIncomplete   = "Incomplete Documentation provided - RTO challan/VAHAN screenshot/Tax paid receipt is not attached."
	RemarkInconclusive = "Inconclusive Documentation provided - RTO challan/VAHAN screenshot/Tax paid receipt attached is incorrect"
	RemarkManual       = "Please verify manually"
)

// Engine applies the decision rules.
type Engine struct {
	Matcher namematch.Matcher
}

// New returns an Engine matching names at threshold.
func New(threshold float64) Engine {
	return Engine{Matcher: namematch.New(threshold)}
}

// Decide returns the outcome for a row with customer name name, its joined
// fact (nil when the chassis join failed) and the full fact pool used for
// the fallback name search.
func (e Engine) Decide(name string, joined *types.DocumentFact, pool []types.DocumentFact) types.Outcome {
	if joined == nil || !joined.HasChassis() {
		if _, ok := e.FallbackMatch(name, pool); ok {
			return types.Outcome{Status: types.StatusHold, Remark: RemarkInconclusive, Reason: types.ReasonNameMatchChassisMismatch}
		}
		return types.Outcome{Status: types.StatusPending, Remark: RemarkManual, Reason: types.ReasonNoDocumentFound}
	}

	nameOK := e.Matcher.Match(name, joined.Name())
	switch {
	case nameOK && joined.RegistrationType == types.RegistrationPermanent:
		return types.Outcome{Status: types.StatusApprove, Remark: RemarkApproved, Reason: types.ReasonNone}
	case nameOK && joined.RegistrationType == types.RegistrationTemporary:
		return types.Outcome{Status: types.StatusHold, Remark: RemarkIncomplete, Reason: types.ReasonTempRegistration}
	case !nameOK:
		return types.Outcome{Status: types.StatusHold, Remark: RemarkInconclusive, Reason: types.ReasonNameMismatch}
	}
	return types.Outcome{Status: types.StatusPending, Remark: RemarkManual, Reason: types.ReasonUnknownError}
}

// FallbackMatch scans pool in order and returns the index of the first fact
// whose customer name matches name.
func (e Engine) FallbackMatch(name string, pool []types.DocumentFact) (int, bool) {
	for i := range pool {
		if e.Matcher.Match(name, pool[i].Name()) {
			return i, true
		}
	}
	return -1, false
}
