// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report merges verification outcomes back into the shape of the
// input spreadsheet.
package report

import (
	"strings"

	"github.com/pdiddy/rto-verifier/internal/columns"
	"github.com/pdiddy/rto-verifier/internal/join"
	"github.com/pdiddy/rto-verifier/pkg/types"
)

// Output headers added to every row.
const (
	VerificationDate = "Verification Date"
	VehicleNumber    = "Doc Vehicle Num"
	Status           = "RTO status"
	Remarks          = "Remarks"
	Reason           = "Reason"
)

// leading columns open the report in this order.
var leading = []string{columns.Chassis, columns.CustomerName, Status, Remarks}

// VerificationDateOf picks the date shown for a fact: the registration date
// if present, else the receipt date, else the fallback date.
func VerificationDateOf(f *types.DocumentFact) string {
	if f == nil {
		return ""
	}
	if d := types.Deref(f.RegistrationDate); strings.TrimSpace(d) != "" {
		return d
	}
	if d := types.Deref(f.ReceiptDate); strings.TrimSpace(d) != "" {
		return d
	}
	return types.Deref(f.FallbackDate)
}

// Assemble builds the report from a canonicalized sheet, its join pairs and
// one outcome per pair. pairs and outcomes must be index-aligned with
// sheet.Rows.
func Assemble(sheet *types.Sheet, pairs []join.Pair, outcomes []types.Outcome) types.Report {
	rep := types.Report{Columns: Columns(sheet.Headers)}
	rep.Rows = make([]types.ReportRow, len(pairs))

	for i, p := range pairs {
		values := make(types.Row, len(rep.Columns))
		for _, h := range sheet.Headers {
			values[h] = p.Row[h]
		}

		vehicle := types.VehicleNotFound
		if p.Fact != nil {
			vehicle = p.Fact.VehicleNumber
		}
		out := outcomes[i]

		values[VerificationDate] = VerificationDateOf(p.Fact)
		values[VehicleNumber] = vehicle
		values[Status] = string(out.Status)
		values[Remarks] = out.Remark
		values[Reason] = string(out.Reason)

		rep.Rows[i] = types.ReportRow{Values: values, Outcome: out}
	}
	return rep
}

// Columns returns the report column order for the given input headers: the
// leading columns, then the remaining input columns in input order, then
// the appended verification columns.
func Columns(headers []string) []string {
	cols := append([]string(nil), leading...)
	seen := make(map[string]bool, len(headers)+len(leading))
	for _, c := range leading {
		seen[c] = true
	}
	for _, h := range headers {
		if !seen[h] {
			cols = append(cols, h)
			seen[h] = true
		}
	}
	for _, h := range []string{VerificationDate, VehicleNumber, Reason} {
		if !seen[h] {
			cols = append(cols, h)
			seen[h] = true
		}
	}
	return cols
}
