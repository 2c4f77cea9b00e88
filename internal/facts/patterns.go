// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package facts

import "regexp"

const (
	numericDate = `\d{2}[-/]\d{2}[-/]\d{4}`
	textualDate = `\d{1,2}[-\s][A-Za-z]{3}[-\s]\d{4}`
	anyDate     = `(?:` + numericDate + `|` + textualDate + `)`
)

var (
	tempKeywordRe = regexp.MustCompile(`(?i)(temporary\s*registration|temp\s*regn)`)

	// Standard plate: MH12AB1234. BH series: 22BH1234AA.
	plateRe   = regexp.MustCompile(`\b[A-Z]{2}[0-9]{1,2}[A-Z]{1,3}[0-9]{4}\b`)
	bhPlateRe = regexp.MustCompile(`\b[0-9]{2}BH[0-9]{4}[A-Z]{1,2}\b`)

	// VIN alphabet: uppercase letters and digits without I, O and Q.
	chassisRe = regexp.MustCompile(`\b[A-HJ-NPR-Z0-9]{17}\b`)

	nameRe = regexp.MustCompile(`(?i)(?:Received From|Customer Name|Name|Mr\.|Ms\.)[:\s.]*([A-Za-z\s.]+)`)

	regDateRe     = regexp.MustCompile(`(?i)(?:Registration|Regn|Reg\.)\s*Date[:\s]*(` + anyDate + `)`)
	receiptDateRe = regexp.MustCompile(`(?i)Receipt\s*date[:\s]*(` + anyDate + `)`)
	anyDateRe     = regexp.MustCompile(anyDate)
)

// maxNameTokens caps the captured customer name.
const maxNameTokens = 4
