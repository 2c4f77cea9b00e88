// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Status is the verdict recorded in the RTO status column.
type Status string

const (
	StatusApprove Status = "Approve"
	StatusHold    Status = "Hold"
	StatusPending Status = "Pending"

	// Deprecated: no rule produces StatusReject; kept so older reports
	// still render.
	StatusReject Status = "Reject"

	// Deprecated: no rule produces StatusIneligible.
	StatusIneligible Status = "Ineligible"
)

// Color names the presentation color for a status.
func (s Status) Color() string {
	switch s {
	case StatusApprove:
		return "green"
	case StatusHold:
		return "yellow"
	case StatusPending:
		return "blue"
	case StatusReject, StatusIneligible:
		return "red"
	}
	return ""
}

// Fill returns the RGB hex cell fill for a status, or "" for none.
func (s Status) Fill() string {
	switch s.Color() {
	case "green":
		return "C6EFCE"
	case "yellow":
		return "FFEB9C"
	case "blue":
		return "BDD7EE"
	case "red":
		return "FFC7CE"
	}
	return ""
}

// ReasonCode is the machine-readable category behind a verdict.
type ReasonCode string

const (
	ReasonNone                     ReasonCode = "None"
	ReasonNameMatchChassisMismatch ReasonCode = "NAME_MATCH_CHASSIS_MISMATCH"
	ReasonNoDocumentFound          ReasonCode = "NO_DOCUMENT_FOUND"
	ReasonTempRegistration         ReasonCode = "TEMP_REGISTRATION"
	ReasonNameMismatch             ReasonCode = "NAME_MISMATCH"
	ReasonUnknownError             ReasonCode = "UNKNOWN_ERROR"
)

// Outcome is the verification result for one spreadsheet row.
type Outcome struct {
	Status Status     `json:"status" yaml:"status"`
	Remark string     `json:"remark" yaml:"remark"`
	Reason ReasonCode `json:"reason" yaml:"reason"`
}
