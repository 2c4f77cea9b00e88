// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RegistrationType classifies whether a document evidences final or interim
// vehicle registration.
type RegistrationType string

const (
	RegistrationPermanent RegistrationType = "Permanent"
	RegistrationTemporary RegistrationType = "Temporary"
)

// Sentinel values for DocumentFact.VehicleNumber when no plate is printed.
const (
	VehicleNew      = "NEW"
	VehicleNotFound = "NotFound"
)

// Document is one uploaded document reduced to its text layer. Err records
// why the text could not be read; Text is empty in that case.
type Document struct {
	// Name is the file base name, used in logs and fact provenance.
	Name string `json:"name" yaml:"name"`

	// Path is the filesystem path the document was read from, if any.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Text is the full extracted text of every page, newline separated.
	Text string `json:"-" yaml:"-"`

	// Err is the read or conversion failure message. Empty on success.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// DocumentFact holds the structured facts pattern-matched out of one
// document. It is created once per document and never mutated.
type DocumentFact struct {
	// Source is the name of the document the facts came from.
	Source string `json:"source" yaml:"source"`

	// VehicleNumber is a plate number, VehicleNew or VehicleNotFound.
	VehicleNumber string `json:"vehicle_number" yaml:"vehicle_number"`

	// RegistrationType is derived from the vehicle number and keywords.
	RegistrationType RegistrationType `json:"registration_type" yaml:"registration_type"`

	// TempKeyword reports whether a temporary-registration phrase occurred.
	TempKeyword bool `json:"temp_keyword" yaml:"temp_keyword"`

	// ChassisNumber is the first VIN-shaped token. Nil means the document
	// cannot be joined by identifier.
	ChassisNumber *string `json:"chassis_number" yaml:"chassis_number"`

	// CustomerName is up to four tokens following a name label.
	CustomerName *string `json:"customer_name" yaml:"customer_name"`

	RegistrationDate *string `json:"registration_date" yaml:"registration_date"`
	ReceiptDate      *string `json:"receipt_date" yaml:"receipt_date"`

	// FallbackDate is the first date-shaped token, set only when neither
	// labelled date was found.
	FallbackDate *string `json:"fallback_date" yaml:"fallback_date"`
}

// HasChassis reports whether the fact is eligible for the identifier join.
func (f DocumentFact) HasChassis() bool {
	return f.ChassisNumber != nil && *f.ChassisNumber != ""
}

// Chassis returns the chassis number or "".
func (f DocumentFact) Chassis() string {
	return Deref(f.ChassisNumber)
}

// Name returns the customer name or "".
func (f DocumentFact) Name() string {
	return Deref(f.CustomerName)
}

// EmptyFact is the fact record of a document with no usable text.
func EmptyFact(source string) DocumentFact {
	return DocumentFact{
		Source:           source,
		VehicleNumber:    VehicleNotFound,
		RegistrationType: RegistrationTemporary,
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// Deref returns *s, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
