// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"runtime"
)

// NewVehicleRule decides how a document whose vehicle number is the NEW
// sentinel is classified when a temporary-registration keyword is present.
type NewVehicleRule string

const (
	// NewAlwaysPermanent classifies NEW as Permanent regardless of keywords.
	NewAlwaysPermanent NewVehicleRule = "new-permanent"

	// NewTemporaryIfKeyword classifies NEW as Temporary when the temporary
	// keyword occurs, Permanent otherwise.
	NewTemporaryIfKeyword NewVehicleRule = "new-temporary-if-keyword"
)

// ConversionBackend identifies the PDF text extraction tool.
type ConversionBackend string

const (
	BackendNative    ConversionBackend = "native"
	BackendPdftotext ConversionBackend = "pdftotext"
)

// ColumnStrategy selects how the chassis and name columns are located.
type ColumnStrategy string

const (
	ColumnsStrict ColumnStrategy = "strict"
	ColumnsFuzzy  ColumnStrategy = "fuzzy"
)

// ExtractionConfig holds settings for document reading and fact extraction.
type ExtractionConfig struct {
	// Backend selects the PDF text tool: native or pdftotext.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// Workers bounds parallel document processing (default NumCPU).
	Workers int `json:"workers" yaml:"workers"`

	// NewVehicleRule is the NEW-sentinel classification rule.
	NewVehicleRule NewVehicleRule `json:"new_vehicle_rule" yaml:"new_vehicle_rule"`
}

// ColumnConfig holds settings for spreadsheet column resolution.
type ColumnConfig struct {
	Strategy ColumnStrategy `json:"strategy" yaml:"strategy"`
}

// DefaultMatchThreshold is the name match threshold used when none is set.
const DefaultMatchThreshold = 0.5

// MatchingConfig holds settings for customer name matching.
type MatchingConfig struct {
	// Threshold is the minimum matched share of document name tokens, in
	// [0,1]. Nil means DefaultMatchThreshold; 0 accepts any name with tokens.
	Threshold *float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// MinRatio returns the configured threshold or DefaultMatchThreshold.
func (m MatchingConfig) MinRatio() float64 {
	if m.Threshold == nil {
		return DefaultMatchThreshold
	}
	return *m.Threshold
}

// LedgerConfig holds settings for the optional run ledger.
type LedgerConfig struct {
	// Path is the SQLite database file. Empty disables the ledger.
	Path string `json:"path" yaml:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is json or console.
	Format string `json:"format" yaml:"format"`
}

// VerifyConfig groups the settings of one verification run.
type VerifyConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Columns    ColumnConfig     `json:"columns" yaml:"columns"`
	Matching   MatchingConfig   `json:"matching" yaml:"matching"`
	Ledger     LedgerConfig     `json:"ledger" yaml:"ledger"`
	Log        LogConfig        `json:"log" yaml:"log"`
}

// DefaultVerifyConfig returns the settings used when nothing is configured.
func DefaultVerifyConfig() VerifyConfig {
	return VerifyConfig{
		Extraction: ExtractionConfig{
			Backend:        BackendNative,
			Workers:        runtime.NumCPU(),
			NewVehicleRule: NewAlwaysPermanent,
		},
		Columns:  ColumnConfig{Strategy: ColumnsStrict},
		Matching: MatchingConfig{Threshold: Ptr(DefaultMatchThreshold)},
		Log:      LogConfig{Level: "info", Format: "console"},
	}
}

// Validate fills unset values with defaults and rejects unknown enum values
// and out-of-range thresholds.
func (c *VerifyConfig) Validate() error {
	def := DefaultVerifyConfig()
	if c.Extraction.Backend == "" {
		c.Extraction.Backend = def.Extraction.Backend
	}
	if c.Extraction.Workers <= 0 {
		c.Extraction.Workers = def.Extraction.Workers
	}
	if c.Extraction.NewVehicleRule == "" {
		c.Extraction.NewVehicleRule = def.Extraction.NewVehicleRule
	}
	if c.Columns.Strategy == "" {
		c.Columns.Strategy = def.Columns.Strategy
	}
	if c.Matching.Threshold == nil {
		c.Matching.Threshold = def.Matching.Threshold
	}

	switch c.Extraction.Backend {
	case BackendNative, BackendPdftotext:
	default:
		return fmt.Errorf("unsupported backend %q: use native or pdftotext", c.Extraction.Backend)
	}
	switch c.Extraction.NewVehicleRule {
	case NewAlwaysPermanent, NewTemporaryIfKeyword:
	default:
		return fmt.Errorf("unsupported new vehicle rule %q: use %s or %s",
			c.Extraction.NewVehicleRule, NewAlwaysPermanent, NewTemporaryIfKeyword)
	}
	switch c.Columns.Strategy {
	case ColumnsStrict, ColumnsFuzzy:
	default:
		return fmt.Errorf("unsupported column strategy %q: use strict or fuzzy", c.Columns.Strategy)
	}
	if t := *c.Matching.Threshold; t < 0 || t > 1 {
		return fmt.Errorf("matching threshold %v out of range [0,1]", t)
	}
	return nil
}
