// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/rto-verifier/pkg/types"
)

// Configuration keys shared by the config file, RTO_VERIFIER_* environment
// variables and command flags.
const (
	keyBackend        = "extraction.backend"
	keyWorkers        = "extraction.workers"
	keyNewVehicleRule = "extraction.new_vehicle_rule"
	keyColumns        = "columns.strategy"
	keyThreshold      = "matching.threshold"
	keyLedger         = "ledger.path"
	keyLogLevel       = "log.level"
	keyLogFormat      = "log.format"
)

func setDefaults() {
	def := types.DefaultVerifyConfig()
	viper.SetDefault(keyBackend, string(def.Extraction.Backend))
	viper.SetDefault(keyWorkers, def.Extraction.Workers)
	viper.SetDefault(keyNewVehicleRule, string(def.Extraction.NewVehicleRule))
	viper.SetDefault(keyColumns, string(def.Columns.Strategy))
	viper.SetDefault(keyThreshold, def.Matching.MinRatio())
	viper.SetDefault(keyLedger, def.Ledger.Path)
	viper.SetDefault(keyLogLevel, def.Log.Level)
	viper.SetDefault(keyLogFormat, def.Log.Format)
}

// loadConfig assembles the run configuration from viper and validates it.
func loadConfig() (types.VerifyConfig, error) {
	cfg := types.VerifyConfig{
		Extraction: types.ExtractionConfig{
			Backend:        types.ConversionBackend(viper.GetString(keyBackend)),
			Workers:        viper.GetInt(keyWorkers),
			NewVehicleRule: types.NewVehicleRule(viper.GetString(keyNewVehicleRule)),
		},
		Columns:  types.ColumnConfig{Strategy: types.ColumnStrategy(viper.GetString(keyColumns))},
		Matching: types.MatchingConfig{Threshold: types.Ptr(viper.GetFloat64(keyThreshold))},
		Ledger:   types.LedgerConfig{Path: viper.GetString(keyLedger)},
		Log: types.LogConfig{
			Level:  viper.GetString(keyLogLevel),
			Format: viper.GetString(keyLogFormat),
		},
	}
	if err := cfg.Validate(); err != nil {
		return types.VerifyConfig{}, err
	}
	return cfg, nil
}
