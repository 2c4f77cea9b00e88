// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rto-verifier/internal/convert"
	"github.com/pdiddy/rto-verifier/internal/facts"
)

var extractCmd = &cobra.Command{
	Use:   "extract [documents...]",
	Short: "Print the facts extracted from registration documents",
	Long: `Extract reads the given documents and prints the vehicle number,
registration type, chassis number, customer name and dates found in each,
as YAML (default) or JSON. Use it to check why a document did not match a
spreadsheet row.`,
	Args: cobra.MinimumNArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		bindFlags(cmd, extractBindings)
	},
	RunE: runExtract,
}

var extractBindings = map[string]string{
	keyBackend:        "backend",
	keyWorkers:        "workers",
	keyNewVehicleRule: "new-vehicle-rule",
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	paths, err := convert.ExpandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents match %v", args)
	}

	conv, err := newConverter(ctx, cfg.Extraction.Backend)
	if err != nil {
		return err
	}
	docs, _, err := convert.ReadDocuments(ctx, conv, paths, cfg.Extraction.Workers, logger, os.Stderr)
	if err != nil {
		return err
	}
	opts := facts.Options{NewVehicleRule: cfg.Extraction.NewVehicleRule}
	all, _, err := facts.ExtractAll(ctx, docs, opts, cfg.Extraction.Workers, logger, os.Stderr)
	if err != nil {
		return err
	}

	return writeOutput(os.Stdout, all, jsonOutput)
}

func writeOutput(w io.Writer, v interface{}, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(v)
}

func init() {
	extractCmd.Flags().Bool("json", false, "print JSON instead of YAML")
	extractCmd.Flags().String("backend", "", "PDF text backend: native or pdftotext")
	extractCmd.Flags().Int("workers", 0, "parallel document workers (default: number of CPUs)")
	extractCmd.Flags().String("new-vehicle-rule", "", "NEW vehicle classification: new-permanent or new-temporary-if-keyword")

	rootCmd.AddCommand(extractCmd)
}
