// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/rto-verifier/internal/columns"
	"github.com/pdiddy/rto-verifier/internal/convert"
	"github.com/pdiddy/rto-verifier/internal/ledger"
	"github.com/pdiddy/rto-verifier/internal/sheet"
	"github.com/pdiddy/rto-verifier/internal/verify"
	"github.com/pdiddy/rto-verifier/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify --sheet vehicles.xlsx [documents...]",
	Short: "Verify spreadsheet rows against registration documents",
	Long: `Verify reads every document (PDF or text), extracts registration facts,
matches them to spreadsheet rows by chassis number and customer name, and
writes the annotated report. Documents are given as arguments or --docs
patterns; directories are searched recursively and patterns may use **.

The report keeps every spreadsheet row in order and adds the RTO status,
Remarks, Verification Date, Doc Vehicle Num and Reason columns. The report
format follows the --out extension: .xlsx (status cells colored), .csv or
.yaml.`,
	PreRun: func(cmd *cobra.Command, args []string) {
		bindFlags(cmd, verifyBindings)
	},
	RunE: runVerify,
}

// verifyBindings maps configuration keys to verify flags.
var verifyBindings = map[string]string{
	keyBackend:        "backend",
	keyWorkers:        "workers",
	keyColumns:        "columns",
	keyNewVehicleRule: "new-vehicle-rule",
	keyThreshold:      "threshold",
	keyLedger:         "ledger",
}

// newConverter builds the PDF text backend; tests swap it.
var newConverter = convert.New

// verifySummary is the --json output of verify.
type verifySummary struct {
	Report     string `json:"report"`
	RunID      string `json:"run_id,omitempty"`
	Documents  int    `json:"documents"`
	Unreadable int    `json:"unreadable"`
	Joinable   int    `json:"joinable"`
	Rows       int    `json:"rows"`
	Approve    int    `json:"approve"`
	Hold       int    `json:"hold"`
	Pending    int    `json:"pending"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sheetPath, _ := cmd.Flags().GetString("sheet")
	if sheetPath == "" {
		return fmt.Errorf("--sheet is required")
	}
	out, _ := cmd.Flags().GetString("out")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Progress goes to stderr when stdout carries JSON.
	var progress io.Writer = os.Stdout
	if jsonOutput {
		progress = os.Stderr
	}

	patterns, _ := cmd.Flags().GetStringSlice("docs")
	paths, err := convert.ExpandPaths(append(patterns, args...))
	if err != nil {
		return err
	}

	in, err := sheet.Read(sheetPath)
	if err != nil {
		return err
	}
	logger.Info("spreadsheet loaded",
		zap.String("sheet", sheetPath),
		zap.Int("rows", len(in.Rows)),
		zap.Int("columns", len(in.Headers)),
	)

	// A sheet without the required columns fails before any document is read.
	if _, err := columns.Resolve(in.Headers, cfg.Columns.Strategy); err != nil {
		return fmt.Errorf("resolving columns of %s: %w", in.Name, err)
	}

	conv, err := newConverter(ctx, cfg.Extraction.Backend)
	if err != nil {
		return err
	}
	docs, read, err := convert.ReadDocuments(ctx, conv, paths, cfg.Extraction.Workers, logger, progress)
	if err != nil {
		return err
	}

	res, err := verify.Run(ctx, verify.Input{Documents: docs, Sheet: in}, cfg, logger, progress)
	if err != nil {
		return err
	}

	if err := sheet.Write(out, res.Report); err != nil {
		return err
	}
	fmt.Fprintf(progress, "Report written to %s\n", out)

	tally := res.Report.Tally()
	summary := verifySummary{
		Report:     out,
		Documents:  len(docs),
		Unreadable: read.Failed,
		Joinable:   res.Extraction.Joinable,
		Rows:       len(res.Report.Rows),
		Approve:    tally[types.StatusApprove],
		Hold:       tally[types.StatusHold],
		Pending:    tally[types.StatusPending],
	}

	if cfg.Ledger.Path != "" {
		store, err := ledger.Open(ctx, cfg.Ledger.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		run, err := store.Record(ctx, filepath.Base(sheetPath), len(docs), res.Report)
		if err != nil {
			return err
		}
		summary.RunID = run.ID
		logger.Info("run recorded", zap.String("run", run.ID), zap.String("ledger", cfg.Ledger.Path))
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	return nil
}

func init() {
	verifyCmd.Flags().String("sheet", "", "spreadsheet of sold vehicles (.xlsx or .csv)")
	verifyCmd.Flags().StringSlice("docs", nil, "document files, directories or glob patterns (repeatable)")
	verifyCmd.Flags().String("out", "verification_report.xlsx", "report path (.xlsx, .csv or .yaml)")
	verifyCmd.Flags().Bool("json", false, "print a JSON run summary on stdout")

	verifyCmd.Flags().String("backend", "", "PDF text backend: native or pdftotext")
	verifyCmd.Flags().Int("workers", 0, "parallel document workers (default: number of CPUs)")
	verifyCmd.Flags().String("columns", "", "column resolution: strict or fuzzy")
	verifyCmd.Flags().String("new-vehicle-rule", "", "NEW vehicle classification: new-permanent or new-temporary-if-keyword")
	verifyCmd.Flags().Float64("threshold", types.DefaultMatchThreshold, "minimum name match ratio (0-1); 0 accepts any non-blank name")
	verifyCmd.Flags().String("ledger", "", "SQLite ledger file to record the run in")

	rootCmd.AddCommand(verifyCmd)
}

// bindFlags binds configuration keys to flags of the running command. A
// flag only overrides the config file and environment when it is set on the
// command line. Keys shared by several commands bind to the running one.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		_ = viper.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}
