// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rto-verifier/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show verification runs recorded in the ledger",
	Long: `History lists the runs recorded in the SQLite ledger, newest first.
With --run it prints the row verdicts of one run; with --chassis it prints
every verdict recorded for a chassis number across runs.`,
	PreRun: func(cmd *cobra.Command, args []string) {
		bindFlags(cmd, historyBindings)
	},
	RunE: runHistory,
}

var historyBindings = map[string]string{
	keyLedger: "ledger",
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Ledger.Path == "" {
		return fmt.Errorf("no ledger configured: set --ledger or ledger.path")
	}

	runID, _ := cmd.Flags().GetString("run")
	chassis, _ := cmd.Flags().GetString("chassis")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := ledger.Open(ctx, cfg.Ledger.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case runID != "":
		verdicts, err := store.Verdicts(ctx, runID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeOutput(os.Stdout, verdicts, true)
		}
		printVerdicts(verdicts)
	case chassis != "":
		verdicts, err := store.History(ctx, chassis)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeOutput(os.Stdout, verdicts, true)
		}
		printVerdicts(verdicts)
	default:
		runs, err := store.Runs(ctx, limit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeOutput(os.Stdout, runs, true)
		}
		printRuns(runs)
	}
	return nil
}

func printRuns(runs []ledger.Run) {
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return
	}
	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-24s  %5s  %5s  %7s  %4s  %7s\n",
		"Run", "Started", "Sheet", "Docs", "Rows", "Approve", "Hold", "Pending")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 124))
	for _, r := range runs {
		sheet := r.Sheet
		if len(sheet) > 24 {
			sheet = sheet[:21] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-24s  %5d  %5d  %7d  %4d  %7d\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), sheet,
			r.Documents, r.Rows, r.Approve, r.Hold, r.Pending)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
}

func printVerdicts(verdicts []ledger.Verdict) {
	if len(verdicts) == 0 {
		fmt.Println("No verdicts found.")
		return
	}
	fmt.Fprintf(os.Stdout, "%-5s  %-17s  %-24s  %-7s  %s\n",
		"Row", "Chassis", "Customer", "Status", "Reason")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, v := range verdicts {
		name := v.CustomerName
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-17s  %-24s  %-7s  %s\n",
			v.Row, v.Chassis, name, v.Status, v.Reason)
	}
}

func init() {
	historyCmd.Flags().String("ledger", "", "SQLite ledger file")
	historyCmd.Flags().String("run", "", "show the verdicts of one run")
	historyCmd.Flags().String("chassis", "", "show every verdict for a chassis number")
	historyCmd.Flags().Int("limit", 20, "maximum runs to list (0 for all)")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}
