// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps an optional SQLite audit trail of verification runs:
// one summary per run and the verdict of every row. Extraction results are
// not stored.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/rto-verifier/internal/columns"
	"github.com/pdiddy/rto-verifier/pkg/types"
)

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

// Run summarizes one verification run.
type Run struct {
	ID        string    `db:"id" json:"id" yaml:"id"`
	StartedAt time.Time `db:"started_at" json:"started_at" yaml:"started_at"`
	Sheet     string    `db:"sheet" json:"sheet" yaml:"sheet"`
	Documents int       `db:"documents" json:"documents" yaml:"documents"`
	Rows      int       `db:"row_count" json:"rows" yaml:"rows"`
	Approve   int       `db:"approve" json:"approve" yaml:"approve"`
	Hold      int       `db:"hold" json:"hold" yaml:"hold"`
	Pending   int       `db:"pending" json:"pending" yaml:"pending"`
}

// Verdict is the recorded outcome of one spreadsheet row.
type Verdict struct {
	RunID        string `db:"run_id" json:"-" yaml:"-"`
	Row          int    `db:"row_index" json:"row" yaml:"row"`
	Chassis      string `db:"chassis" json:"chassis" yaml:"chassis"`
	CustomerName string `db:"customer_name" json:"customer_name" yaml:"customer_name"`
	Status       string `db:"status" json:"status" yaml:"status"`
	Reason       string `db:"reason" json:"reason" yaml:"reason"`
	Remark       string `db:"remark" json:"remark" yaml:"remark"`
}

// Store wraps the ledger database.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the ledger at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ledger path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id         TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		sheet      TEXT NOT NULL,
		documents  INTEGER NOT NULL,
		row_count  INTEGER NOT NULL,
		approve    INTEGER NOT NULL,
		hold       INTEGER NOT NULL,
		pending    INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS verdicts (
		run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		row_index     INTEGER NOT NULL,
		chassis       TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		status        TEXT NOT NULL,
		reason        TEXT NOT NULL,
		remark        TEXT NOT NULL,
		PRIMARY KEY (run_id, row_index)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_verdicts_chassis ON verdicts(chassis)`,
}

// Record stores a run summary and every row verdict of rep in one
// transaction and returns the stored run.
func (s *Store) Record(ctx context.Context, sheet string, documents int, rep types.Report) (Run, error) {
	tally := rep.Tally()
	run := Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC().Truncate(time.Second),
		Sheet:     sheet,
		Documents: documents,
		Rows:      len(rep.Rows),
		Approve:   tally[types.StatusApprove],
		Hold:      tally[types.StatusHold],
		Pending:   tally[types.StatusPending],
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin run: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, `INSERT INTO runs
		(id, started_at, sheet, documents, row_count, approve, hold, pending)
		VALUES (:id, :started_at, :sheet, :documents, :row_count, :approve, :hold, :pending)`, run); err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}

	for i, row := range rep.Rows {
		v := Verdict{
			RunID:        run.ID,
			Row:          i + 1,
			Chassis:      strings.TrimSpace(row.Values[columns.Chassis]),
			CustomerName: row.Values[columns.CustomerName],
			Status:       string(row.Outcome.Status),
			Reason:       string(row.Outcome.Reason),
			Remark:       row.Outcome.Remark,
		}
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO verdicts
			(run_id, row_index, chassis, customer_name, status, reason, remark)
			VALUES (:run_id, :row_index, :chassis, :customer_name, :status, :reason, :remark)`, v); err != nil {
			return Run{}, fmt.Errorf("inserting verdict for row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit run: %w", err)
	}
	return run, nil
}

// Runs returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, sheet, documents, row_count, approve, hold, pending
		FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	var runs []Run
	if err := s.db.SelectContext(ctx, &runs, query, args...); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Verdicts returns the row verdicts of a run in row order.
func (s *Store) Verdicts(ctx context.Context, runID string) ([]Verdict, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID); err != nil {
		return nil, fmt.Errorf("looking up run %s: %w", runID, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	var verdicts []Verdict
	if err := s.db.SelectContext(ctx, &verdicts, `SELECT run_id, row_index, chassis, customer_name, status, reason, remark
		FROM verdicts WHERE run_id = ? ORDER BY row_index`, runID); err != nil {
		return nil, fmt.Errorf("listing verdicts of %s: %w", runID, err)
	}
	return verdicts, nil
}

// History returns every recorded verdict for a chassis number, newest run
// first.
func (s *Store) History(ctx context.Context, chassis string) ([]Verdict, error) {
	var verdicts []Verdict
	if err := s.db.SelectContext(ctx, &verdicts, `SELECT v.run_id, v.row_index, v.chassis, v.customer_name, v.status, v.reason, v.remark
		FROM verdicts v JOIN runs r ON r.id = v.run_id
		WHERE v.chassis = ?
		ORDER BY r.started_at DESC, r.rowid DESC, v.row_index`, strings.TrimSpace(chassis)); err != nil {
		return nil, fmt.Errorf("chassis history %s: %w", chassis, err)
	}
	return verdicts, nil
}
