// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rto-verifier/internal/columns"
	"github.com/pdiddy/rto-verifier/internal/convert"
	"github.com/pdiddy/rto-verifier/pkg/types"
)

// countingConverter returns fixed text and records how often it is built
// and called.
type countingConverter struct {
	built int
	calls int
}

func (c *countingConverter) Convert(context.Context, string) (string, error) {
	c.calls++
	return "Chassis: WVWZZZ1JZXW000001 Customer Name: John Smith", nil
}

func stubConverter(t *testing.T) *countingConverter {
	t.Helper()
	conv := &countingConverter{}
	orig := newConverter
	newConverter = func(context.Context, types.ConversionBackend) (convert.Converter, error) {
		conv.built++
		return conv, nil
	}
	t.Cleanup(func() { newConverter = orig })
	return conv
}

// verifyTestCmd carries the flags runVerify reads.
func verifyTestCmd(sheetPath, out string) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("sheet", sheetPath, "")
	cmd.Flags().String("out", out, "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().StringSlice("docs", nil, "")
	cmd.SetContext(context.Background())
	return cmd
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRunVerifyMissingColumnSkipsConversion(t *testing.T) {
	resetViper(t)
	conv := stubConverter(t)
	dir := t.TempDir()
	sheetPath := writeFile(t, dir, "vehicles.csv", "Vehicle,Amount\nMH12AB1234,4500\n")
	doc := writeFile(t, dir, "receipt.pdf", "%PDF-1.7")
	out := filepath.Join(dir, "report.csv")

	err := runVerify(verifyTestCmd(sheetPath, out), []string{doc})

	var missing *columns.MissingColumnError
	require.True(t, errors.As(err, &missing), "err = %v", err)
	assert.Zero(t, conv.built)
	assert.Zero(t, conv.calls)
	assert.NoFileExists(t, out)
}

func TestRunVerifyWritesReport(t *testing.T) {
	resetViper(t)
	conv := stubConverter(t)
	dir := t.TempDir()
	sheetPath := writeFile(t, dir, "vehicles.csv", "Chassis Number,Customer Name\nWVWZZZ1JZXW000001,John Smith\n")
	doc := writeFile(t, dir, "receipt.pdf", "%PDF-1.7")
	out := filepath.Join(dir, "report.csv")

	require.NoError(t, runVerify(verifyTestCmd(sheetPath, out), []string{doc}))

	assert.Equal(t, 1, conv.built)
	assert.Equal(t, 1, conv.calls)
	assert.FileExists(t, out)
}
