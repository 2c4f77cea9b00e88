// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rto-verifier/internal/report"
	"github.com/pdiddy/rto-verifier/pkg/types"
)

func TestFromRecords(t *testing.T) {
	tests := []struct {
		name    string
		records [][]string
		want    *types.Sheet
		wantErr error
	}{
		{
			name: "pads short rows and skips blank rows",
			records: [][]string{
				{"Sr", "Chassis number", "Customer Name"},
				{"1", "WVWZZZ1JZXW000001"},
				{"", " ", ""},
				{"2", "MA3EWDE1S00123456", "Priya Nair", "extra"},
			},
			want: &types.Sheet{
				Name:    "in.csv",
				Headers: []string{"Sr", "Chassis number", "Customer Name"},
				Rows: []types.Row{
					{"Sr": "1", "Chassis number": "WVWZZZ1JZXW000001", "Customer Name": ""},
					{"Sr": "2", "Chassis number": "MA3EWDE1S00123456", "Customer Name": "Priya Nair"},
				},
			},
		},
		{
			name: "duplicate header keeps first column",
			records: [][]string{
				{"Customer Name", "Chassis number", "Customer Name"},
				{"John Smith", "WVWZZZ1JZXW000001", "ignored"},
			},
			want: &types.Sheet{
				Name:    "in.csv",
				Headers: []string{"Customer Name", "Chassis number"},
				Rows: []types.Row{
					{"Customer Name": "John Smith", "Chassis number": "WVWZZZ1JZXW000001"},
				},
			},
		},
		{
			name: "blank header named by index",
			records: [][]string{
				{" Chassis number ", ""},
				{"X", "y"},
			},
			want: &types.Sheet{
				Name:    "in.csv",
				Headers: []string{"Chassis number", "Unnamed: 1"},
				Rows:    []types.Row{{"Chassis number": "X", "Unnamed: 1": "y"}},
			},
		},
		{
			name:    "no records",
			wantErr: ErrNoHeader,
		},
		{
			name:    "blank header row",
			records: [][]string{{"", ""}, {"a", "b"}},
			wantErr: ErrNoHeader,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromRecords("in.csv", tt.records)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromRecords mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicles.csv")
	content := "\ufeffSr,VIN Number,customer name\n1,WVWZZZ1JZXW000001,\"Smith, John\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "vehicles.csv", s.Name)
	assert.Equal(t, []string{"Sr", "VIN Number", "customer name"}, s.Headers)
	require.Len(t, s.Rows, 1)
	assert.Equal(t, "Smith, John", s.Rows[0]["customer name"])
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicles.xlsx")

	f := excelize.NewFile()
	first := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(first, "A1", &[]interface{}{"Sr", "Chassis number", "Customer Name", "Dealer"}))
	require.NoError(t, f.SetSheetRow(first, "A2", &[]interface{}{1, "WVWZZZ1JZXW000001", "John Smith"}))
	require.NoError(t, f.SetSheetRow(first, "A3", &[]interface{}{2, "MA3EWDE1S00123456", "Priya Nair", "Thane"}))
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	s, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sr", "Chassis number", "Customer Name", "Dealer"}, s.Headers)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, types.Row{"Sr": "1", "Chassis number": "WVWZZZ1JZXW000001", "Customer Name": "John Smith", "Dealer": ""}, s.Rows[0])
	assert.Equal(t, "Thane", s.Rows[1]["Dealer"])
}

func TestReadUnsupported(t *testing.T) {
	_, err := Read("vehicles.ods")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported spreadsheet format")

	_, err = Read(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func testReport() types.Report {
	cols := report.Columns([]string{"Chassis number", "Customer Name", "Sr"})
	row := func(chassis, name string, status types.Status, reason types.ReasonCode) types.ReportRow {
		out := types.Outcome{Status: status, Remark: "r-" + string(status), Reason: reason}
		return types.ReportRow{
			Values: types.Row{
				"Chassis number":        chassis,
				"Customer Name":         name,
				"Sr":                    "1",
				report.Status:           string(status),
				report.Remarks:          out.Remark,
				report.VerificationDate: "",
				report.VehicleNumber:    types.VehicleNotFound,
				report.Reason:           string(reason),
			},
			Outcome: out,
		}
	}
	return types.Report{
		Columns: cols,
		Rows: []types.ReportRow{
			row("WVWZZZ1JZXW000001", "John Smith", types.StatusApprove, types.ReasonNone),
			row("MA3EWDE1S00123456", "Priya Nair", types.StatusHold, types.ReasonTempRegistration),
			row("", "Kiran Rao", types.StatusPending, types.ReasonNoDocumentFound),
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.xlsx")
	rep := testReport()
	require.NoError(t, Write(path, rep))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ReportSheet}, f.GetSheetList())
	rows, err := f.GetRows(ReportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, rep.Columns, rows[0])
	assert.Equal(t, "Chassis number", rows[0][0])
	assert.Equal(t, "RTO status", rows[0][2])
	assert.Equal(t, "Approve", rows[1][2])
	assert.Equal(t, "Hold", rows[2][2])

	styles := make(map[int]bool)
	for r := 2; r <= 4; r++ {
		cell, err := excelize.CoordinatesToCellName(3, r)
		require.NoError(t, err)
		id, err := f.GetCellStyle(ReportSheet, cell)
		require.NoError(t, err)
		assert.NotZero(t, id, "status cell %s has no fill", cell)
		styles[id] = true
	}
	assert.Len(t, styles, 3, "each status gets its own fill")

	id, err := f.GetCellStyle(ReportSheet, "A2")
	require.NoError(t, err)
	assert.Zero(t, id, "non-status cells are not filled")
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	rep := testReport()
	require.NoError(t, Write(path, rep))

	s, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, rep.Columns, s.Headers)
	require.Len(t, s.Rows, 3)
	for i, row := range rep.Rows {
		if diff := cmp.Diff(row.Values, s.Rows[i]); diff != "" {
			t.Errorf("row %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	rep := testReport()
	require.NoError(t, Write(path, rep))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "- Chassis number: WVWZZZ1JZXW000001\n"), "keys follow column order:\n%s", data)

	var got []map[string]string
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Pending", got[2][report.Status])
	assert.Equal(t, "NO_DOCUMENT_FOUND", got[2][report.Reason])
}

func TestWriteUnsupported(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "report.pdf"), testReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}
