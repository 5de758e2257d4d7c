package outwriter

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outputConfig(mode schema.OutputMode, file string) *contract.Config {
	return &contract.Config{
		Output:     mode,
		OutputFile: file,
		Precision:  2,
		Width:      120,
		Workers:    1,
	}
}

func renderTable(t *testing.T) *schema.Table {
	t.Helper()
	tbl := schema.NewTable("bx_gse", "flow_speed")
	tbl.SetUnits(map[string]string{"bx_gse": "nT", "flow_speed": "km/s"})
	base := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tbl.AddRow(base, 1.5, 410.0))
	require.NoError(t, tbl.AddRow(base.Add(time.Hour), math.NaN(), 415.0))
	return tbl
}

func TestWriteTableCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	cfg := outputConfig(schema.CSVOut, out)

	require.NoError(t, WriteTableResults(renderTable(t), cfg, time.Second))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "time,bx_gse,flow_speed", lines[0])
	assert.Equal(t, "2020-01-01T00:00:00Z,1.50,410.00", lines[1])
	assert.Equal(t, "2020-01-01T01:00:00Z,,415.00", lines[2], "NaN becomes an empty CSV field")
}

func TestWriteTableJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	cfg := outputConfig(schema.JSONOut, out)

	require.NoError(t, WriteTableResults(renderTable(t), cfg, time.Second))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "2020-01-01T00:00:00Z", rows[0]["time"])
	assert.Equal(t, 1.5, rows[0]["bx_gse"])
	assert.Nil(t, rows[1]["bx_gse"], "NaN becomes a JSON null")
	assert.Equal(t, 415.0, rows[1]["flow_speed"])
}

func TestWriteTableText(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")
	cfg := outputConfig(schema.TextOut, out)

	require.NoError(t, WriteTableResults(renderTable(t), cfg, time.Second))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, "bx_gse [nT]", "headers carry unit labels")
	assert.Contains(t, text, "NaN")
	assert.Contains(t, text, "Loaded 2 rows, 2 columns")
}

func TestGetMaxTableColumns(t *testing.T) {
	cfg := &contract.Config{Width: 120, Precision: 2}
	assert.Equal(t, 6, GetMaxTableColumns(cfg))

	cfg.Width = 30
	assert.Equal(t, 1, GetMaxTableColumns(cfg), "at least one data column is always shown")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
}

func TestWriteDatasetListCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "datasets.csv")
	cfg := outputConfig(schema.CSVOut, out)

	entries := []DatasetEntry{
		{Key: "omni/hourly", Granularity: "yearly", Source: "https://example.com/omni", Doc: "OMNI2 hourly"},
	}
	require.NoError(t, WriteDatasetList(entries, cfg))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "omni/hourly,yearly,https://example.com/omni,OMNI2 hourly")
}
