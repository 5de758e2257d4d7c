package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/schema"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// maxTableRows caps how many rows the human-readable table shows. CSV and
// JSON output always carry the full result.
const maxTableRows = 40

// WriteTableResults outputs a loaded data table, dispatching based on the output format configured.
func WriteTableResults(t *schema.Table, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeTableJSONResults(t, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeTableCSVResults(t, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDataTable(t, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeTableJSONResults handles opening the file and calling the JSON writer.
func writeTableJSONResults(t *schema.Table, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForTable(w, t)
	}, "Wrote JSON")
}

// writeTableCSVResults handles opening the file and calling the CSV writer.
func writeTableCSVResults(t *schema.Table, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForTable(w, t, fmtFloat)
	}, "Wrote CSV")
}

// headerLabel renders a column header with its unit suffix, e.g. "bz_gse [nT]".
func headerLabel(t *schema.Table, col string) string {
	if unit := t.Unit(col); unit != "" {
		return fmt.Sprintf("%s [%s]", col, unit)
	}
	return col
}

// writeDataTable generates and writes the human-readable table.
func writeDataTable(t *schema.Table, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	columns := t.Columns()
	shown := columns
	maxCols := GetMaxTableColumns(cfg)
	if len(shown) > maxCols {
		shown = shown[:maxCols]
	}

	// 1. Define Headers
	headers := []string{"Time"}
	if t.Composite() {
		headers = append(headers, "Energy", "Angle")
	}
	for _, c := range shown {
		headers = append(headers, headerLabel(t, c))
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nan := func(s string) string { return s }
	if cfg.UseColors {
		yellow := color.New(color.FgYellow).SprintFunc()
		nan = func(s string) string { return yellow(s) }
	}
	formatCell := func(v float64) string {
		if math.IsNaN(v) {
			return nan("NaN")
		}
		return fmtFloat(v)
	}

	// 3. Populate Rows
	times := t.Times()
	rows := len(times)
	if rows > maxTableRows {
		rows = maxTableRows
	}
	values, err := columnValues(t, shown)
	if err != nil {
		return err
	}
	var data [][]string
	for i := 0; i < rows; i++ {
		row := []string{times[i].UTC().Format(schema.DateTimeFormat)}
		if t.Composite() {
			row = append(row, formatCell(t.EnergyAxis()[i]), formatCell(t.AngleAxis()[i]))
		}
		for _, vals := range values {
			row = append(row, formatCell(vals[i]))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if t.Len() > rows {
		if _, err := fmt.Fprintf(writer, "... %d more rows (use --output csv or json for the full result)\n", t.Len()-rows); err != nil {
			return err
		}
	}
	if len(columns) > len(shown) {
		if _, err := fmt.Fprintf(writer, "... %d more columns not shown (increase --width or use --output csv)\n", len(columns)-len(shown)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Loaded %d rows, %d columns in %v with %d workers\n", t.Len(), len(columns), duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForTable writes the full table in CSV format. Missing values
// are written as empty fields.
func writeCSVResultsForTable(w io.Writer, t *schema.Table, fmtFloat func(float64) string) error {
	header := []string{"time"}
	if t.Composite() {
		header = append(header, "energy", "angle")
	}
	columns := t.Columns()
	header = append(header, columns...)

	values, err := columnValues(t, columns)
	if err != nil {
		return err
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		field := func(v float64) string {
			if math.IsNaN(v) {
				return ""
			}
			return fmtFloat(v)
		}
		times := t.Times()
		for i := range times {
			rec := []string{times[i].UTC().Format(schema.DateTimeFormat)}
			if t.Composite() {
				rec = append(rec, field(t.EnergyAxis()[i]), field(t.AngleAxis()[i]))
			}
			for _, vals := range values {
				rec = append(rec, field(vals[i]))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForTable writes the full table in JSON format. Missing
// values become nulls since NaN has no JSON representation.
func writeJSONResultsForTable(w io.Writer, t *schema.Table) error {
	// 1. Prepare the data structure for JSON with one object per row
	jsonValue := func(v float64) any {
		if math.IsNaN(v) {
			return nil
		}
		return v
	}

	columns := t.Columns()
	values, err := columnValues(t, columns)
	if err != nil {
		return err
	}
	times := t.Times()
	output := make([]map[string]any, len(times))
	for i := range times {
		row := make(map[string]any, len(columns)+3)
		row["time"] = times[i].UTC().Format(schema.DateTimeFormat)
		if t.Composite() {
			row["energy"] = jsonValue(t.EnergyAxis()[i])
			row["angle"] = jsonValue(t.AngleAxis()[i])
		}
		for j, c := range columns {
			row[c] = jsonValue(values[j][i])
		}
		output[i] = row
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// columnValues resolves the value slices for the named columns once, so row
// loops don't pay a map lookup per cell.
func columnValues(t *schema.Table, columns []string) ([][]float64, error) {
	values := make([][]float64, len(columns))
	for i, c := range columns {
		vals, err := t.Quantity(c)
		if err != nil {
			return nil, err
		}
		values[i] = vals
	}
	return values, nil
}
