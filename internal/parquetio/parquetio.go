// Package parquetio serializes normalized tables to Parquet files using
// github.com/parquet-go/parquet-go. Parquet is the fast-load companion
// format of the download cache: a parsed table is written once and reloaded
// on later requests without touching the raw file again.
package parquetio

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/helioget/helioget/schema"
)

// tableRow is one cell of a table in long form: (time, column, value) plus
// the optional composite axes. Long form lets a single static row struct
// hold any column set, which is what struct-tag schema inference needs.
type tableRow struct {
	// TimeNs is the observation timestamp in Unix nanoseconds
	TimeNs int64 `parquet:"time_ns,snappy"`

	// Energy is the energy axis value for composite tables (nullable)
	Energy *float64 `parquet:"energy,optional,snappy"`

	// Angle is the angle axis value for composite tables (nullable)
	Angle *float64 `parquet:"angle,optional,snappy"`

	// Column is the name of the column this cell belongs to
	Column string `parquet:"column,snappy"`

	// Unit is the physical unit label of the column (nullable)
	Unit *string `parquet:"unit,optional,snappy"`

	// Value is the cell value; NaN encodes missing data
	Value float64 `parquet:"value,snappy"`
}

// WriteTable writes a table to a Parquet file at outputPath.
func WriteTable(t *schema.Table, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[tableRow](file)

	rows := make([]tableRow, 0, t.Len()*len(t.Columns()))
	times := t.Times()
	energy := t.EnergyAxis()
	angle := t.AngleAxis()
	for _, col := range t.Columns() {
		vals, err := t.Quantity(col)
		if err != nil {
			return err
		}
		var unit *string
		if u := t.Unit(col); u != "" {
			unit = &u
		}
		for i := range vals {
			row := tableRow{
				TimeNs: times[i].UnixNano(),
				Column: col,
				Unit:   unit,
				Value:  vals[i],
			}
			if t.Composite() {
				row.Energy = &energy[i]
				row.Angle = &angle[i]
			}
			rows = append(rows, row)
		}
	}

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ReadTable reads a table back from a Parquet file written by WriteTable.
func ReadTable(inputPath string) (*schema.Table, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	// The parquet reader panics on files without valid framing, so check the
	// trailing magic up front. Truncated writes fail here instead.
	if err := checkMagic(file); err != nil {
		return nil, err
	}

	reader := parquet.NewGenericReader[tableRow](file)
	defer func() { _ = reader.Close() }()

	var all []tableRow
	buf := make([]tableRow, 1024)
	for {
		n, err := reader.Read(buf)
		all = append(all, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	return assemble(all)
}

// checkMagic verifies the file carries the parquet trailer magic.
func checkMagic(file *os.File) error {
	info, err := file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < 8 {
		return fmt.Errorf("file too small to be parquet (%d bytes)", info.Size())
	}
	magic := make([]byte, 4)
	if _, err := file.ReadAt(magic, info.Size()-4); err != nil {
		return err
	}
	if string(magic) != "PAR1" {
		return fmt.Errorf("missing parquet magic trailer")
	}
	return nil
}

// assemble rebuilds a table from long-form rows. Cells are grouped by column
// in file order; the time axis and composite axes come from the first
// column's cells, which cover every row exactly once.
func assemble(rows []tableRow) (*schema.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parquet file holds no rows")
	}

	var columns []string
	units := make(map[string]string)
	cells := make(map[string][]tableRow)
	for _, r := range rows {
		if _, ok := cells[r.Column]; !ok {
			columns = append(columns, r.Column)
			if r.Unit != nil {
				units[r.Column] = *r.Unit
			}
		}
		cells[r.Column] = append(cells[r.Column], r)
	}

	first := cells[columns[0]]
	n := len(first)
	for _, col := range columns {
		if len(cells[col]) != n {
			return nil, fmt.Errorf("column %q has %d cells, expected %d", col, len(cells[col]), n)
		}
	}

	composite := first[0].Energy != nil
	var t *schema.Table
	if composite {
		t = schema.NewCompositeTable(columns...)
	} else {
		t = schema.NewTable(columns...)
	}
	t.SetUnits(units)

	values := make([]float64, len(columns))
	for i := 0; i < n; i++ {
		ts := time.Unix(0, first[i].TimeNs).UTC()
		for j, col := range columns {
			values[j] = cells[col][i].Value
		}
		if composite {
			if err := t.AddCompositeRow(ts, *first[i].Energy, *first[i].Angle, values...); err != nil {
				return nil, err
			}
		} else {
			if err := t.AddRow(ts, values...); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}
