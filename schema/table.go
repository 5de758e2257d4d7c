package schema

import (
	"fmt"
	"math"
	"time"
)

// Table is the normalized tabular time series every parser produces and the
// pipeline returns: an ordered set of named float64 columns over a time
// axis. Missing values are NaN. Distribution-function products additionally
// carry per-row energy and angle axes, forming a composite
// (time, energy, angle) key.
type Table struct {
	columns []string
	data    map[string][]float64
	times   []time.Time
	energy  []float64 // nil unless composite
	angle   []float64 // nil unless composite
	units   map[string]string
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		data:    make(map[string][]float64, len(columns)),
		units:   make(map[string]string),
	}
	for _, c := range columns {
		t.data[c] = nil
	}
	return t
}

// NewCompositeTable creates an empty table keyed by (time, energy, angle).
func NewCompositeTable(columns ...string) *Table {
	t := NewTable(columns...)
	t.energy = []float64{}
	t.angle = []float64{}
	return t
}

// AddRow appends one observation. The number of values must match the
// number of columns.
func (t *Table) AddRow(ts time.Time, values ...float64) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	t.times = append(t.times, ts)
	for i, c := range t.columns {
		t.data[c] = append(t.data[c], values[i])
	}
	if t.Composite() {
		t.energy = append(t.energy, math.NaN())
		t.angle = append(t.angle, math.NaN())
	}
	return nil
}

// AddCompositeRow appends one observation at a (time, energy, angle) point.
// The table must have been created with NewCompositeTable.
func (t *Table) AddCompositeRow(ts time.Time, energy, angle float64, values ...float64) error {
	if !t.Composite() {
		return fmt.Errorf("table has no energy/angle axes")
	}
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	t.times = append(t.times, ts)
	t.energy = append(t.energy, energy)
	t.angle = append(t.angle, angle)
	for i, c := range t.columns {
		t.data[c] = append(t.data[c], values[i])
	}
	return nil
}

// AddColumn appends a whole column of values. A non-empty table requires the
// column length to match the current row count. The time axis is left
// untouched, so a table built only from columns has none.
func (t *Table) AddColumn(name string, values []float64) error {
	if _, ok := t.data[name]; ok {
		return fmt.Errorf("column %q already exists", name)
	}
	if n := t.Len(); n > 0 && len(values) != n {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), n)
	}
	t.columns = append(t.columns, name)
	t.data[name] = append([]float64(nil), values...)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t.times != nil {
		return len(t.times)
	}
	if len(t.columns) > 0 {
		return len(t.data[t.columns[0]])
	}
	return 0
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Times returns the time axis, or nil if the table has none.
func (t *Table) Times() []time.Time {
	return t.times
}

// Composite reports whether the table carries energy/angle axes.
func (t *Table) Composite() bool {
	return t.energy != nil
}

// EnergyAxis returns the per-row energy values of a composite table.
func (t *Table) EnergyAxis() []float64 { return t.energy }

// AngleAxis returns the per-row angle values of a composite table.
func (t *Table) AngleAxis() []float64 { return t.angle }

// Quantity returns the values of one named column.
func (t *Table) Quantity(name string) ([]float64, error) {
	vals, ok := t.data[name]
	if !ok {
		return nil, fmt.Errorf("no column %q in table", name)
	}
	return vals, nil
}

// Unit returns the unit label attached to a column, or "" if none.
func (t *Table) Unit(name string) string {
	return t.units[name]
}

// SetUnits attaches unit labels to columns. Unknown column names are kept so
// descriptors can declare units ahead of optional columns.
func (t *Table) SetUnits(units map[string]string) {
	for k, v := range units {
		t.units[k] = v
	}
}

// Select returns a new table containing exactly the rows for which keep
// returns true, preserving column order, axes and units.
func (t *Table) Select(keep func(i int) bool) *Table {
	out := NewTable(t.columns...)
	if t.Composite() {
		out.energy = []float64{}
		out.angle = []float64{}
	}
	out.SetUnits(t.units)
	for i := range t.times {
		if !keep(i) {
			continue
		}
		out.times = append(out.times, t.times[i])
		if t.Composite() {
			out.energy = append(out.energy, t.energy[i])
			out.angle = append(out.angle, t.angle[i])
		}
		for _, c := range t.columns {
			out.data[c] = append(out.data[c], t.data[c][i])
		}
	}
	return out
}

// Concat joins tables in the given order without sorting, mirroring a
// dataframe concat: the column set is the union in first-seen order and
// missing values are NaN. The result is composite if any input is.
func Concat(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, ErrEmptyInput
	}
	var columns []string
	seen := make(map[string]struct{})
	composite := false
	for _, tbl := range tables {
		for _, c := range tbl.columns {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				columns = append(columns, c)
			}
		}
		if tbl.Composite() {
			composite = true
		}
	}

	var out *Table
	if composite {
		out = NewCompositeTable(columns...)
	} else {
		out = NewTable(columns...)
	}
	for _, tbl := range tables {
		out.SetUnits(tbl.units)
		for i := range tbl.times {
			out.times = append(out.times, tbl.times[i])
			if composite {
				if tbl.Composite() {
					out.energy = append(out.energy, tbl.energy[i])
					out.angle = append(out.angle, tbl.angle[i])
				} else {
					out.energy = append(out.energy, math.NaN())
					out.angle = append(out.angle, math.NaN())
				}
			}
			for _, c := range columns {
				if vals, ok := tbl.data[c]; ok {
					out.data[c] = append(out.data[c], vals[i])
				} else {
					out.data[c] = append(out.data[c], math.NaN())
				}
			}
		}
	}
	return out, nil
}

// Equal reports whether two tables have the same columns, time axis, axes
// and values. NaNs compare equal to NaNs so missing data round-trips.
func (t *Table) Equal(o *Table) bool {
	if t.Len() != o.Len() || len(t.columns) != len(o.columns) {
		return false
	}
	for i, c := range t.columns {
		if o.columns[i] != c {
			return false
		}
	}
	for i := range t.times {
		if !t.times[i].Equal(o.times[i]) {
			return false
		}
	}
	if t.Composite() != o.Composite() {
		return false
	}
	if t.Composite() {
		if !floatsEqual(t.energy, o.energy) || !floatsEqual(t.angle, o.angle) {
			return false
		}
	}
	for _, c := range t.columns {
		if !floatsEqual(t.data[c], o.data[c]) {
			return false
		}
	}
	return true
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			return false
		}
	}
	return true
}
