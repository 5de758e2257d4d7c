package datasets

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/schema"
)

// TimeLayout describes how the leading fields of a data row encode the
// observation timestamp.
type TimeLayout int

// Supported time field layouts.
const (
	// YearDoyHour: three integer fields, hour resolution (OMNI2 style).
	YearDoyHour TimeLayout = iota

	// YearDoyHourMinute: four integer fields, minute resolution (IMP merged style).
	YearDoyHourMinute

	// YearDoyHourMinuteSecond: five fields, the last a fractional second
	// (Helios corefit style).
	YearDoyHourMinuteSecond
)

// fieldCount returns how many leading fields the layout consumes.
func (tl TimeLayout) fieldCount() int {
	switch tl {
	case YearDoyHour:
		return 3
	case YearDoyHourMinute:
		return 4
	default:
		return 5
	}
}

// ColumnarParser parses whitespace- or comma-delimited ASCII telemetry
// files into a normalized table. It covers the merged/hourly products whose
// raw files are fixed-layout text; binary formats get their own parsers.
type ColumnarParser struct {
	// Columns names the data columns in file order, after the time fields.
	Columns []string

	// TimeLayout describes the leading time fields.
	TimeLayout TimeLayout

	// Comma switches from whitespace-delimited to comma-delimited rows.
	Comma bool

	// CommentPrefix marks lines to skip, e.g. "#". Blank lines are always
	// skipped.
	CommentPrefix string

	// HeaderRows is the number of leading non-comment lines to discard,
	// for files that start with a column header.
	HeaderRows int

	// BadValues maps column names to sentinel values replaced with NaN.
	BadValues map[string][]float64
}

var _ contract.FormatParser = (*ColumnarParser)(nil) // Compile-time check

// Parse reads one raw file. Any malformed line fails the whole file with a
// *schema.ParseError; the pipeline then skips the interval.
func (p *ColumnarParser) Parse(path string) (*schema.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &schema.ParseError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	t := schema.NewTable(p.Columns...)
	want := p.TimeLayout.fieldCount() + len(p.Columns)
	values := make([]float64, len(p.Columns))

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	skipped := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || (p.CommentPrefix != "" && strings.HasPrefix(line, p.CommentPrefix)) {
			continue
		}
		if skipped < p.HeaderRows {
			skipped++
			continue
		}
		fields := p.splitFields(line)
		if len(fields) != want {
			return nil, &schema.ParseError{
				Path: path,
				Err:  fmt.Errorf("line %d has %d fields, expected %d", lineno, len(fields), want),
			}
		}
		ts, err := p.decodeTime(fields)
		if err != nil {
			return nil, &schema.ParseError{Path: path, Err: fmt.Errorf("line %d: %w", lineno, err)}
		}
		for i, col := range p.Columns {
			v, err := strconv.ParseFloat(fields[p.TimeLayout.fieldCount()+i], 64)
			if err != nil {
				return nil, &schema.ParseError{
					Path: path,
					Err:  fmt.Errorf("line %d, column %s: %w", lineno, col, err),
				}
			}
			for _, sentinel := range p.BadValues[col] {
				if v == sentinel {
					v = math.NaN()
					break
				}
			}
			values[i] = v
		}
		if err := t.AddRow(ts, values...); err != nil {
			return nil, &schema.ParseError{Path: path, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &schema.ParseError{Path: path, Err: err}
	}
	if t.Len() == 0 {
		return nil, &schema.ParseError{Path: path, Err: fmt.Errorf("no data rows in file")}
	}
	return t, nil
}

// splitFields tokenizes one data line.
func (p *ColumnarParser) splitFields(line string) []string {
	if !p.Comma {
		return strings.Fields(line)
	}
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// decodeTime builds the timestamp from the leading fields. Day-of-year
// counting starts at 1, so January 1st is doy 1.
func (p *ColumnarParser) decodeTime(fields []string) (time.Time, error) {
	ints := make([]int, 0, 4)
	n := p.TimeLayout.fieldCount()
	intFields := n
	if p.TimeLayout == YearDoyHourMinuteSecond {
		intFields = n - 1 // the second field may be fractional
	}
	for i := 0; i < intFields; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return time.Time{}, fmt.Errorf("bad time field %q: %w", fields[i], err)
		}
		ints = append(ints, v)
	}

	year, doy := ints[0], ints[1]
	ts := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, doy-1)
	ts = ts.Add(time.Duration(ints[2]) * time.Hour)
	if p.TimeLayout >= YearDoyHourMinute {
		ts = ts.Add(time.Duration(ints[3]) * time.Minute)
	}
	if p.TimeLayout == YearDoyHourMinuteSecond {
		sec, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad seconds field %q: %w", fields[4], err)
		}
		ts = ts.Add(time.Duration(sec * float64(time.Second)))
	}
	return ts, nil
}
