package schema

import (
	"fmt"
	"time"
)

// Interval is one half-open time span [Start, End) used as the addressing
// unit for both remote files and local cache entries. Intervals are produced
// by the splitter in ascending order and are immutable once created.
type Interval struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
}

// Contains reports whether t lies within the half-open span [Start, End).
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Date returns the calendar date the interval belongs to. For monthly and
// yearly intervals the day (and month) components are those of Start.
func (iv Interval) Date() (year int, month time.Month, day int) {
	return iv.Start.Date()
}

// Label returns the canonical addressing label for the interval, used in
// cache keys and the fetch ledger: "20200101" for daily, "202001" for
// monthly, "2020" for yearly.
func (iv Interval) Label() string {
	switch iv.Granularity {
	case Yearly:
		return iv.Start.Format("2006")
	case Monthly:
		return iv.Start.Format("200601")
	default:
		return iv.Start.Format("20060102")
	}
}

// String implements fmt.Stringer.
func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(DateTimeFormat), iv.End.Format(DateTimeFormat))
}
