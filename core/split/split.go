// Package split turns a requested time range into the ordered sequence of
// calendar-aligned intervals used to address remote files.
package split

import (
	"fmt"
	"time"

	"github.com/helioget/helioget/schema"
)

// Split divides [starttime, endtime) into contiguous, non-overlapping
// intervals at the given granularity. Only the first and last intervals are
// clipped to the requested times; inner intervals span whole calendar units.
func Split(starttime, endtime time.Time, g schema.Granularity) ([]schema.Interval, error) {
	if !starttime.Before(endtime) {
		return nil, fmt.Errorf("%w: start %s, end %s", schema.ErrInvalidRange,
			starttime.Format(schema.DateTimeFormat), endtime.Format(schema.DateTimeFormat))
	}
	if _, ok := schema.ValidGranularities[g]; !ok {
		return nil, fmt.Errorf("invalid granularity %q", g)
	}

	var out []schema.Interval
	cur := starttime
	for cur.Before(endtime) {
		unitEnd := nextBoundary(cur, g)
		ivEnd := unitEnd
		if endtime.Before(unitEnd) {
			ivEnd = endtime
		}
		out = append(out, schema.Interval{Start: cur, End: ivEnd, Granularity: g})
		cur = unitEnd
	}
	return out, nil
}

// nextBoundary returns the start of the calendar unit following t.
func nextBoundary(t time.Time, g schema.Granularity) time.Time {
	y, m, d := t.Date()
	switch g {
	case schema.Yearly:
		return time.Date(y+1, time.January, 1, 0, 0, 0, 0, t.Location())
	case schema.Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
	}
}
