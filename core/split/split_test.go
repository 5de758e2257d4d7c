package split

import (
	"testing"
	"time"

	"github.com/helioget/helioget/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestSplitDaily(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []schema.Interval
	}{
		{
			name:  "mid-day start and end spanning three days",
			start: date(2020, time.January, 1, 6, 0),
			end:   date(2020, time.January, 3, 12, 0),
			want: []schema.Interval{
				{Start: date(2020, time.January, 1, 6, 0), End: date(2020, time.January, 2, 0, 0), Granularity: schema.Daily},
				{Start: date(2020, time.January, 2, 0, 0), End: date(2020, time.January, 3, 0, 0), Granularity: schema.Daily},
				{Start: date(2020, time.January, 3, 0, 0), End: date(2020, time.January, 3, 12, 0), Granularity: schema.Daily},
			},
		},
		{
			name:  "range within a single day",
			start: date(2020, time.March, 5, 3, 0),
			end:   date(2020, time.March, 5, 18, 30),
			want: []schema.Interval{
				{Start: date(2020, time.March, 5, 3, 0), End: date(2020, time.March, 5, 18, 30), Granularity: schema.Daily},
			},
		},
		{
			name:  "aligned range produces whole days",
			start: date(2020, time.February, 28, 0, 0),
			end:   date(2020, time.March, 1, 0, 0),
			want: []schema.Interval{
				{Start: date(2020, time.February, 28, 0, 0), End: date(2020, time.February, 29, 0, 0), Granularity: schema.Daily},
				{Start: date(2020, time.February, 29, 0, 0), End: date(2020, time.March, 1, 0, 0), Granularity: schema.Daily},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.start, tt.end, schema.Daily)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitMonthly(t *testing.T) {
	got, err := Split(date(1994, time.January, 15, 0, 0), date(1994, time.March, 10, 0, 0), schema.Monthly)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, date(1994, time.January, 15, 0, 0), got[0].Start)
	assert.Equal(t, date(1994, time.February, 1, 0, 0), got[0].End)
	assert.Equal(t, date(1994, time.March, 1, 0, 0), got[2].Start)
	assert.Equal(t, date(1994, time.March, 10, 0, 0), got[2].End)
}

func TestSplitYearly(t *testing.T) {
	got, err := Split(date(2019, time.June, 1, 0, 0), date(2021, time.February, 1, 0, 0), schema.Yearly)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2019", got[0].Label())
	assert.Equal(t, "2020", got[1].Label())
	assert.Equal(t, "2021", got[2].Label())
	assert.Equal(t, date(2021, time.February, 1, 0, 0), got[2].End)
}

func TestSplitContiguous(t *testing.T) {
	got, err := Split(date(2020, time.January, 10, 7, 13), date(2020, time.April, 2, 1, 0), schema.Daily)
	require.NoError(t, err)
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1].End, got[i].Start, "intervals must be contiguous")
	}
}

func TestSplitErrors(t *testing.T) {
	t.Run("start equal to end", func(t *testing.T) {
		_, err := Split(date(2020, time.January, 1, 0, 0), date(2020, time.January, 1, 0, 0), schema.Daily)
		assert.ErrorIs(t, err, schema.ErrInvalidRange)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := Split(date(2020, time.January, 2, 0, 0), date(2020, time.January, 1, 0, 0), schema.Daily)
		assert.ErrorIs(t, err, schema.ErrInvalidRange)
	})

	t.Run("unknown granularity", func(t *testing.T) {
		_, err := Split(date(2020, time.January, 1, 0, 0), date(2020, time.January, 2, 0, 0), schema.Granularity("weekly"))
		assert.ErrorContains(t, err, "invalid granularity")
	})
}
