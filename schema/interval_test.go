package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalContains(t *testing.T) {
	iv := Interval{
		Start:       time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC),
		Granularity: Daily,
	}

	assert.True(t, iv.Contains(iv.Start), "start is inclusive")
	assert.True(t, iv.Contains(iv.Start.Add(12*time.Hour)))
	assert.False(t, iv.Contains(iv.End), "end is exclusive")
	assert.False(t, iv.Contains(iv.Start.Add(-time.Second)))
}

func TestIntervalLabel(t *testing.T) {
	start := time.Date(2020, time.March, 7, 6, 0, 0, 0, time.UTC)
	tests := []struct {
		granularity Granularity
		want        string
	}{
		{Daily, "20200307"},
		{Monthly, "202003"},
		{Yearly, "2020"},
	}
	for _, tt := range tests {
		t.Run(string(tt.granularity), func(t *testing.T) {
			iv := Interval{Start: start, Granularity: tt.granularity}
			assert.Equal(t, tt.want, iv.Label())
		})
	}
}

func TestDescriptorPaths(t *testing.T) {
	d := &Descriptor{
		Mission:     "imp8",
		Product:     "merged",
		Granularity: Monthly,
		FileName: func(iv Interval) string {
			return "imp_min_merge" + iv.Label() + ".asc"
		},
	}
	iv := Interval{Start: time.Date(1994, time.February, 1, 0, 0, 0, 0, time.UTC), Granularity: Monthly}

	assert.Equal(t, "imp8/merged", d.Key())
	assert.Equal(t, "imp8/merged", d.Subdir())
	assert.Equal(t, "imp_min_merge199402.asc", d.RelativePath(iv))

	d.Directory = func(iv Interval) string { return iv.Start.Format("2006") }
	assert.Equal(t, "1994/imp_min_merge199402.asc", d.RelativePath(iv))

	d.LocalSubdir = "imp/merged_minute"
	assert.Equal(t, "imp/merged_minute", d.Subdir())
}
