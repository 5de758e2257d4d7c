package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "YES", "true", "1"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, got, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, got, s)
	}
	_, err := ParseBoolString("maybe")
	assert.ErrorContains(t, err, "invalid boolean string")
}

func TestParseTimeArg(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2020-01-01T06:00:00Z", time.Date(2020, time.January, 1, 6, 0, 0, 0, time.UTC)},
		{"2020-01-01T06:00:00", time.Date(2020, time.January, 1, 6, 0, 0, 0, time.UTC)},
		{"2020-01-01 06:00:00", time.Date(2020, time.January, 1, 6, 0, 0, 0, time.UTC)},
		{"2020-01-01", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"  2020-01-01  ", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeArg(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}

	_, err := ParseTimeArg("January 1st 2020")
	assert.ErrorContains(t, err, "cannot parse time")
}
