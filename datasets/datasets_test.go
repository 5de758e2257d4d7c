package datasets

import (
	"testing"
	"time"

	"github.com/helioget/helioget/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryContainsBuiltins(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "omni/hourly")
	assert.Contains(t, keys, "imp8/merged")
	assert.Contains(t, keys, "helios1/corefit")
	assert.Contains(t, keys, "helios2/corefit")
	assert.IsIncreasing(t, keys)
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("voyager/plasma")
	assert.False(t, ok)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	p, ok := Lookup("omni/hourly")
	require.True(t, ok)
	assert.Panics(t, func() { Register(p) })
}

func TestOmniDescriptor(t *testing.T) {
	p, ok := Lookup("omni/hourly")
	require.True(t, ok)

	d := p.Descriptor
	assert.Equal(t, schema.Yearly, d.Granularity)

	iv := schema.Interval{
		Start:       time.Date(2003, time.January, 1, 0, 0, 0, 0, time.UTC),
		Granularity: schema.Yearly,
	}
	assert.Equal(t, "omni2_2003.dat", d.FileName(iv))
	assert.Equal(t, "omni2_2003.dat", d.RelativePath(iv))
	assert.Equal(t, "nT", d.Units["abs_b"])
	assert.Contains(t, d.BadValues["flow_speed"], 9999.0)
}

func TestImpDescriptor(t *testing.T) {
	p, ok := Lookup("imp8/merged")
	require.True(t, ok)

	d := p.Descriptor
	assert.Equal(t, schema.Monthly, d.Granularity)

	iv := schema.Interval{
		Start:       time.Date(1994, time.February, 1, 0, 0, 0, 0, time.UTC),
		Granularity: schema.Monthly,
	}
	assert.Equal(t, "imp_min_merge199402.asc", d.FileName(iv))
}

func TestHeliosDescriptor(t *testing.T) {
	p, ok := Lookup("helios1/corefit")
	require.True(t, ok)

	d := p.Descriptor
	assert.Equal(t, schema.Daily, d.Granularity)

	iv := schema.Interval{
		Start:       time.Date(1976, time.April, 1, 0, 0, 0, 0, time.UTC),
		Granularity: schema.Daily,
	}
	// April 1st 1976 is day 92 of a leap year; day files are grouped by year.
	assert.Equal(t, "h1_1976_092_corefit.csv", d.FileName(iv))
	assert.Equal(t, "1976/h1_1976_092_corefit.csv", d.RelativePath(iv))

	p2, ok := Lookup("helios2/corefit")
	require.True(t, ok)
	assert.Equal(t, "h2_1976_092_corefit.csv", p2.Descriptor.FileName(iv))
}
