package core

import (
	"time"

	"github.com/helioget/helioget/schema"
)

// Filter concatenates tables in order and selects the rows whose timestamp
// lies strictly inside (starttime, endtime). Both bounds are exclusive, so
// rows at exactly starttime or endtime are dropped; several data products
// depend on this, so it is pinned by tests rather than widened.
//
// Zero input tables is a contract violation (schema.ErrEmptyInput); a
// concatenation that filters down to zero rows returns a valid empty table.
func Filter(tables []*schema.Table, starttime, endtime time.Time) (*schema.Table, error) {
	combined, err := schema.Concat(tables)
	if err != nil {
		return nil, err
	}
	// A zero-row concatenation has a nil time axis too; only tables that
	// carry rows without timestamps violate the contract.
	times := combined.Times()
	if times == nil && combined.Len() > 0 {
		return nil, schema.ErrMissingTimeColumn
	}
	return combined.Select(func(i int) bool {
		return times[i].After(starttime) && times[i].Before(endtime)
	}), nil
}
