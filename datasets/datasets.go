// Package datasets registers the data products helioget knows how to load.
// A product is a descriptor (how to address and interpret its files) plus a
// parser (how to turn one raw file into a table); those two pieces are all
// the pipeline needs, so adding a mission means adding one registration.
package datasets

import (
	"fmt"
	"sort"

	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/schema"
)

// Product bundles everything the pipeline needs for one data product.
type Product struct {
	Descriptor *schema.Descriptor
	Parser     contract.FormatParser
	Doc        string // one-line description for the datasets listing
}

var registry = make(map[string]Product)

// Register adds a product under its descriptor key. It panics on duplicate
// registration, which can only happen from a programming error in an init.
func Register(p Product) {
	key := p.Descriptor.Key()
	if _, ok := registry[key]; ok {
		panic(fmt.Sprintf("datasets: duplicate registration of %q", key))
	}
	registry[key] = p
}

// Lookup returns the product registered under key, e.g. "omni/hourly".
func Lookup(key string) (Product, bool) {
	p, ok := registry[key]
	return p, ok
}

// Keys returns all registered product keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
