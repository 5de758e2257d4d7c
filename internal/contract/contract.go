// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/helioget/helioget/schema"
)

// FormatParser converts one already-fetched raw file into a normalized
// table. Every data product supplies its own implementation; the pipeline
// only relies on this contract. A parser that cannot make sense of a file
// returns a *schema.ParseError.
type FormatParser interface {
	Parse(path string) (*schema.Table, error)
}

// RemoteFetcher retrieves the raw file for one interval of a product into
// the given local path. Implementations must distinguish "resource absent
// upstream" (schema.ErrNoRemoteData) from transport failures
// (*schema.NetworkError), and must never leave a partial file visible at
// localPath.
type RemoteFetcher interface {
	Fetch(ctx context.Context, d *schema.Descriptor, iv schema.Interval, localPath string) error
}

// LocalCache maps (descriptor, interval) keys to on-disk locations and
// manages the raw and converted file kinds per key. This allows the
// orchestrator to be tested against an in-memory cache.
type LocalCache interface {
	// RawPath returns the local path of the interval's raw file. Pure; no I/O.
	RawPath(d *schema.Descriptor, iv schema.Interval) string

	// ConvertedPath returns the fast-load companion path for a raw path.
	ConvertedPath(rawPath string) string

	// Exists reports whether a file is present at path.
	Exists(path string) bool

	// ReadConverted loads a converted table, returning *schema.CorruptCacheError
	// when the stored format cannot be deserialized.
	ReadConverted(path string) (*schema.Table, error)

	// WriteConverted stores a fast-load copy of the table. Best-effort: the
	// orchestrator logs and continues when it fails.
	WriteConverted(path string, t *schema.Table) error

	// EnsureDir creates the parent directory of path if absent.
	EnsureDir(path string) error
}

// FetchLedger records the outcome of fetch attempts for the status command.
// This allows mocking the store for testing.
type FetchLedger interface {
	Record(dataset, interval string, outcome schema.FetchOutcome, timestamp int64) error
	GetStatus() (schema.LedgerStatus, error)
	Close() error
}
