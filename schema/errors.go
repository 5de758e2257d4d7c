package schema

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for input and contract violations.
var (
	// ErrInvalidRange means the caller supplied starttime >= endtime.
	ErrInvalidRange = errors.New("start time must be before end time")

	// ErrNoRemoteData means the remote resource genuinely does not exist
	// (HTTP 404 or an empty directory listing). It is a soft, per-interval
	// condition and never aborts a multi-interval request.
	ErrNoRemoteData = errors.New("no remote data for interval")

	// ErrEmptyInput means the time filter was handed zero tables. This is a
	// programming error, distinct from a filter that selects zero rows.
	ErrEmptyInput = errors.New("no tables given to filter")

	// ErrMissingTimeColumn means a table reached the time filter without a
	// time axis, which violates the parser contract.
	ErrMissingTimeColumn = errors.New("table has no time axis")
)

// NetworkError wraps a transport-level failure (connection refused, timeout,
// 5xx). The pipeline retries these a bounded number of times and then treats
// the interval as having no data.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError wraps a parser failure on one raw file. Treated as a soft
// per-interval failure by the pipeline.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CorruptCacheError wraps a failure to deserialize a converted cache file.
// Callers treat it as a cache miss and fall through to the raw file.
type CorruptCacheError struct {
	Path string
	Err  error
}

func (e *CorruptCacheError) Error() string {
	return fmt.Sprintf("corrupt cache file %s: %v", e.Path, e.Err)
}

func (e *CorruptCacheError) Unwrap() error { return e.Err }

// NoDataError is returned when every interval of a request yielded nothing.
type NoDataError struct {
	Dataset string
	Start   time.Time
	End     time.Time
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data for %s between %s and %s",
		e.Dataset, e.Start.Format(DateTimeFormat), e.End.Format(DateTimeFormat))
}
