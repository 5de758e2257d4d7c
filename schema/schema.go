// Package schema has models, constants and errors shared by all parts of helioget.
package schema

import (
	"path"
	"time"
)

// Descriptor is the static configuration for one data product. It tells the
// pipeline how to address, name and interpret the files of that product.
// Descriptors are created once at registration time and never mutated.
type Descriptor struct {
	// Mission is the spacecraft or observatory name, e.g. "imp8".
	Mission string

	// Product is the data product name within the mission, e.g. "merged".
	Product string

	// RemoteBaseURL is the root URL the per-interval paths are joined onto.
	RemoteBaseURL string

	// LocalSubdir is the subdirectory under the download root for this
	// product's files. Defaults to "<mission>/<product>" when empty.
	LocalSubdir string

	// Granularity is the calendar unit one remote file covers.
	Granularity Granularity

	// FileName maps an interval to the file basename including extension.
	FileName func(Interval) string

	// Directory maps an interval to a relative directory below both the
	// remote base URL and the local subdirectory. May be nil when all files
	// live in one flat directory.
	Directory func(Interval) string

	// FuzzyVersion marks products whose remote filenames embed a version
	// suffix that cannot be generated in advance. The fetcher then lists the
	// remote directory and matches on the basename prefix.
	FuzzyVersion bool

	// Units maps column names to physical unit labels.
	Units map[string]string

	// BadValues maps column names to sentinel values that mark missing data
	// in the raw files. Parsers replace them with NaN.
	BadValues map[string][]float64
}

// Key returns the stable identifier for this product, e.g. "imp8/merged".
func (d *Descriptor) Key() string {
	return d.Mission + "/" + d.Product
}

// Subdir returns the local cache subdirectory for this product.
func (d *Descriptor) Subdir() string {
	if d.LocalSubdir != "" {
		return d.LocalSubdir
	}
	return path.Join(d.Mission, d.Product)
}

// RelativePath returns the interval's file path relative to both the remote
// base URL and the local product directory.
func (d *Descriptor) RelativePath(iv Interval) string {
	name := d.FileName(iv)
	if d.Directory != nil {
		if dir := d.Directory(iv); dir != "" {
			return path.Join(dir, name)
		}
	}
	return name
}

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339
