// Package diskcache manages the on-disk download cache: raw telemetry files
// and their fast-load Parquet companions, plus the SQL fetch ledger.
package diskcache

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/internal/parquetio"
	"github.com/helioget/helioget/schema"
)

// ConvertedExt is the extension of fast-load companion files.
const ConvertedExt = ".parquet"

// partSuffix marks in-flight writes that are atomically renamed on success.
const partSuffix = ".part"

// Cache lays out raw and converted files under a single download root:
// <root>/<mission>/<product>/<interval-derived path>.
type Cache struct {
	root string
	log  *logrus.Entry
}

var _ contract.LocalCache = (*Cache)(nil) // Compile-time check

// New creates a cache rooted at the given download directory. The directory
// itself is created lazily on the first write.
func New(root string) *Cache {
	return &Cache{
		root: root,
		log:  logrus.WithField("component", "diskcache"),
	}
}

// Root returns the cache root directory.
func (c *Cache) Root() string { return c.root }

// RawPath returns the local path of the interval's raw file. Pure; no I/O.
func (c *Cache) RawPath(d *schema.Descriptor, iv schema.Interval) string {
	return filepath.Join(c.root, filepath.FromSlash(d.Subdir()), filepath.FromSlash(d.RelativePath(iv)))
}

// ConvertedPath returns the fast-load companion path for a raw path.
func (c *Cache) ConvertedPath(rawPath string) string {
	return strings.TrimSuffix(rawPath, filepath.Ext(rawPath)) + ConvertedExt
}

// Exists reports whether a regular file is present at path.
func (c *Cache) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ReadConverted loads a converted table. Deserialization failures come back
// as *schema.CorruptCacheError so callers can treat them as cache misses.
func (c *Cache) ReadConverted(path string) (*schema.Table, error) {
	t, err := parquetio.ReadTable(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, &schema.CorruptCacheError{Path: path, Err: err}
	}
	return t, nil
}

// WriteConverted stores a fast-load copy of the table. The write goes to a
// temp name first and is renamed into place, so concurrent readers never
// observe a half-written file.
func (c *Cache) WriteConverted(path string, t *schema.Table) error {
	if err := c.EnsureDir(path); err != nil {
		return err
	}
	tmp := path + partSuffix
	if err := parquetio.WriteTable(t, tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write converted cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to finalize converted cache: %w", err)
	}
	c.log.WithField("path", path).Debug("Wrote converted cache file")
	return nil
}

// EnsureDir creates the parent directory of path if absent. Idempotent.
func (c *Cache) EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// Status walks the cache root and reports file counts and total size.
func (c *Cache) Status() (schema.CacheStatus, error) {
	status := schema.CacheStatus{RootDir: c.root}
	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, partSuffix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		status.TotalBytes += info.Size()
		if strings.HasSuffix(path, ConvertedExt) {
			status.ConvertedFiles++
		} else {
			status.RawFiles++
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return status, err
	}
	return status, nil
}

// Clear removes every converted file under the cache root. Raw files are
// kept: they are the canonical downloads and re-fetching them is expensive.
func (c *Cache) Clear() error {
	return filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ConvertedExt) || strings.HasSuffix(path, partSuffix) {
			return os.Remove(path)
		}
		return nil
	})
}
