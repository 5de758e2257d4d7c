package core

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache is an in-memory LocalCache: raw files live on disk under a temp
// root, converted tables live in a map.
type memCache struct {
	root      string
	mu        sync.Mutex
	converted map[string]*schema.Table
	corrupt   map[string]bool
}

func newMemCache(root string) *memCache {
	return &memCache{
		root:      root,
		converted: make(map[string]*schema.Table),
		corrupt:   make(map[string]bool),
	}
}

func (c *memCache) RawPath(d *schema.Descriptor, iv schema.Interval) string {
	return filepath.Join(c.root, filepath.FromSlash(d.Subdir()), filepath.FromSlash(d.RelativePath(iv)))
}

func (c *memCache) ConvertedPath(rawPath string) string {
	return strings.TrimSuffix(rawPath, filepath.Ext(rawPath)) + ".conv"
}

func (c *memCache) Exists(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.converted[path] != nil || c.corrupt[path] {
		return true
	}
	_, err := os.Stat(path)
	return err == nil
}

func (c *memCache) ReadConverted(path string) (*schema.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.corrupt[path] {
		return nil, &schema.CorruptCacheError{Path: path, Err: fmt.Errorf("bad magic")}
	}
	if t := c.converted[path]; t != nil {
		return t, nil
	}
	return nil, os.ErrNotExist
}

func (c *memCache) WriteConverted(path string, t *schema.Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.converted[path] = t
	return nil
}

func (c *memCache) EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

var _ contract.LocalCache = (*memCache)(nil)

// scriptedFetcher serves canned per-interval responses and counts calls.
type scriptedFetcher struct {
	mu      sync.Mutex
	calls   int
	respond func(iv schema.Interval, localPath string) error
}

func (f *scriptedFetcher) Fetch(_ context.Context, _ *schema.Descriptor, iv schema.Interval, localPath string) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.respond(iv, localPath)
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var _ contract.RemoteFetcher = (*scriptedFetcher)(nil)

// lineParser reads "RFC3339,value" lines, one observation per line.
type lineParser struct{}

func (lineParser) Parse(path string) (*schema.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &schema.ParseError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	t := schema.NewTable("v")
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), ",", 2)
		if len(parts) != 2 {
			return nil, &schema.ParseError{Path: path, Err: fmt.Errorf("bad line %q", scanner.Text())}
		}
		ts, err := time.Parse(time.RFC3339, parts[0])
		if err != nil {
			return nil, &schema.ParseError{Path: path, Err: err}
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, &schema.ParseError{Path: path, Err: err}
		}
		if err := t.AddRow(ts, v); err != nil {
			return nil, &schema.ParseError{Path: path, Err: err}
		}
	}
	return t, nil
}

var _ contract.FormatParser = lineParser{}

// memLedger records outcomes in memory.
type memLedger struct {
	mu       sync.Mutex
	outcomes map[string]schema.FetchOutcome
}

func newMemLedger() *memLedger {
	return &memLedger{outcomes: make(map[string]schema.FetchOutcome)}
}

func (l *memLedger) Record(dataset, interval string, outcome schema.FetchOutcome, _ int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outcomes[dataset+"/"+interval] = outcome
	return nil
}

func (l *memLedger) GetStatus() (schema.LedgerStatus, error) { return schema.LedgerStatus{}, nil }
func (l *memLedger) Close() error                            { return nil }

var _ contract.FetchLedger = (*memLedger)(nil)

func testDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Mission:     "test",
		Product:     "daily",
		Granularity: schema.Daily,
		FileName: func(iv schema.Interval) string {
			return iv.Label() + ".txt"
		},
		Units: map[string]string{"v": "km/s"},
	}
}

// writeObservations fills localPath with hourly observations covering the
// interval's calendar day.
func writeObservations(iv schema.Interval, localPath string) error {
	var sb strings.Builder
	day := time.Date(iv.Start.Year(), iv.Start.Month(), iv.Start.Day(), 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24; h++ {
		ts := day.Add(time.Duration(h) * time.Hour)
		fmt.Fprintf(&sb, "%s,%d\n", ts.Format(time.RFC3339), h)
	}
	return os.WriteFile(localPath, []byte(sb.String()), 0o644)
}

func testConfig() *contract.Config {
	return &contract.Config{
		FastCache: true,
		Workers:   2,
	}
}

func TestLoadFetchesAndMerges(t *testing.T) {
	cache := newMemCache(t.TempDir())
	fetch := &scriptedFetcher{respond: writeObservations}
	ledger := newMemLedger()
	loader := NewLoader(testConfig(), cache, fetch, ledger)

	start := time.Date(2020, time.January, 1, 6, 0, 0, 0, time.UTC)
	end := time.Date(2020, time.January, 3, 12, 0, 0, 0, time.UTC)

	got, err := loader.Load(context.Background(), testDescriptor(), lineParser{}, start, end)
	require.NoError(t, err)

	assert.Equal(t, 3, fetch.callCount(), "one fetch per daily interval")
	// 17 rows on Jan 1 (07..23), 24 on Jan 2, 12 on Jan 3 (00..11);
	// rows at exactly 06:00 and 12:00 are excluded.
	assert.Equal(t, 53, got.Len())
	assert.Equal(t, "km/s", got.Unit("v"), "descriptor units are attached")

	times := got.Times()
	for _, ts := range times {
		assert.True(t, ts.After(start) && ts.Before(end))
	}
	assert.Equal(t, schema.FetchOK, ledger.outcomes["test/daily/20200102"])
}

func TestLoadSecondCallHitsCache(t *testing.T) {
	cache := newMemCache(t.TempDir())
	fetch := &scriptedFetcher{respond: writeObservations}
	loader := NewLoader(testConfig(), cache, fetch, nil)

	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, time.January, 3, 0, 0, 0, 0, time.UTC)

	first, err := loader.Load(context.Background(), testDescriptor(), lineParser{}, start, end)
	require.NoError(t, err)
	require.Equal(t, 2, fetch.callCount())

	second, err := loader.Load(context.Background(), testDescriptor(), lineParser{}, start, end)
	require.NoError(t, err)

	assert.Equal(t, 2, fetch.callCount(), "second load must not touch the network")
	assert.True(t, first.Equal(second), "cached result matches the original")
}

func TestLoadSkipsMissingIntervals(t *testing.T) {
	cache := newMemCache(t.TempDir())
	fetch := &scriptedFetcher{respond: func(iv schema.Interval, localPath string) error {
		if iv.Label() == "20200102" {
			return fmt.Errorf("%w: gone", schema.ErrNoRemoteData)
		}
		return writeObservations(iv, localPath)
	}}
	ledger := newMemLedger()
	loader := NewLoader(testConfig(), cache, fetch, ledger)

	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, time.January, 4, 0, 0, 0, 0, time.UTC)

	got, err := loader.Load(context.Background(), testDescriptor(), lineParser{}, start, end)
	require.NoError(t, err, "a missing interval is a soft failure")

	// Two full days minus the excluded start row; the middle day is absent.
	assert.Equal(t, 47, got.Len())
	for _, ts := range got.Times() {
		assert.NotEqual(t, 2, ts.Day(), "no rows from the missing day")
	}
	assert.Equal(t, schema.FetchNotFound, ledger.outcomes["test/daily/20200102"])
	assert.Equal(t, schema.FetchOK, ledger.outcomes["test/daily/20200101"])
}

func TestLoadAllIntervalsMissing(t *testing.T) {
	cache := newMemCache(t.TempDir())
	fetch := &scriptedFetcher{respond: func(iv schema.Interval, _ string) error {
		return fmt.Errorf("%w: gone", schema.ErrNoRemoteData)
	}}
	loader := NewLoader(testConfig(), cache, fetch, newMemLedger())

	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, time.January, 3, 0, 0, 0, 0, time.UTC)

	_, err := loader.Load(context.Background(), testDescriptor(), lineParser{}, start, end)

	var noData *schema.NoDataError
	require.ErrorAs(t, err, &noData)
	assert.Equal(t, "test/daily", noData.Dataset)
	assert.Contains(t, err.Error(), "no data for test/daily between")
}

func TestLoadCorruptConvertedFallsBackToRaw(t *testing.T) {
	cache := newMemCache(t.TempDir())
	fetch := &scriptedFetcher{respond: writeObservations}
	loader := NewLoader(testConfig(), cache, fetch, nil)

	d := testDescriptor()
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC)

	_, err := loader.Load(context.Background(), d, lineParser{}, start, end)
	require.NoError(t, err)
	require.Equal(t, 1, fetch.callCount())

	// Corrupt the converted entry; the raw file on disk is intact.
	iv := schema.Interval{Start: start, End: end, Granularity: schema.Daily}
	convPath := cache.ConvertedPath(cache.RawPath(d, iv))
	cache.mu.Lock()
	delete(cache.converted, convPath)
	cache.corrupt[convPath] = true
	cache.mu.Unlock()

	got, err := loader.Load(context.Background(), d, lineParser{}, start, end)
	require.NoError(t, err, "corrupt cache is a miss, not a failure")
	assert.Equal(t, 1, fetch.callCount(), "raw file avoids a re-fetch")
	assert.Equal(t, 23, got.Len())
}

func TestLoadParseFailureIsSoft(t *testing.T) {
	cache := newMemCache(t.TempDir())
	fetch := &scriptedFetcher{respond: func(iv schema.Interval, localPath string) error {
		if iv.Label() == "20200101" {
			return os.WriteFile(localPath, []byte("not,a,timestamp\n"), 0o644)
		}
		return writeObservations(iv, localPath)
	}}
	loader := NewLoader(testConfig(), cache, fetch, nil)

	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, time.January, 3, 0, 0, 0, 0, time.UTC)

	got, err := loader.Load(context.Background(), testDescriptor(), lineParser{}, start, end)
	require.NoError(t, err)
	require.NotZero(t, got.Len())
	for _, ts := range got.Times() {
		assert.Equal(t, 2, ts.Day(), "only the parseable day survives")
	}
}

func TestLoadInvalidRange(t *testing.T) {
	loader := NewLoader(testConfig(), newMemCache(t.TempDir()), &scriptedFetcher{respond: writeObservations}, nil)
	at := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	_, err := loader.Load(context.Background(), testDescriptor(), lineParser{}, at, at)
	assert.ErrorIs(t, err, schema.ErrInvalidRange)
}
