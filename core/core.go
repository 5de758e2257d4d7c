// Package core has the load pipeline: it resolves a requested time range
// into per-interval files, satisfies each interval from the local cache or
// the remote archive, and merges the parsed tables into one filtered result.
package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/helioget/helioget/core/split"
	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/schema"
)

// Loader orchestrates the download/cache/parse pipeline for any data
// product. All per-interval failures are soft: the interval is skipped and
// the rest of the request proceeds. Only a request where every interval
// yields nothing fails, with *schema.NoDataError.
type Loader struct {
	cfg    *contract.Config
	cache  contract.LocalCache
	fetch  contract.RemoteFetcher
	ledger contract.FetchLedger
	log    *logrus.Entry
}

// NewLoader wires a loader from its collaborators. ledger may be nil when
// fetch tracking is disabled.
func NewLoader(cfg *contract.Config, cache contract.LocalCache, fetch contract.RemoteFetcher, ledger contract.FetchLedger) *Loader {
	return &Loader{
		cfg:    cfg,
		cache:  cache,
		fetch:  fetch,
		ledger: ledger,
		log:    logrus.WithField("component", "loader"),
	}
}

// Load returns the product's data for [starttime, endtime). The final
// filter applies the original request bounds, strictly exclusive on both
// ends, regardless of how the range was split into intervals.
func (l *Loader) Load(ctx context.Context, d *schema.Descriptor, parser contract.FormatParser, starttime, endtime time.Time) (*schema.Table, error) {
	intervals, err := split.Split(starttime, endtime, d.Granularity)
	if err != nil {
		return nil, err
	}

	// Intervals are independent, so they can be worked concurrently. The
	// results slice is indexed by interval so concatenation order is
	// interval order no matter which worker finishes first.
	results := make([]*schema.Table, len(intervals))
	workers := l.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(intervals) {
		workers = len(intervals)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indices {
				results[idx] = l.loadInterval(ctx, d, parser, intervals[idx])
			}
		}()
	}
	for idx := range intervals {
		indices <- idx
	}
	close(indices)
	wg.Wait()

	var yielded []*schema.Table
	for _, t := range results {
		if t != nil {
			yielded = append(yielded, t)
		}
	}
	if len(yielded) == 0 {
		return nil, &schema.NoDataError{Dataset: d.Key(), Start: starttime, End: endtime}
	}

	return Filter(yielded, starttime, endtime)
}

// loadInterval produces the table for one interval, or nil when the
// interval has no usable data. Cache precedence: converted file, then raw
// file, then remote fetch.
func (l *Loader) loadInterval(ctx context.Context, d *schema.Descriptor, parser contract.FormatParser, iv schema.Interval) *schema.Table {
	log := l.log.WithFields(logrus.Fields{"dataset": d.Key(), "interval": iv.Label()})
	rawPath := l.cache.RawPath(d, iv)
	convPath := l.cache.ConvertedPath(rawPath)

	if l.cfg.FastCache && l.cache.Exists(convPath) {
		t, err := l.cache.ReadConverted(convPath)
		if err == nil {
			log.Debug("Loaded converted cache file")
			return t
		}
		// A corrupt converted file is a cache miss, not a request failure:
		// fall through to the raw file and rebuild it.
		var corrupt *schema.CorruptCacheError
		if errors.As(err, &corrupt) {
			log.WithError(err).Warn("Converted cache unreadable, falling back to raw file")
		} else {
			log.WithError(err).Warn("Failed to read converted cache")
		}
	}

	if !l.cache.Exists(rawPath) {
		if err := l.cache.EnsureDir(rawPath); err != nil {
			log.WithError(err).Warn("Cannot create cache directory, skipping interval")
			return nil
		}
		err := l.fetch.Fetch(ctx, d, iv, rawPath)
		l.recordFetch(d, iv, err)
		if err != nil {
			if errors.Is(err, schema.ErrNoRemoteData) {
				log.Debug("No remote data for interval")
			} else {
				log.WithError(err).Warn("Fetch failed, skipping interval")
			}
			return nil
		}
	}

	t, err := parser.Parse(rawPath)
	if err != nil {
		log.WithError(err).Warn("Parse failed, skipping interval")
		return nil
	}
	t.SetUnits(d.Units)

	if l.cfg.FastCache {
		// Strictly a performance optimization; a failed write never fails
		// the request.
		if err := l.cache.WriteConverted(convPath, t); err != nil {
			log.WithError(err).Warn("Failed to write converted cache")
		}
	}
	return t
}

// recordFetch writes the fetch outcome to the ledger, if one is configured.
func (l *Loader) recordFetch(d *schema.Descriptor, iv schema.Interval, fetchErr error) {
	if l.ledger == nil {
		return
	}
	outcome := schema.FetchOK
	switch {
	case errors.Is(fetchErr, schema.ErrNoRemoteData):
		outcome = schema.FetchNotFound
	case fetchErr != nil:
		outcome = schema.FetchFailed
	}
	if err := l.ledger.Record(d.Key(), iv.Label(), outcome, time.Now().Unix()); err != nil {
		l.log.WithError(err).Debug("Failed to record fetch in ledger")
	}
}
