// Package fetchclient retrieves raw telemetry files from mission data
// archives over HTTP.
package fetchclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/schema"
)

// partSuffix marks in-flight downloads that are atomically renamed on success.
const partSuffix = ".part"

// HTTPFetcher downloads per-interval raw files. Not-found responses are
// reported as schema.ErrNoRemoteData; everything else transport-shaped is a
// *schema.NetworkError, retried a bounded number of times. A circuit
// breaker trips fast across intervals when the remote host is down.
type HTTPFetcher struct {
	client  *http.Client
	retries int
	cookie  string
	circuit *gobreaker.CircuitBreaker
	log     *logrus.Entry
}

var _ contract.RemoteFetcher = (*HTTPFetcher)(nil) // Compile-time check

// New creates a fetcher from the validated runtime configuration.
func New(cfg *contract.Config) *HTTPFetcher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "fetchclient",
		MaxRequests: 3,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		// Sparse archives answer long runs of intervals with 404; an
		// absent file is an answer, not an outage. Only transport-class
		// failures may count against the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, schema.ErrNoRemoteData)
		},
	})
	return &HTTPFetcher{
		client:  &http.Client{Timeout: cfg.FetchTimeout},
		retries: cfg.FetchRetries,
		cookie:  cfg.SessionCookie,
		circuit: cb,
		log:     logrus.WithField("component", "fetchclient"),
	}
}

// Fetch retrieves the raw file for one interval into localPath. The parent
// directory must already exist; callers go through the cache's EnsureDir.
func (f *HTTPFetcher) Fetch(ctx context.Context, d *schema.Descriptor, iv schema.Interval, localPath string) error {
	base := strings.TrimSuffix(d.RemoteBaseURL, "/")
	rel := d.RelativePath(iv)

	if d.FuzzyVersion {
		resolved, err := f.resolveVersioned(ctx, base, rel)
		if err != nil {
			return err
		}
		rel = resolved
	}
	url := base + "/" + rel

	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		err := f.download(ctx, url, localPath)
		if err == nil {
			f.log.WithFields(logrus.Fields{
				"dataset":  d.Key(),
				"interval": iv.Label(),
				"url":      url,
			}).Info("Downloaded raw file")
			return nil
		}
		if errors.Is(err, schema.ErrNoRemoteData) {
			// The resource is genuinely absent; retrying cannot help.
			return err
		}
		lastErr = err
		if attempt < f.retries {
			f.log.WithError(err).WithField("url", url).Warn("Fetch failed, retrying")
		}
	}
	return lastErr
}

// download performs one GET of url into localPath via temp file and rename.
func (f *HTTPFetcher) download(ctx context.Context, url, localPath string) error {
	body, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	tmp := localPath + partSuffix
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if _, err := io.Copy(out, body); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return &schema.NetworkError{URL: url, Err: err}
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to flush %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, localPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to finalize %s: %w", localPath, err)
	}
	return nil
}

// get issues one request through the circuit breaker and classifies the
// response. The caller owns the returned body.
func (f *HTTPFetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	result, err := f.circuit.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		if f.cookie != "" {
			req.Header.Set("Cookie", f.cookie)
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return nil, &schema.NetworkError{URL: url, Err: err}
		}
		switch {
		case resp.StatusCode == http.StatusOK:
			return resp.Body, nil
		case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
			_ = resp.Body.Close()
			return nil, fmt.Errorf("%w: %s", schema.ErrNoRemoteData, url)
		default:
			_ = resp.Body.Close()
			return nil, &schema.NetworkError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
		}
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &schema.NetworkError{URL: url, Err: err}
		}
		return nil, err
	}
	return result.(io.ReadCloser), nil
}

// resolveVersioned lists the remote directory of rel and picks the entry
// matching rel's basename prefix. When several versions are present the
// highest-sorting filename wins, which matches the vNN suffix convention of
// mission archives. An empty listing or no match means no remote data.
func (f *HTTPFetcher) resolveVersioned(ctx context.Context, base, rel string) (string, error) {
	dir := path.Dir(rel)
	listURL := base + "/"
	if dir != "." {
		listURL += dir + "/"
	}

	body, err := f.get(ctx, listURL)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	entries, err := parseListing(body)
	if err != nil {
		return "", &schema.NetworkError{URL: listURL, Err: err}
	}

	name := path.Base(rel)
	ext := path.Ext(name)
	prefix := strings.TrimSuffix(name, ext)

	var matches []string
	for _, e := range entries {
		if strings.HasPrefix(e, prefix) && (ext == "" || strings.HasSuffix(e, ext)) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no file matching %s* at %s", schema.ErrNoRemoteData, prefix, listURL)
	}
	sort.Strings(matches)
	resolved := matches[len(matches)-1]
	if dir != "." {
		resolved = path.Join(dir, resolved)
	}
	return resolved, nil
}
