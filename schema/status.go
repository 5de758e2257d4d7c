package schema

import "time"

// LedgerStatus holds status information about the fetch ledger.
type LedgerStatus struct {
	Backend         string         `json:"backend"`
	Connected       bool           `json:"connected"`
	TotalFetches    int            `json:"total_fetches"`
	Outcomes        map[string]int `json:"outcomes,omitempty"`
	OldestFetchTime time.Time      `json:"oldest_fetch_time,omitzero"`
	LastFetchTime   time.Time      `json:"last_fetch_time,omitzero"`
}

// CacheStatus holds status information about the on-disk download cache.
type CacheStatus struct {
	RootDir        string `json:"root_dir"`
	RawFiles       int    `json:"raw_files"`
	ConvertedFiles int    `json:"converted_files"`
	TotalBytes     int64  `json:"total_bytes"`
}
