// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteTable prints a loaded data table using the configured output format.
func (ow *OutWriter) WriteTable(t *schema.Table, cfg *contract.Config, duration time.Duration) error {
	return WriteTableResults(t, cfg, duration)
}

// WriteDatasets prints the registered dataset listing using the configured output format.
func (ow *OutWriter) WriteDatasets(entries []DatasetEntry, cfg *contract.Config) error {
	return WriteDatasetList(entries, cfg)
}

// WriteLedgerStatus prints fetch ledger status using the configured output format.
func (ow *OutWriter) WriteLedgerStatus(status *schema.LedgerStatus, cfg *contract.Config) error {
	return WriteLedgerStatusResults(status, cfg)
}

// WriteCacheStatus prints download cache status using the configured output format.
func (ow *OutWriter) WriteCacheStatus(status *schema.CacheStatus, cfg *contract.Config) error {
	return WriteCacheStatusResults(status, cfg)
}

// GetMaxTableColumns calculates how many data columns fit in table output
// based on terminal width and the configured precision.
func GetMaxTableColumns(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the timestamp column with borders/padding
	baseWidth := 28

	// Each data column costs its formatted value plus table formatting
	colWidth := cfg.Precision + 12

	available := (termWidth - baseWidth) / colWidth
	if available < 1 {
		// Always show at least one data column
		return 1
	}
	return available
}
