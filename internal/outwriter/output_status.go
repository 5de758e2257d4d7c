package outwriter

import (
	"fmt"
	"io"
	"sort"

	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/schema"

	"github.com/fatih/color"
)

// outcomeColor picks a console color for a fetch outcome count.
func outcomeColor(cfg *contract.Config, outcome string) func(...any) string {
	if !cfg.UseColors {
		return fmt.Sprint
	}
	switch schema.FetchOutcome(outcome) {
	case schema.FetchOK:
		return color.New(color.FgGreen).SprintFunc()
	case schema.FetchNotFound:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgRed).SprintFunc()
	}
}

// WriteLedgerStatusResults outputs fetch ledger status, dispatching based on the output format configured.
func WriteLedgerStatusResults(status *schema.LedgerStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeLedgerStatusText(status, cfg, w)
	}, "Wrote status")
}

// writeLedgerStatusText writes the human-readable ledger status report.
func writeLedgerStatusText(status *schema.LedgerStatus, cfg *contract.Config, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Fetch ledger (%s backend)\n", status.Backend); err != nil {
		return err
	}
	if !status.Connected {
		_, err := fmt.Fprintln(w, "  not connected")
		return err
	}
	if _, err := fmt.Fprintf(w, "  recorded fetches: %d\n", status.TotalFetches); err != nil {
		return err
	}

	outcomes := make([]string, 0, len(status.Outcomes))
	for o := range status.Outcomes {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)
	for _, o := range outcomes {
		paint := outcomeColor(cfg, o)
		if _, err := fmt.Fprintf(w, "  %-12s %s\n", o+":", paint(status.Outcomes[o])); err != nil {
			return err
		}
	}

	if !status.OldestFetchTime.IsZero() {
		if _, err := fmt.Fprintf(w, "  oldest fetch: %s\n", status.OldestFetchTime.UTC().Format(schema.DateTimeFormat)); err != nil {
			return err
		}
	}
	if !status.LastFetchTime.IsZero() {
		if _, err := fmt.Fprintf(w, "  latest fetch: %s\n", status.LastFetchTime.UTC().Format(schema.DateTimeFormat)); err != nil {
			return err
		}
	}
	return nil
}

// WriteCacheStatusResults outputs download cache status, dispatching based on the output format configured.
func WriteCacheStatusResults(status *schema.CacheStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Download cache at %s\n", status.RootDir); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  raw files:       %d\n", status.RawFiles); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  converted files: %d\n", status.ConvertedFiles); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "  total size:      %s\n", formatBytes(status.TotalBytes))
		return err
	}, "Wrote status")
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
