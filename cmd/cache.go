package cmd

import (
	"fmt"

	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/internal/diskcache"
	"github.com/helioget/helioget/internal/outwriter"
	"github.com/spf13/cobra"
)

// cacheCmd focused on download cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local download cache",
	Long: `Manage the on-disk cache of downloaded raw files and their fast-load copies.

Raw files are the canonical downloads from the mission archives. Fast-load
copies are rebuilt from raw files on demand, so they are always safe to
delete.

Subcommands:
  status - Show cache statistics and fetch ledger counts
  clear  - Remove fast-load copies (raw downloads are kept)

Examples:
  # Check cache status
  helioget cache status

  # Rebuild fast-load copies from scratch on the next load
  helioget cache clear`,
}

// cacheStatusCmd shows cache and ledger status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and fetch ledger details",
	Long: `Show detailed information about the download cache and fetch ledger.

Displays:
- Download root with raw and converted file counts and total size
- Ledger backend, connection status and per-outcome fetch counts

Examples:
  # Check cache status
  helioget cache status`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		ow := outwriter.NewOutWriter()

		cache := diskcache.New(cfg.DownloadDir)
		cacheStatus, err := cache.Status()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		if err := ow.WriteCacheStatus(&cacheStatus, cfg); err != nil {
			contract.LogFatal("Failed to write cache status", err)
		}

		ledger, err := diskcache.NewLedgerStore(cfg.LedgerBackend, cfg.LedgerDBConnect)
		if err != nil {
			contract.LogFatal("Failed to open fetch ledger", err)
		}
		defer func() { _ = ledger.Close() }()
		ledgerStatus, err := ledger.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get ledger status", err)
		}
		if err := ow.WriteLedgerStatus(&ledgerStatus, cfg); err != nil {
			contract.LogFatal("Failed to write ledger status", err)
		}
	},
}

// cacheClearCmd clears the converted side of the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove fast-load converted files from the cache",
	Long: `Delete every fast-load converted file under the download root.

Use this when:
- A parser was fixed and cached tables may carry its old mistakes
- Converted files are suspected to be corrupt
- Disk space matters more than re-parse time

Raw downloads are never touched; the next load rebuilds converted copies
from them.

Examples:
  # Clear converted files
  helioget cache clear`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		cache := diskcache.New(cfg.DownloadDir)
		if err := cache.Clear(); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}
