// Package cmd defines the command-line interface for helioget.
package cmd

import (
	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("download-dir", "", "Root directory for downloaded data (default ~/helioget/data)")
	rootCmd.PersistentFlags().String("fast-cache", "yes", "Keep fast-load converted copies of parsed files (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent interval workers")
	rootCmd.PersistentFlags().String("timeout", "", "HTTP fetch timeout as a Go duration (e.g. 30s)")
	rootCmd.PersistentFlags().Int("retries", contract.DefaultFetchRetries, "Retries per interval for transport failures")
	rootCmd.PersistentFlags().String("cookie", "", "Session cookie header passed to archives that require one")
	rootCmd.PersistentFlags().String("ledger-backend", string(schema.SQLiteBackend), "Fetch ledger backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("ledger-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored values in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of loadCmd to Viper
	loadCmd.Flags().String("start", "", "Start of the requested time range in ISO8601")
	loadCmd.Flags().String("end", "", "End of the requested time range in ISO8601")
	if err := viper.BindPFlags(loadCmd.Flags()); err != nil {
		contract.LogFatal("Error binding load flags", err)
	}
}
