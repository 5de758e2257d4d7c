package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/helioget/helioget/schema"
)

// Default values for configuration.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultFetchRetries = 0
	MaxFetchRetries     = 5
	DefaultPrecision    = 4
	MaxPrecision        = 10
)

// DefaultWorkers is the default number of concurrent interval workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for the pipeline.
// This struct remains the "final, validated" config.
type Config struct {
	DownloadDir   string
	FastCache     bool // write converted fast-load copies after parsing
	Workers       int
	FetchTimeout  time.Duration
	FetchRetries  int
	SessionCookie string // threaded through to the fetcher for authenticated sources

	LedgerBackend   schema.LedgerBackend
	LedgerDBConnect string // Please use env var as this is plaintext

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	DownloadDir     string `mapstructure:"download-dir"`
	FastCache       string `mapstructure:"fast-cache"`
	Workers         int    `mapstructure:"workers"`
	Timeout         string `mapstructure:"timeout"`
	Retries         int    `mapstructure:"retries"`
	Cookie          string `mapstructure:"cookie"`
	LedgerBackend   string `mapstructure:"ledger-backend"`
	LedgerDBConnect string `mapstructure:"ledger-db-connect"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Precision       int    `mapstructure:"precision"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
}

// Validate transfers and validates raw inputs into the final config.
func Validate(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.SessionCookie = input.Cookie

	// --- 1. Download directory ---
	cfg.DownloadDir = input.DownloadDir
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = DefaultDownloadDir()
	}

	// --- 2. Boolean flags ---
	fastCache, err := ParseBoolString(input.FastCache)
	if err != nil {
		return fmt.Errorf("invalid --fast-cache value: %w", err)
	}
	cfg.FastCache = fastCache

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 3. Workers ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 4. Fetch timeout and retries ---
	cfg.FetchTimeout = DefaultFetchTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout value %q: %w", input.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive (received %s)", d)
		}
		cfg.FetchTimeout = d
	}
	if input.Retries < 0 || input.Retries > MaxFetchRetries {
		return fmt.Errorf("retries must be between 0 and %d (received %d)", MaxFetchRetries, input.Retries)
	}
	cfg.FetchRetries = input.Retries

	// --- 5. Precision and output ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- 6. Ledger backend ---
	cfg.LedgerBackend = schema.LedgerBackend(strings.ToLower(input.LedgerBackend))
	if _, ok := schema.ValidLedgerBackends[cfg.LedgerBackend]; !ok {
		return fmt.Errorf("invalid ledger backend '%s'. must be sqlite, mysql, postgresql, none", input.LedgerBackend)
	}
	cfg.LedgerDBConnect = input.LedgerDBConnect
	if err := ValidateLedgerConnectionString(cfg.LedgerBackend, cfg.LedgerDBConnect); err != nil {
		return err
	}

	return nil
}

// ValidateLedgerConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateLedgerConnectionString(backend schema.LedgerBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("ledger-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("ledger-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
