package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ParseBoolString parses yes/no style boolean flags.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// timeArgLayouts are the accepted formats for --start/--end, most specific first.
var timeArgLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimeArg parses a user-provided start or end time.
func ParseTimeArg(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeArgLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q (expected ISO8601, e.g. 2020-01-01 or 2020-01-01T06:00:00Z)", s)
}

// DefaultDownloadDir returns the default root directory for downloaded data.
func DefaultDownloadDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "helioget-data"
	}
	return filepath.Join(homeDir, "helioget", "data")
}

// GetLedgerDBFilePath returns the path to the SQLite DB file for the fetch ledger.
func GetLedgerDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".helioget_ledger.db"
	}
	return filepath.Join(homeDir, ".helioget_ledger.db")
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}
