package schema

// Custom string types for type safety.
type (
	// Granularity represents the calendar unit used to address remote files.
	Granularity string

	// OutputMode represents the format of the output.
	OutputMode string

	// LedgerBackend represents the database backend for the fetch ledger.
	LedgerBackend string

	// FetchOutcome represents the recorded result of one fetch attempt.
	FetchOutcome string
)

// All file granularities supported.
const (
	Daily   Granularity = "daily" // default
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All ledger backends supported.
const (
	SQLiteBackend     LedgerBackend = "sqlite" // default
	MySQLBackend      LedgerBackend = "mysql"
	PostgreSQLBackend LedgerBackend = "postgresql"
	NoneBackend       LedgerBackend = "none"
)

// All fetch outcomes recorded in the ledger.
const (
	FetchOK       FetchOutcome = "ok"
	FetchNotFound FetchOutcome = "not_found"
	FetchFailed   FetchOutcome = "failed"
)

// ValidGranularities lists all valid file granularities.
var ValidGranularities = map[Granularity]struct{}{
	Daily:   {},
	Monthly: {},
	Yearly:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidLedgerBackends lists all valid ledger backends.
var ValidLedgerBackends = map[LedgerBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
