package diskcache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"   // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"   // PostgreSQL driver
	_ "modernc.org/sqlite"               // SQLite driver

	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/schema"
)

// ledgerTable is the name of the fetch ledger table.
const ledgerTable = "fetch_ledger"

// LedgerStoreImpl records fetch outcomes using various database backends.
// One row per (dataset, interval); repeated fetches overwrite the outcome.
type LedgerStoreImpl struct {
	db      *sql.DB
	backend schema.LedgerBackend
}

var _ contract.FetchLedger = &LedgerStoreImpl{} // Compile-time check

// NewLedgerStore initializes and returns a new fetch ledger based on the backend type.
func NewLedgerStore(backend schema.LedgerBackend, connStr string) (contract.FetchLedger, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetLedgerDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite ledger at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL ledger: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL ledger: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled ledger tracking
		return &LedgerStoreImpl{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported ledger backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(getCreateTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", ledgerTable, err)
	}

	return &LedgerStoreImpl{db: db, backend: backend}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(backend schema.LedgerBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				dataset VARCHAR(255) NOT NULL,
				interval_label VARCHAR(64) NOT NULL,
				outcome VARCHAR(32) NOT NULL,
				fetch_timestamp BIGINT NOT NULL,
				PRIMARY KEY (dataset, interval_label)
			);
		`, ledgerTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				dataset TEXT NOT NULL,
				interval_label TEXT NOT NULL,
				outcome TEXT NOT NULL,
				fetch_timestamp BIGINT NOT NULL,
				PRIMARY KEY (dataset, interval_label)
			);
		`, ledgerTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				dataset TEXT NOT NULL,
				interval_label TEXT NOT NULL,
				outcome TEXT NOT NULL,
				fetch_timestamp INTEGER NOT NULL,
				PRIMARY KEY (dataset, interval_label)
			);
		`, ledgerTable)
	}
}

// Record upserts the outcome of one fetch attempt.
func (ls *LedgerStoreImpl) Record(dataset, interval string, outcome schema.FetchOutcome, timestamp int64) error {
	// Skip for NoneBackend
	if ls.backend == schema.NoneBackend || ls.db == nil {
		return nil
	}
	_, err := ls.db.Exec(ls.getUpsertQuery(), dataset, interval, string(outcome), timestamp)
	return err
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ls *LedgerStoreImpl) getUpsertQuery() string {
	switch ls.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (dataset, interval_label, outcome, fetch_timestamp) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE outcome = new.outcome, fetch_timestamp = new.fetch_timestamp`, ledgerTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (dataset, interval_label, outcome, fetch_timestamp) VALUES ($1, $2, $3, $4)
			ON CONFLICT (dataset, interval_label) DO UPDATE SET outcome = EXCLUDED.outcome, fetch_timestamp = EXCLUDED.fetch_timestamp`, ledgerTable)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (dataset, interval_label, outcome, fetch_timestamp) VALUES (?, ?, ?, ?)`, ledgerTable)
	}
}

// GetStatus returns status information about the fetch ledger.
func (ls *LedgerStoreImpl) GetStatus() (schema.LedgerStatus, error) {
	status := schema.LedgerStatus{
		Backend:   string(ls.backend),
		Connected: ls.db != nil,
	}

	if ls.backend == schema.NoneBackend || ls.db == nil {
		return status, nil
	}

	row := ls.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", ledgerTable))
	if err := row.Scan(&status.TotalFetches); err != nil {
		return status, fmt.Errorf("failed to get total fetches: %w", err)
	}
	if status.TotalFetches == 0 {
		return status, nil
	}

	rows, err := ls.db.Query(fmt.Sprintf("SELECT outcome, COUNT(*) FROM %s GROUP BY outcome", ledgerTable))
	if err != nil {
		return status, fmt.Errorf("failed to get outcome counts: %w", err)
	}
	defer func() { _ = rows.Close() }()
	status.Outcomes = make(map[string]int)
	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return status, err
		}
		status.Outcomes[outcome] = count
	}
	if err := rows.Err(); err != nil {
		return status, err
	}

	var oldestTs, lastTs int64
	row = ls.db.QueryRow(fmt.Sprintf("SELECT MIN(fetch_timestamp), MAX(fetch_timestamp) FROM %s", ledgerTable))
	if err := row.Scan(&oldestTs, &lastTs); err != nil {
		return status, fmt.Errorf("failed to get fetch times: %w", err)
	}
	status.OldestFetchTime = time.Unix(oldestTs, 0)
	status.LastFetchTime = time.Unix(lastTs, 0)

	return status, nil
}

// Close closes the underlying DB connection.
func (ls *LedgerStoreImpl) Close() error {
	if ls.db != nil {
		return ls.db.Close()
	}
	return nil
}
