package iocache

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/huangsam/gitwrapped/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateTableName rejects anything that is not a plain SQL identifier.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern %s)", name, tableNamePattern)
	}
	return nil
}

// quoteTableName returns the table name quoted for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// driverFor maps a backend to its database/sql driver name.
func driverFor(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// openDatabase opens and pings a connection for the backend. An empty SQLite
// connection string falls back to defaultPath.
func openDatabase(backend schema.DatabaseBackend, connStr, defaultPath string) (*sql.DB, error) {
	driverName, err := driverFor(backend)
	if err != nil {
		return nil, err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = defaultPath
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// One writer at a time, otherwise "database is locked"
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connectionHint(backend))
	}
	return db, nil
}

func connectionHint(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "Check connection format: user:password@tcp(host:port)/dbname?parseTime=true"
	case schema.PostgreSQLBackend:
		return "Check connection format: host=localhost port=5432 user=postgres dbname=mydb"
	default:
		return "Ensure the directory is writable"
	}
}

// placeholders renders n bind parameters for the backend, e.g. "$1, $2" or "?, ?".
func placeholders(backend schema.DatabaseBackend, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = placeholder(backend, i+1)
	}
	return strings.Join(parts, ", ")
}

// placeholder renders the i-th (1-based) bind parameter for the backend.
func placeholder(backend schema.DatabaseBackend, i int) string {
	if backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

// formatTime converts a time to what the backend stores. SQLite keeps RFC3339 text.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t.UTC()
}

// timeScanner reads a timestamp column written by formatTime.
type timeScanner struct {
	backend schema.DatabaseBackend
	text    sql.NullString
	native  sql.NullTime
}

func (ts *timeScanner) dest() any {
	if ts.backend == schema.SQLiteBackend {
		return &ts.text
	}
	return &ts.native
}

// value returns the scanned time, or nil for SQL NULL.
func (ts *timeScanner) value() (*time.Time, error) {
	if ts.backend == schema.SQLiteBackend {
		if !ts.text.Valid {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339Nano, ts.text.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp %q: %w", ts.text.String, err)
		}
		return &t, nil
	}
	if !ts.native.Valid {
		return nil, nil
	}
	t := ts.native.Time
	return &t, nil
}
