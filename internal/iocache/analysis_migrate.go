package iocache

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/gitwrapped/schema"
)

//go:embed migrations
var migrationsFS embed.FS

// MigrateAnalysis runs database migrations for the analysis store and reports the outcome.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations.
// - If targetVersion > 0, it migrates to the specified version.
func MigrateAnalysis(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	return migrateAnalysis(backend, connStr, targetVersion, func(format string, args ...any) {
		fmt.Printf(format+"\n", args...)
	})
}

// migrateAnalysis does the work of MigrateAnalysis, sending progress lines to report.
func migrateAnalysis(backend schema.DatabaseBackend, connStr string, targetVersion int, report func(string, ...any)) error {
	if backend == schema.NoneBackend {
		return fmt.Errorf("migrations are not supported for NoneBackend")
	}

	db, err := openDatabase(backend, connStr, GetAnalysisDBFilePath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var driver database.Driver
	switch backend {
	case schema.SQLiteBackend:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	case schema.MySQLBackend:
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	case schema.PostgreSQLBackend:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	migrationFS, err := fs.Sub(migrationsFS, "migrations/"+string(backend))
	if err != nil {
		return fmt.Errorf("failed to access migrations directory: %w", err)
	}
	sourceDriver, err := iofs.New(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, string(backend), driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", currentVersion)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			report("No migration needed. Database is already at the latest version.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to migrate to latest version: %w", err)
		}
		newVersion, _, _ := m.Version()
		report("Successfully migrated from version %d to version %d", currentVersion, newVersion)

	case targetVersion == 0:
		err = m.Down()
		if errors.Is(err, migrate.ErrNoChange) {
			report("No migration needed. Database is already at version 0")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to roll back to version 0: %w", err)
		}
		report("Successfully rolled back from version %d to version 0", currentVersion)

	default:
		err = m.Migrate(uint(targetVersion))
		if errors.Is(err, migrate.ErrNoChange) {
			report("No migration needed. Database is already at version %d", targetVersion)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to migrate to version %d: %w", targetVersion, err)
		}
		report("Successfully migrated from version %d to version %d", currentVersion, targetVersion)
	}

	return nil
}
