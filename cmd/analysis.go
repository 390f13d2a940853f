package cmd

import (
	"fmt"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/iocache"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// analysisBackendFromViper reads and validates the run history backend settings.
// An unset backend means tracking is disabled.
func analysisBackendFromViper() (schema.DatabaseBackend, string, error) {
	backend := schema.DatabaseBackend(viper.GetString("analysis-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("analysis-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// analysisSetup loads minimal configuration needed for run history operations.
func analysisSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := analysisBackendFromViper()
	if err != nil {
		return err
	}

	// No snapshot cache for analysis commands
	if err := iocache.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// analysisSetupWrapper wraps analysisSetup to provide PreRunE for analysis commands.
func analysisSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisSetup()
}

// analysisMigrateSetup is like analysisSetup but leaves the stores closed,
// so migrations can run against a fresh database.
func analysisMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := analysisBackendFromViper()
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend {
		connStr = sqlitePath(connStr, iocache.GetAnalysisDBFilePath())
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	return nil
}

func analysisMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisMigrateSetup()
}

// analysisCmd focused on run history management.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage the history of wrapped runs and exports",
	Long: `Manage the recorded history of wrapped runs.

When --analysis-backend is set, every wrapped run is recorded with:
- Run metadata (user, start and end time, configuration, event count)
- The computed summary (archetype, totals, top repository and language)
- The full result as JSON

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run history statistics
  export  - Export runs and summaries to Parquet
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  gitwrapped analysis status
  gitwrapped analysis export --output-file history`,
}

// analysisClearCmd clears the run history.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded wrapped runs",
	Long: `Delete all recorded runs and wrapped summaries.

This action cannot be undone. Export first if the history matters.

Examples:
  gitwrapped analysis export --output-file backup
  gitwrapped analysis clear`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		iocache.CloseCaching()
		path := sqlitePath(cfg.AnalysisDBConnect, iocache.GetAnalysisDBFilePath())
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, path, cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

// analysisStatusCmd shows run history status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show the backend, number of recorded runs, newest and oldest runs,
and the size of each table.

Examples:
  gitwrapped analysis status
  gitwrapped analysis status --analysis-backend sqlite`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetAnalysisStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(status)
	},
}

// analysisExportCmd exports run history to Parquet files.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet",
	Long: `Export recorded runs to two Parquet files:

  <output-file>.analysis_runs.parquet   - one row per run
  <output-file>.wrapped_results.parquet - one row per wrapped summary

Requires: --output-file parameter

Examples:
  gitwrapped analysis export --output-file history
  duckdb -c "SELECT archetype, count(*) FROM read_parquet('history.wrapped_results.parquet') GROUP BY 1"`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

// analysisMigrateCmd runs database migrations for the run history store.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  gitwrapped analysis migrate --analysis-backend sqlite
  gitwrapped analysis migrate --analysis-backend postgresql --analysis-db-connect "..." --target-version 1
  gitwrapped analysis migrate --analysis-backend sqlite --target-version 0`,
	PreRunE: analysisMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigrateAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
