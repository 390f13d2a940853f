package cmd

import (
	"fmt"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/iocache"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// No run history for cache commands
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// sqlitePath returns the SQLite file a connection string names, or the default file.
func sqlitePath(connStr, defaultPath string) string {
	if connStr != "" {
		return connStr
	}
	return defaultPath
}

// cacheCmd focused on cache management.
//
// Cache subcommands skip the full sharedSetup, so they work without a username
// or any GitHub settings.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the GitHub activity cache",
	Long: `Manage the cache of fetched GitHub activity.

gitwrapped stores each fetched snapshot (profile, repositories, events and
language bytes) so repeated runs for the same user skip the API until the
entry is older than --cache-ttl. This also saves unauthenticated rate limit.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  gitwrapped cache status
  gitwrapped cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached GitHub activity",
	Long: `Delete all cached snapshots from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  gitwrapped cache clear
  GITWRAPPED_CACHE_BACKEND=mysql GITWRAPPED_CACHE_DB_CONNECT="..." gitwrapped cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the connection before removing the file or table
		iocache.CloseCaching()
		if err := iocache.ClearCache(cfg.CacheBackend, sqlitePath(cfg.CacheDBConnect, iocache.GetDBFilePath()), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the cache backend, entry count, newest and oldest entries and size.

Examples:
  gitwrapped cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetActivityStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
