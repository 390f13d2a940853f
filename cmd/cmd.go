// Package cmd defines the command-line interface for gitwrapped.
package cmd

import (
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(wrappedCmd)
	rootCmd.AddCommand(archetypesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("token", "", "GitHub token (prefer GITHUB_TOKEN or GITWRAPPED_TOKEN)")
	rootCmd.PersistentFlags().String("api-url", contract.DefaultAPIURL, "GitHub API base URL (for GitHub Enterprise)")
	rootCmd.PersistentFlags().Int("max-pages", contract.DefaultMaxPages, "Pages of 100 repositories and events to fetch")
	rootCmd.PersistentFlags().Int("language-repos", contract.DefaultLanguageRepos, "Number of recently pushed repositories to fetch language bytes for")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent language fetches")
	rootCmd.PersistentFlags().String("timezone", contract.DefaultTimezone, "IANA time zone used for hours, weekdays and dates")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-ttl", contract.DefaultCacheTTL.String(), "How long a cached snapshot stays fresh")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for run history (a SQLite file must differ from the cache file)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of wrappedCmd to Viper
	wrappedCmd.Flags().Int("year", 0, "Calendar year to summarize (0 = current year)")
	wrappedCmd.Flags().Bool("explain", false, "Show the classifier inputs and the rule that matched")
	if err := viper.BindPFlags(wrappedCmd.Flags()); err != nil {
		contract.LogFatal("Error binding wrapped flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address for the HTTP server to listen on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
