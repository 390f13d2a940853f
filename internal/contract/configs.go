package contract

import (
	"fmt"
	"net/url"
	"runtime"
	"strings"
	"time"
	_ "time/tzdata" // zone names must resolve in minimal containers

	"github.com/huangsam/gitwrapped/schema"
)

// Default values for configuration.
const (
	DefaultAPIURL        = "https://api.github.com/"
	DefaultMaxPages      = 3
	MaxPagesLimit        = 10
	PerPage              = 100
	DefaultLanguageRepos = 20
	MaxLanguageRepos     = 100
	DefaultCacheTTL      = time.Hour
	DefaultAddr          = ":8080"
	DefaultTimezone      = "Local"

	// FirstGitHubYear bounds the accepted year range from below.
	FirstGitHubYear = 2008
)

// DefaultWorkers is the default number of concurrent language fetches.
var DefaultWorkers = min(runtime.GOMAXPROCS(0)*2, 16)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a wrapped run.
// This struct remains the "final, validated" config.
type Config struct {
	Username string
	Year     int
	Location *time.Location

	Token         string // Please use env var as this is plaintext
	APIURL        string
	MaxPages      int
	LanguageRepos int
	Workers       int

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	Explain    bool
	UseColors  bool

	CacheTTL time.Duration
	Addr     string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Username string

	// --- Fields from rootCmd.PersistentFlags() ---
	Token             string `mapstructure:"token"`
	APIURL            string `mapstructure:"api-url"`
	MaxPages          int    `mapstructure:"max-pages"`
	LanguageRepos     int    `mapstructure:"language-repos"`
	Workers           int    `mapstructure:"workers"`
	Timezone          string `mapstructure:"timezone"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	CacheTTL          string `mapstructure:"cache-ttl"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`

	// --- Fields from wrappedCmd.Flags() ---
	Year    int  `mapstructure:"year"`
	Explain bool `mapstructure:"explain"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneForRequest returns a copy of the Config for a single username and year.
// A zero year keeps the configured one.
func (c *Config) CloneForRequest(username string, year int) *Config {
	clone := c.Clone()
	clone.Username = username
	if year != 0 {
		clone.Year = year
	}
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processFetchSettings(cfg, input); err != nil {
		return err
	}
	if err := processTimeSettings(cfg, input, time.Now()); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
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

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return fmt.Errorf("analysis-db-connect: %w", err)
	}

	// Cache and analysis must not share one SQLite file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		analysisDBPath := cfg.AnalysisDBConnect
		if analysisDBPath == "" {
			analysisDBPath = GetAnalysisDBFilePath()
		}
		if cacheDBPath == analysisDBPath {
			return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Explain = input.Explain
	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	if input.Username != "" {
		if err := ValidateUsername(input.Username); err != nil {
			return err
		}
	}
	cfg.Username = input.Username

	return nil
}

// processFetchSettings validates the GitHub API settings.
func processFetchSettings(cfg *Config, input *ConfigRawInput) error {
	cfg.Token = strings.TrimSpace(input.Token)

	apiURL := strings.TrimSpace(input.APIURL)
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid api-url %q: must be an absolute http(s) URL", input.APIURL)
	}
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	cfg.APIURL = apiURL

	if input.MaxPages < 1 || input.MaxPages > MaxPagesLimit {
		return fmt.Errorf("max-pages must be between 1 and %d (received %d)", MaxPagesLimit, input.MaxPages)
	}
	cfg.MaxPages = input.MaxPages

	if input.LanguageRepos < 0 || input.LanguageRepos > MaxLanguageRepos {
		return fmt.Errorf("language-repos must be between 0 and %d (received %d)", MaxLanguageRepos, input.LanguageRepos)
	}
	cfg.LanguageRepos = input.LanguageRepos

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	return nil
}

// processTimeSettings resolves the time zone, target year and cache TTL.
func processTimeSettings(cfg *Config, input *ConfigRawInput, now time.Time) error {
	loc, err := ParseTimezone(input.Timezone)
	if err != nil {
		return err
	}
	cfg.Location = loc

	currentYear := now.In(loc).Year()
	cfg.Year = input.Year
	if cfg.Year == 0 {
		cfg.Year = currentYear
	}
	if err := ValidateYear(cfg.Year, currentYear); err != nil {
		return err
	}

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := time.ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl %q: %w", input.CacheTTL, err)
		}
		if ttl < 0 {
			return fmt.Errorf("cache-ttl cannot be negative (received %s)", input.CacheTTL)
		}
		cfg.CacheTTL = ttl
	}

	return nil
}

// ValidateYear checks that a year is within the span GitHub has existed, allowing
// one year of lookahead for time zones already in the new year.
func ValidateYear(year, currentYear int) error {
	if year < FirstGitHubYear || year > currentYear+1 {
		return fmt.Errorf("year must be between %d and %d (received %d)", FirstGitHubYear, currentYear+1, year)
	}
	return nil
}

// ParseTimezone resolves an IANA zone name. Empty and "Local" mean the system zone.
func ParseTimezone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "" || strings.EqualFold(name, DefaultTimezone):
		return time.Local, nil
	case strings.EqualFold(name, "UTC"):
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
