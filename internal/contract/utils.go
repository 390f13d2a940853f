package contract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/gitwrapped/schema"
)

// Color variables for console output.
var (
	LegendaryColor = color.New(color.FgYellow, color.Bold)  // LegendaryColor is reserved for the top tier.
	RareColor      = color.New(color.FgMagenta, color.Bold) // RareColor stands out from the rest.
	UncommonColor  = color.New(color.FgCyan)                // UncommonColor is a mild highlight.
	CommonColor    = color.New(color.FgWhite)               // CommonColor is the baseline.
	HeadingColor   = color.New(color.FgGreen, color.Bold)
)

// ErrInvalidUsername is returned when a username cannot be a GitHub login.
var ErrInvalidUsername = errors.New("invalid GitHub username")

// usernamePattern matches GitHub logins: alphanumerics and single inner hyphens, up to 39 characters.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9]|-[a-zA-Z0-9]){0,38}$`)

// ValidateUsername checks that a username is a syntactically valid GitHub login.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}
	return nil
}

// GetRarityLabel returns the rarity as plain text for CSV and JSON output.
func GetRarityLabel(r schema.Rarity) string {
	return strings.ToUpper(string(r))
}

// GetColorRarityLabel returns a colored rarity label for console output.
func GetColorRarityLabel(r schema.Rarity) string {
	text := GetRarityLabel(r)

	switch r {
	case schema.LegendaryRarity:
		return LegendaryColor.Sprint(text)
	case schema.RareRarity:
		return RareColor.Sprint(text)
	case schema.UncommonRarity:
		return UncommonColor.Sprint(text)
	default:
		return CommonColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It uses os.Stdout when no path is given.
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

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitwrapped_cache.db"
	}
	return filepath.Join(homeDir, ".gitwrapped_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitwrapped_analysis.db"
	}
	return filepath.Join(homeDir, ".gitwrapped_analysis.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is space for the ellipsis and some content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
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
