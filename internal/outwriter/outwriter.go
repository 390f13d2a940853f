// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
)

// headerWriter receives the run header. It is stderr so that JSON and CSV on stdout stay parseable.
var headerWriter io.Writer = os.Stderr

// LogWrappedHeader prints a concise, 2-line header before a wrapped run.
func LogWrappedHeader(cfg *contract.Config) {
	loc := "Local"
	if cfg.Location != nil {
		loc = cfg.Location.String()
	}
	_, _ = fmt.Fprintf(headerWriter, "🔎 User: %s (Year: %d)\n", cfg.Username, cfg.Year)
	_, _ = fmt.Fprintf(headerWriter, "📅 Timezone: %s, Pages: %d, Language repos: %d\n", loc, cfg.MaxPages, cfg.LanguageRepos)
}

// PrintWrappedResult outputs a wrapped result, dispatching based on the output format configured.
func PrintWrappedResult(result schema.WrappedResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWrappedCSV(w, result)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWrappedText(w, result, cfg, duration)
		}, "Wrote text")
	}
}

// PrintArchetypeCatalog outputs the archetype rule catalog in the configured format.
// This is a static display that does not require any GitHub access.
func PrintArchetypeCatalog(entries []schema.CatalogEntry, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogCSV(w, entries)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogTable(w, entries)
		}, "Wrote table")
	}
}
