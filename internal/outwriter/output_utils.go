package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/gitwrapped/internal/contract"
	"golang.org/x/term"
)

// Terminal width bounds used by the text renderer.
const (
	defaultTermWidth = 80
	minBarWidth      = 10
	maxBarWidth      = 40

	// barReserve is the room kept for the language, share and line columns.
	barReserve = 45
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON encodes data with two-space indentation.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader creates a CSV writer, writes the header and then the rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// getTerminalWidth returns the configured width override, the detected terminal
// width, or a conservative default when neither is available.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return defaultTermWidth
	}
	return detected
}

// getBarWidth sizes the language share bars to the space left by the other columns.
func getBarWidth(cfg *contract.Config) int {
	return max(minBarWidth, min(maxBarWidth, getTerminalWidth(cfg)-barReserve))
}

// renderBar draws a percentage as a bar of the given width.
func renderBar(percentage, width int) string {
	percentage = max(0, min(100, percentage))
	filled := percentage * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
