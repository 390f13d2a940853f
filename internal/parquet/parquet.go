// Package parquet exports recorded wrapped runs to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/gitwrapped/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun is one row of the gitwrapped_analysis_runs table.
type AnalysisRun struct {
	AnalysisID    int64      `parquet:"analysis_id,snappy"`
	Username      string     `parquet:"username,snappy,dict"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`
	TotalEvents   int32      `parquet:"total_events,snappy"`

	// ConfigParams is the JSON-encoded request configuration
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// WrappedResultRow is one row of the gitwrapped_wrapped_results table.
type WrappedResultRow struct {
	AnalysisID   int64     `parquet:"analysis_id,snappy"`
	Username     string    `parquet:"username,snappy,dict"`
	Year         int32     `parquet:"year,snappy"`
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`

	// Archetype and Rarity repeat across rows, so they are dictionary encoded
	Archetype string `parquet:"archetype,snappy,dict"`
	Rarity    string `parquet:"rarity,snappy,dict"`

	TotalEvents  int32 `parquet:"total_events,snappy"`
	Commits      int32 `parquet:"commits,snappy"`
	PullRequests int32 `parquet:"pull_requests,snappy"`
	Issues       int32 `parquet:"issues,snappy"`
	Reviews      int32 `parquet:"reviews,snappy"`

	PeakHour      int32   `parquet:"peak_hour,snappy"`
	PeakDay       string  `parquet:"peak_day,snappy,dict"`
	WeekendRatio  float64 `parquet:"weekend_ratio,snappy"`
	LongestStreak int32   `parquet:"longest_streak,snappy"`

	StarsEarned   int32  `parquet:"stars_earned,snappy"`
	ForksEarned   int32  `parquet:"forks_earned,snappy"`
	ExternalRepos int32  `parquet:"external_repos,snappy"`
	WorkStyle     string `parquet:"work_style,snappy,dict"`

	TopLanguage    *string `parquet:"top_language,optional,snappy"`
	TopRepository  *string `parquet:"top_repository,optional,snappy"`
	TopStarredRepo *string `parquet:"top_starred_repo,optional,snappy"`
}

// WriteAnalysisRunsParquet writes analysis runs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteWrappedResultsParquet writes wrapped summaries to a Parquet file.
func WriteWrappedResultsParquet(data []WrappedResultRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows with a schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// ConvertAnalysisRunRecords converts stored runs to Parquet rows.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:    record.AnalysisID,
			Username:      record.Username,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalEvents:   record.TotalEvents,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertWrappedRecords converts stored summaries to Parquet rows.
func ConvertWrappedRecords(records []schema.WrappedRecord) []WrappedResultRow {
	result := make([]WrappedResultRow, len(records))
	for i, r := range records {
		result[i] = WrappedResultRow{
			AnalysisID:     r.AnalysisID,
			Username:       r.Username,
			Year:           r.Year,
			AnalysisTime:   r.AnalysisTime,
			Archetype:      r.Archetype,
			Rarity:         r.Rarity,
			TotalEvents:    r.TotalEvents,
			Commits:        r.Commits,
			PullRequests:   r.PullRequests,
			Issues:         r.Issues,
			Reviews:        r.Reviews,
			PeakHour:       r.PeakHour,
			PeakDay:        r.PeakDay,
			WeekendRatio:   r.WeekendRatio,
			LongestStreak:  r.LongestStreak,
			StarsEarned:    r.StarsEarned,
			ForksEarned:    r.ForksEarned,
			ExternalRepos:  r.ExternalRepos,
			WorkStyle:      r.WorkStyle,
			TopLanguage:    r.TopLanguage,
			TopRepository:  r.TopRepository,
			TopStarredRepo: r.TopStarredRepo,
		}
	}
	return result
}
