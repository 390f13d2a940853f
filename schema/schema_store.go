package schema

import "time"

// AnalysisRunRecord represents a row from the gitwrapped_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID    int64
	Username      string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalEvents   int32
	ConfigParams  *string
}

// WrappedRecord represents a row from the gitwrapped_wrapped_results table.
type WrappedRecord struct {
	AnalysisID     int64
	Username       string
	Year           int32
	AnalysisTime   time.Time
	Archetype      string
	Rarity         string
	TotalEvents    int32
	Commits        int32
	PullRequests   int32
	Issues         int32
	Reviews        int32
	PeakHour       int32
	PeakDay        string
	WeekendRatio   float64
	LongestStreak  int32
	StarsEarned    int32
	ForksEarned    int32
	ExternalRepos  int32
	WorkStyle      string
	TopLanguage    *string
	TopRepository  *string
	TopStarredRepo *string
}

// NewWrappedRecord flattens a result into its stored summary row.
func NewWrappedRecord(analysisID int64, analysisTime time.Time, result WrappedResult) WrappedRecord {
	rec := WrappedRecord{
		AnalysisID:    analysisID,
		Username:      result.Username,
		Year:          int32(result.Year),
		AnalysisTime:  analysisTime,
		Archetype:     result.Archetype.Name,
		Rarity:        string(result.Archetype.Rarity),
		TotalEvents:   int32(result.Contributions.Total),
		Commits:       int32(result.Contributions.Commits),
		PullRequests:  int32(result.Contributions.PRs),
		Issues:        int32(result.Contributions.Issues),
		Reviews:       int32(result.Contributions.Reviews),
		PeakHour:      int32(result.Rhythm.PeakHour),
		PeakDay:       result.Rhythm.PeakDay,
		WeekendRatio:  result.Rhythm.WeekendRatio,
		LongestStreak: int32(result.Rhythm.LongestStreak),
		StarsEarned:   int32(result.Impact.StarsEarned),
		ForksEarned:   int32(result.Impact.ForksEarned),
		ExternalRepos: int32(result.Collaboration.ExternalRepos),
		WorkStyle:     string(result.Collaboration.WorkStyle),
	}
	if len(result.Languages) > 0 {
		rec.TopLanguage = &result.Languages[0].Name
	}
	if len(result.Repositories) > 0 {
		rec.TopRepository = &result.Repositories[0].Name
	}
	if result.Impact.TopStarredRepo != "" {
		rec.TopStarredRepo = &result.Impact.TopStarredRepo
	}
	return rec
}
