package iocache

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteAnalysisStore(t *testing.T) *AnalysisStoreImpl {
	t.Helper()
	store, err := NewAnalysisStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "analysis.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*AnalysisStoreImpl)
}

func sampleResult(username string, archetype schema.Archetype) schema.WrappedResult {
	return schema.WrappedResult{
		Username:      username,
		Year:          2025,
		Contributions: schema.ContributionStats{Total: 120, Commits: 300, PRs: 10, Issues: 4, Reviews: 6},
		Archetype:     archetype.Info(),
		Repositories:  []schema.RepositoryStat{{Name: "gitwrapped", Commits: 300}},
		Languages:     []schema.LanguageStat{{Name: "Go", Percentage: 80, LinesWritten: 900}},
		Rhythm:        schema.RhythmStats{PeakHour: 23, PeakDay: "Thursday", WeekendRatio: 0.2, LongestStreak: 12},
		Impact:        schema.ImpactStats{StarsEarned: 42, ForksEarned: 3, TopStarredRepo: "gitwrapped"},
		Collaboration: schema.CollaborationStats{ExternalRepos: 2, WorkStyle: schema.TeamPlayer},
	}
}

func TestAnalysisStore_NoneBackend(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)

	id, err := store.BeginAnalysis(time.Now(), "octocat", nil)
	require.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, store.EndAnalysis(id, time.Now(), 10))
	assert.NoError(t, store.RecordWrappedResult(id, sampleResult("octocat", schema.DeepDiver)))

	runs, err := store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)
	records, err := store.GetAllWrappedRecords()
	assert.NoError(t, err)
	assert.Empty(t, records)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestAnalysisStore_UnsupportedBackend(t *testing.T) {
	_, err := NewAnalysisStore("oracle", "")
	assert.Error(t, err)
}

func TestAnalysisStore_RunLifecycle(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	start := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	id, err := store.BeginAnalysis(start, "octocat", map[string]any{"year": 2025, "timezone": "UTC"})
	require.NoError(t, err)
	assert.Positive(t, id)

	require.NoError(t, store.EndAnalysis(id, start.Add(2500*time.Millisecond), 120))

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, id, run.AnalysisID)
	assert.Equal(t, "octocat", run.Username)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, start.Add(2500*time.Millisecond).Equal(*run.EndTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(2500), *run.RunDurationMs)
	assert.Equal(t, int32(120), run.TotalEvents)

	require.NotNil(t, run.ConfigParams)
	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(*run.ConfigParams), &params))
	assert.Equal(t, "UTC", params["timezone"])
}

func TestAnalysisStore_UnfinishedRun(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	_, err := store.BeginAnalysis(time.Now(), "hubot", nil)
	require.NoError(t, err)

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
	assert.Zero(t, runs[0].TotalEvents)
}

func TestAnalysisStore_EndUnknownRun(t *testing.T) {
	store := newSQLiteAnalysisStore(t)
	err := store.EndAnalysis(999, time.Now(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis 999")
}

func TestAnalysisStore_RecordWrappedResult(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	id, err := store.BeginAnalysis(time.Now(), "octocat", nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordWrappedResult(id, sampleResult("octocat", schema.NightOwlArchitect)))

	// A second result for the same run violates the primary key
	assert.Error(t, store.RecordWrappedResult(id, sampleResult("octocat", schema.NightOwlArchitect)))

	records, err := store.GetAllWrappedRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, id, rec.AnalysisID)
	assert.Equal(t, "octocat", rec.Username)
	assert.Equal(t, int32(2025), rec.Year)
	assert.Equal(t, "Night Owl Architect", rec.Archetype)
	assert.Equal(t, "uncommon", rec.Rarity)
	assert.Equal(t, int32(300), rec.Commits)
	assert.Equal(t, int32(10), rec.PullRequests)
	assert.Equal(t, int32(23), rec.PeakHour)
	assert.Equal(t, "Thursday", rec.PeakDay)
	assert.InDelta(t, 0.2, rec.WeekendRatio, 1e-9)
	assert.Equal(t, int32(42), rec.StarsEarned)
	assert.Equal(t, "team_player", rec.WorkStyle)
	require.NotNil(t, rec.TopLanguage)
	assert.Equal(t, "Go", *rec.TopLanguage)
	require.NotNil(t, rec.TopStarredRepo)
	assert.Equal(t, "gitwrapped", *rec.TopStarredRepo)
	assert.False(t, rec.AnalysisTime.IsZero())
}

func TestAnalysisStore_GetStatus(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[analysisRunsTable])

	base := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	runs := []struct {
		user      string
		archetype schema.Archetype
		events    int
	}{
		{"octocat", schema.DeepDiver, 150},
		{"hubot", schema.SteadyContributor, 40},
		{"octocat", schema.DeepDiver, 160},
	}
	var lastID int64
	for i, r := range runs {
		start := base.Add(time.Duration(i) * time.Hour)
		id, err := store.BeginAnalysis(start, r.user, nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordWrappedResult(id, sampleResult(r.user, r.archetype)))
		require.NoError(t, store.EndAnalysis(id, start.Add(time.Second), r.events))
		lastID = id
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, 350, status.TotalEvents)
	assert.Equal(t, 2, status.DistinctUsers)
	assert.Equal(t, lastID, status.LastRunID)
	assert.True(t, base.Add(2*time.Hour).Equal(status.LastRunTime))
	assert.True(t, base.Equal(status.OldestRunTime))
	assert.Equal(t, map[string]int{"Deep Diver": 2, "Steady Contributor": 1}, status.ArchetypeTallies)
	assert.Equal(t, int64(3), status.TableSizes[analysisRunsTable])
	assert.Equal(t, int64(3), status.TableSizes[wrappedResultsTable])
}

func TestAnalysisStore_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analysis.db")

	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.BeginAnalysis(time.Now(), "octocat", nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	runs, err := reopened.GetAllAnalysisRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestClearAnalysis_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analysis.db")
	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.BeginAnalysis(time.Now(), "octocat", nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearAnalysis(schema.SQLiteBackend, dbPath, ""))

	fresh, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = fresh.Close() }()
	runs, err := fresh.GetAllAnalysisRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)
}
