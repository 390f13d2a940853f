//go:build basic

package integration

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrappedArgs(apiURL string, extra ...string) []string {
	args := []string{
		"wrapped", "octocat",
		"--api-url", apiURL,
		"--year", "2025",
		"--timezone", "UTC",
		"--color", "no",
	}
	return append(args, extra...)
}

func TestWrappedJSON(t *testing.T) {
	_, apiURL := startFakeGitHub(t)
	home := t.TempDir()

	stdout, stderr, err := runGitwrapped(t, home, nil,
		wrappedArgs(apiURL, "--output", "json", "--cache-backend", "none", "--explain")...)
	require.NoError(t, err)
	assert.Contains(t, stderr, "User: octocat (Year: 2025)")

	var result schema.WrappedResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "octocat", result.Username)
	assert.Equal(t, 2025, result.Year)
	assert.Equal(t, 60, result.Contributions.Total)
	assert.Equal(t, 60, result.Contributions.Commits)
	assert.Equal(t, schema.NightOwlArchitect.Info(), result.Archetype)
	assert.Equal(t, 23, result.Rhythm.PeakHour)
	assert.Equal(t, 9, result.Impact.StarsEarned)

	require.Len(t, result.Repositories, 1)
	assert.Equal(t, "lantern", result.Repositories[0].Name)
	assert.Equal(t, 60*50*70/100, result.Repositories[0].Additions)

	require.NotEmpty(t, result.Languages)
	assert.Equal(t, "Go", result.Languages[0].Name)
	assert.Equal(t, 90, result.Languages[0].Percentage)

	require.NotNil(t, result.Explanation)
	assert.Equal(t, "night_owl", result.Explanation.Rule)
	assert.False(t, result.Explanation.UsedFallback)
}

func TestWrappedText(t *testing.T) {
	_, apiURL := startFakeGitHub(t)
	home := t.TempDir()

	stdout, _, err := runGitwrapped(t, home, nil, wrappedArgs(apiURL, "--cache-backend", "none", "--width", "100")...)
	require.NoError(t, err)

	for _, want := range []string{
		"octocat's 2025 Wrapped",
		"Night Owl Architect [UNCOMMON]",
		"Peak hour: 11 PM",
		"Stars earned: 9",
		"Wrapped generated in",
	} {
		assert.Contains(t, stdout, want)
	}
}

func TestWrappedUnknownUser(t *testing.T) {
	_, apiURL := startFakeGitHub(t)
	home := t.TempDir()

	_, stderr, err := runGitwrapped(t, home, nil,
		"wrapped", "ghost", "--api-url", apiURL, "--cache-backend", "none")
	require.Error(t, err)
	assert.Contains(t, stderr, "User not found")
}

func TestWrappedInvalidInput(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad username", []string{"wrapped", "bad_user"}, "invalid GitHub username"},
		{"bad year", []string{"wrapped", "octocat", "--year", "1999"}, "year must be between"},
		{"bad output", []string{"wrapped", "octocat", "--output", "yaml"}, "invalid output format"},
		{"missing username", []string{"wrapped"}, "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := runGitwrapped(t, home, nil, append(tt.args, "--cache-backend", "none")...)
			require.Error(t, err)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestWrappedUsesSQLiteCache(t *testing.T) {
	fake, apiURL := startFakeGitHub(t)
	home := t.TempDir()

	for range 2 {
		_, _, err := runGitwrapped(t, home, nil, wrappedArgs(apiURL, "--output", "json")...)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), fake.userFetches.Load(), "second run should be served from the cache")
	assert.FileExists(t, filepath.Join(home, ".gitwrapped_cache.db"))

	stdout, _, err := runGitwrapped(t, home, nil, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cached Snapshots: 1")

	_, _, err = runGitwrapped(t, home, nil, "cache", "clear")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(home, ".gitwrapped_cache.db"))
}

func TestAnalysisHistorySQLite(t *testing.T) {
	_, apiURL := startFakeGitHub(t)
	home := t.TempDir()
	env := []string{"GITWRAPPED_ANALYSIS_BACKEND=sqlite"}

	_, _, err := runGitwrapped(t, home, env, wrappedArgs(apiURL, "--output", "json", "--cache-backend", "none")...)
	require.NoError(t, err)

	stdout, _, err := runGitwrapped(t, home, env, "analysis", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total Runs: 1")
	assert.Contains(t, stdout, "Night Owl Architect: 1")

	prefix := filepath.Join(home, "history")
	_, _, err = runGitwrapped(t, home, env, "analysis", "export", "--output-file", prefix)
	require.NoError(t, err)
	assert.FileExists(t, prefix+".analysis_runs.parquet")
	assert.FileExists(t, prefix+".wrapped_results.parquet")

	_, _, err = runGitwrapped(t, home, env, "analysis", "clear")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(home, ".gitwrapped_analysis.db"))
}

func TestArchetypesCSV(t *testing.T) {
	home := t.TempDir()
	outFile := filepath.Join(home, "archetypes.csv")

	_, stderr, err := runGitwrapped(t, home, nil, "archetypes", "--output", "csv", "--output-file", outFile, "--cache-backend", "none")
	require.NoError(t, err)
	assert.Contains(t, stderr, outFile)

	f, err := os.Open(outFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(schema.AllArchetypes)+1)
	assert.Equal(t, "priority", records[0][0])

	var keys []string
	for _, rec := range records[1:] {
		keys = append(keys, rec[1])
	}
	assert.Contains(t, strings.Join(keys, ","), "night_owl_architect")
}
