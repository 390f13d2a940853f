package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/ghclient"
	"github.com/huangsam/gitwrapped/internal/iocache"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func wrappedConfig() *contract.Config {
	return &contract.Config{
		Username:      "octocat",
		Year:          2025,
		Location:      time.UTC,
		APIURL:        contract.DefaultAPIURL,
		MaxPages:      3,
		LanguageRepos: 20,
		Workers:       2,
		Output:        schema.JSONOut,
		CacheTTL:      time.Hour,
	}
}

func wrappedSnapshot() *schema.ActivitySnapshot {
	var events []schema.Event
	for _, d := range weekdayDates(time.Date(2025, 2, 3, 23, 0, 0, 0, time.UTC), 60) {
		events = append(events, eventAt("octocat/lantern", d))
	}
	return &schema.ActivitySnapshot{
		Profile:      schema.Profile{Login: "octocat", Name: "The Octocat"},
		Repositories: []schema.Repository{{Name: "lantern", FullName: "octocat/lantern", Stars: 9, PrimaryLanguage: "Go"}},
		Events:       events,
		Languages:    schema.LanguageByteMap{"lantern": {"Go": 900, "Shell": 100}},
	}
}

// noStoreManager returns a manager mock with neither store configured.
func noStoreManager() *iocache.MockCacheManager {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetActivityStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(nil)
	return mgr
}

func TestGetWrappedResult(t *testing.T) {
	fetcher := &ghclient.MockFetcher{}
	fetcher.On("FetchSnapshot", mock.Anything, "octocat").Return(wrappedSnapshot(), nil)

	result, err := GetWrappedResult(context.Background(), wrappedConfig(), fetcher, noStoreManager())
	require.NoError(t, err)

	assert.Equal(t, "octocat", result.Username)
	assert.Equal(t, "The Octocat", result.Profile.Name)
	assert.Equal(t, 60, result.Contributions.Commits)
	assert.Equal(t, schema.NightOwlArchitect.Info(), result.Archetype)
	assert.Nil(t, result.Explanation, "explanation is only kept with --explain")
	fetcher.AssertExpectations(t)
}

func TestGetWrappedResultExplain(t *testing.T) {
	fetcher := &ghclient.MockFetcher{}
	fetcher.On("FetchSnapshot", mock.Anything, "octocat").Return(wrappedSnapshot(), nil)

	cfg := wrappedConfig()
	cfg.Explain = true
	result, err := GetWrappedResult(context.Background(), cfg, fetcher, nil)
	require.NoError(t, err)
	require.NotNil(t, result.Explanation)
	assert.Equal(t, "night_owl", result.Explanation.Rule)
	assert.Equal(t, 1, result.Explanation.RepoCount)
}

func TestGetWrappedResultErrors(t *testing.T) {
	t.Run("no fetcher", func(t *testing.T) {
		_, err := GetWrappedResult(context.Background(), wrappedConfig(), nil, nil)
		assert.ErrorIs(t, err, ErrNoFetcher)
	})

	t.Run("invalid username", func(t *testing.T) {
		cfg := wrappedConfig()
		cfg.Username = "-bad-"
		_, err := GetWrappedResult(context.Background(), cfg, &ghclient.MockFetcher{}, nil)
		assert.ErrorIs(t, err, contract.ErrInvalidUsername)
	})

	t.Run("fetch failure propagates", func(t *testing.T) {
		apiErr := &ghclient.APIError{Status: 404, Message: "User not found"}
		fetcher := &ghclient.MockFetcher{}
		fetcher.On("FetchSnapshot", mock.Anything, "octocat").Return(nil, apiErr)

		_, err := GetWrappedResult(context.Background(), wrappedConfig(), fetcher, noStoreManager())
		var got *ghclient.APIError
		require.ErrorAs(t, err, &got)
		assert.Equal(t, 404, got.Status)
	})
}

func TestGetWrappedResultTracking(t *testing.T) {
	fetcher := &ghclient.MockFetcher{}
	fetcher.On("FetchSnapshot", mock.Anything, "octocat").Return(wrappedSnapshot(), nil)

	store := &iocache.MockAnalysisStore{}
	store.On("BeginAnalysis", mock.Anything, "octocat", mock.MatchedBy(func(p map[string]any) bool {
		return p["year"] == 2025 && p["timezone"] == "UTC"
	})).Return(int64(7), nil)
	store.On("RecordWrappedResult", int64(7), mock.MatchedBy(func(r schema.WrappedResult) bool {
		// The stored copy is recorded before the explanation is stripped.
		return r.Username == "octocat" && r.Explanation != nil
	})).Return(nil)
	store.On("EndAnalysis", int64(7), mock.Anything, 60).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetActivityStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(store)

	_, err := GetWrappedResult(context.Background(), wrappedConfig(), fetcher, mgr)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestGetWrappedResultTrackingFailuresAreWarnings(t *testing.T) {
	fetcher := &ghclient.MockFetcher{}
	fetcher.On("FetchSnapshot", mock.Anything, "octocat").Return(wrappedSnapshot(), nil)

	t.Run("begin fails", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", mock.Anything, "octocat", mock.Anything).Return(int64(0), errors.New("db down"))

		mgr := &iocache.MockCacheManager{}
		mgr.On("GetActivityStore").Return(nil)
		mgr.On("GetAnalysisStore").Return(store)

		_, err := GetWrappedResult(context.Background(), wrappedConfig(), fetcher, mgr)
		require.NoError(t, err)
		store.AssertNotCalled(t, "RecordWrappedResult", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "EndAnalysis", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("record and end fail", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", mock.Anything, "octocat", mock.Anything).Return(int64(3), nil)
		store.On("RecordWrappedResult", int64(3), mock.Anything).Return(errors.New("constraint"))
		store.On("EndAnalysis", int64(3), mock.Anything, mock.Anything).Return(errors.New("gone"))

		mgr := &iocache.MockCacheManager{}
		mgr.On("GetActivityStore").Return(nil)
		mgr.On("GetAnalysisStore").Return(store)

		_, err := GetWrappedResult(context.Background(), wrappedConfig(), fetcher, mgr)
		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}

func TestExecuteWrappedWith(t *testing.T) {
	fetcher := &ghclient.MockFetcher{}
	fetcher.On("FetchSnapshot", mock.Anything, "octocat").Return(wrappedSnapshot(), nil)

	cfg := wrappedConfig()
	cfg.OutputFile = filepath.Join(t.TempDir(), "wrapped.json")

	ctx := WithSuppressHeader(context.Background())
	require.NoError(t, executeWrappedWith(ctx, cfg, fetcher, noStoreManager(), time.Now()))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Night Owl Architect"`)
}

func TestExecuteArchetypes(t *testing.T) {
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: filepath.Join(t.TempDir(), "archetypes.csv")}
	require.NoError(t, ExecuteArchetypes(context.Background(), cfg))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "polyglot_explorer")
	assert.Contains(t, string(data), "steady_contributor")
	assert.NotContains(t, string(data), "LEGENDARY")
}
