package core

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/ghclient"
	"github.com/huangsam/gitwrapped/internal/outwriter"
	"github.com/huangsam/gitwrapped/schema"
)

// ErrNoFetcher is returned when a wrapped run has nothing to fetch activity with.
var ErrNoFetcher = errors.New("no activity fetcher configured")

// GetWrappedResult fetches (or loads from cache) a user's activity and analyzes it.
// Runs are tracked in the analysis store when one is configured; tracking failures
// are reported as warnings and never fail the run.
func GetWrappedResult(ctx context.Context, cfg *contract.Config, fetcher contract.ActivityFetcher, mgr contract.CacheManager) (schema.WrappedResult, error) {
	if fetcher == nil {
		return schema.WrappedResult{}, ErrNoFetcher
	}
	if err := contract.ValidateUsername(cfg.Username); err != nil {
		return schema.WrappedResult{}, err
	}

	// --- 0. Begin Analysis Tracking (if configured) ---
	var analysisStore contract.AnalysisStore
	if mgr != nil {
		analysisStore = mgr.GetAnalysisStore()
	}
	var analysisID int64
	if analysisStore != nil {
		configParams := map[string]any{
			"year":           cfg.Year,
			"timezone":       locationName(cfg.Location),
			"api_url":        cfg.APIURL,
			"max_pages":      cfg.MaxPages,
			"language_repos": cfg.LanguageRepos,
			"workers":        cfg.Workers,
		}
		var err error
		analysisID, err = analysisStore.BeginAnalysis(time.Now(), cfg.Username, configParams)
		if err != nil {
			contract.LogWarn("Analysis tracking initialization failed", err)
		}
	}

	// --- 1. Fetch Phase (with caching) ---
	snap, err := cachedFetchSnapshot(ctx, cfg, fetcher, mgr)
	if err != nil {
		return schema.WrappedResult{}, err
	}

	// --- 2. Analysis ---
	result := Analyze(cfg.Username, cfg.Year, snap, cfg.Location)

	// --- 3. End Analysis Tracking ---
	if analysisStore != nil && analysisID > 0 {
		if err := analysisStore.RecordWrappedResult(analysisID, result); err != nil {
			contract.LogWarn("Failed to record wrapped result", err)
		}
		if err := analysisStore.EndAnalysis(analysisID, time.Now(), result.Contributions.Total); err != nil {
			contract.LogWarn("Failed to finalize analysis tracking", err)
		}
	}

	if !cfg.Explain {
		result.Explanation = nil
	}
	return result, nil
}

// ExecuteWrapped runs a wrapped analysis against the GitHub API and prints the result.
// It serves as the main entry point for the 'wrapped' command.
func ExecuteWrapped(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	client, err := ghclient.NewClientFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	return executeWrappedWith(ctx, cfg, client, mgr, start)
}

func executeWrappedWith(ctx context.Context, cfg *contract.Config, fetcher contract.ActivityFetcher, mgr contract.CacheManager, start time.Time) error {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogWrappedHeader(cfg)
	}
	result, err := GetWrappedResult(ctx, cfg, fetcher, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintWrappedResult(result, cfg, duration)
}

// ExecuteArchetypes prints the archetype catalog in rule priority order.
// This is a static display that does not require GitHub access.
func ExecuteArchetypes(_ context.Context, cfg *contract.Config) error {
	return outwriter.PrintArchetypeCatalog(ArchetypeRuleCatalog(), cfg)
}

func locationName(loc *time.Location) string {
	if loc == nil {
		return "Local"
	}
	return loc.String()
}
