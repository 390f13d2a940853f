package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
)

// currentCacheVersion defines the version of the cached snapshot layout.
const currentCacheVersion = 1

// cachedFetchSnapshot returns the user's snapshot from the activity cache when it is fresh,
// otherwise fetches it and stores it for next time.
func cachedFetchSnapshot(ctx context.Context, cfg *contract.Config, fetcher contract.ActivityFetcher, mgr contract.CacheManager) (*schema.ActivitySnapshot, error) {
	var activity contract.CacheStore
	if mgr != nil {
		activity = mgr.GetActivityStore()
	}
	if activity == nil {
		return fetcher.FetchSnapshot(ctx, cfg.Username)
	}

	key := generateCacheKey(cfg)
	if snap := checkCacheHit(activity, key, cfg.CacheTTL, time.Now()); snap != nil {
		return snap, nil
	}
	return fetchAndStore(ctx, cfg, fetcher, activity, key)
}

// checkCacheHit returns the cached snapshot, or nil on a miss, a version mismatch,
// an entry older than ttl, or undecodable data.
func checkCacheHit(activity contract.CacheStore, key string, ttl time.Duration, now time.Time) *schema.ActivitySnapshot {
	data, version, ts, err := activity.Get(key)
	if err != nil || version != currentCacheVersion {
		return nil
	}
	if now.Sub(time.Unix(ts, 0)) > ttl {
		return nil
	}

	var snap schema.ActivitySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil
	}
	return &snap
}

// fetchAndStore fetches a fresh snapshot and writes it to the cache.
// A failed write is reported but does not fail the request.
func fetchAndStore(ctx context.Context, cfg *contract.Config, fetcher contract.ActivityFetcher, activity contract.CacheStore, key string) (*schema.ActivitySnapshot, error) {
	snap, err := fetcher.FetchSnapshot(ctx, cfg.Username)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		contract.LogWarn("Failed to encode snapshot for caching", err)
		return snap, nil
	}
	if err := activity.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Failed to cache snapshot", err)
	}
	return snap, nil
}

// generateCacheKey hashes every setting that changes what FetchSnapshot returns.
// Year and time zone are applied after fetching, so they are not part of the key.
func generateCacheKey(cfg *contract.Config) string {
	key := fmt.Sprintf("%s|%s|%d|%d",
		cfg.Username,
		cfg.APIURL,
		cfg.MaxPages,
		cfg.LanguageRepos,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
