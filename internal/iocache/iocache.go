// Package iocache persists fetched activity snapshots and the history of wrapped runs.
package iocache

import (
	"sync"

	"github.com/huangsam/gitwrapped/internal/contract"
)

// CacheStoreManager owns the activity cache and the analysis store.
type CacheStoreManager struct {
	sync.RWMutex // guards the store pointers during init and close
	activity     contract.CacheStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetActivityStore returns the snapshot cache, or nil when caching is off.
func (mgr *CacheStoreManager) GetActivityStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.activity
}

// GetAnalysisStore returns the run history store, or nil when tracking is off.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
