// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/gitwrapped/schema"
)

// ActivityFetcher defines the operations needed to materialize a user's public activity.
// This allows the analysis pipeline to be tested without network access.
type ActivityFetcher interface {
	// FetchSnapshot returns the profile, repositories, events and language bytes for a user.
	FetchSnapshot(ctx context.Context, username string) (*schema.ActivitySnapshot, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetActivityStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking wrapped runs and their results.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(startTime time.Time, username string, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalEvents int) error

	// RecordWrappedResult stores the summary of a wrapped result
	RecordWrappedResult(analysisID int64, result schema.WrappedResult) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns returns every recorded run
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllWrappedRecords returns every recorded wrapped summary
	GetAllWrappedRecords() ([]schema.WrappedRecord, error)

	// Close closes the underlying connection
	Close() error
}
