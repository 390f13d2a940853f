package iocache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAnalysis_Validation(t *testing.T) {
	err := exportAnalysis(&MockAnalysisStore{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file is required")

	err = exportAnalysis(nil, "out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis tracking is disabled")
}

func TestExportAnalysis_NoData(t *testing.T) {
	store := &MockAnalysisStore{}
	store.On("GetStatus").Return(schema.AnalysisStatus{Backend: "sqlite", Connected: true}, nil)

	err := exportAnalysis(store, filepath.Join(t.TempDir(), "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no analysis data found")
	store.AssertExpectations(t)
}

func TestExportAnalysis_StoreErrors(t *testing.T) {
	boom := errors.New("boom")

	store := &MockAnalysisStore{}
	store.On("GetStatus").Return(schema.AnalysisStatus{}, boom)
	assert.ErrorIs(t, exportAnalysis(store, "out"), boom)

	store = &MockAnalysisStore{}
	store.On("GetStatus").Return(schema.AnalysisStatus{TotalRuns: 1}, nil)
	store.On("GetAllAnalysisRuns").Return(nil, boom)
	assert.ErrorIs(t, exportAnalysis(store, "out"), boom)
}

func TestExportAnalysis_WritesBothFiles(t *testing.T) {
	store := newSQLiteAnalysisStore(t)
	id, err := store.BeginAnalysis(time.Now(), "octocat", map[string]any{"year": 2025})
	require.NoError(t, err)
	require.NoError(t, store.RecordWrappedResult(id, sampleResult("octocat", schema.SprintCommitter)))
	require.NoError(t, store.EndAnalysis(id, time.Now(), 120))

	out := filepath.Join(t.TempDir(), "export")
	require.NoError(t, exportAnalysis(store, out))

	for _, suffix := range []string{".analysis_runs.parquet", ".wrapped_results.parquet"} {
		info, err := os.Stat(out + suffix)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
