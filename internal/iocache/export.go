package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/parquet"
)

// ExecuteAnalysisExport writes the recorded runs and wrapped summaries to two Parquet
// files named after outputFile.
func ExecuteAnalysisExport(outputFile string) error {
	return exportAnalysis(Manager.GetAnalysisStore(), outputFile)
}

func exportAnalysis(store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis tracking is disabled. Set --analysis-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total wrapped results: %d\n", status.TableSizes[wrappedResultsTable])

	analysisRuns, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	wrapped, err := store.GetAllWrappedRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve wrapped results: %w", err)
	}

	runsFile := outputFile + ".analysis_runs.parquet"
	runRows := parquet.ConvertAnalysisRunRecords(analysisRuns)
	if err := parquet.WriteAnalysisRunsParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("💾 Exported %d analysis runs to: %s\n", len(runRows), runsFile)

	wrappedFile := outputFile + ".wrapped_results.parquet"
	wrappedRows := parquet.ConvertWrappedRecords(wrapped)
	if err := parquet.WriteWrappedResultsParquet(wrappedRows, wrappedFile); err != nil {
		return fmt.Errorf("failed to write wrapped results: %w", err)
	}
	fmt.Printf("💾 Exported %d wrapped results to: %s\n", len(wrappedRows), wrappedFile)

	return nil
}
