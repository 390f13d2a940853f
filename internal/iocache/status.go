package iocache

import (
	"fmt"

	"github.com/huangsam/gitwrapped/core/algo"
	"github.com/huangsam/gitwrapped/schema"
)

const statusTimeLayout = "2006-01-02 15:04:05"

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Cached Snapshots: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("Newest Snapshot: %s\n", status.LastEntryTime.Format(statusTimeLayout))
		fmt.Printf("Oldest Snapshot: %s\n", status.OldestEntryTime.Format(statusTimeLayout))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintAnalysisStatus prints analysis status information.
func PrintAnalysisStatus(status schema.AnalysisStatus) {
	fmt.Printf("Analysis Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format(statusTimeLayout))
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Format(statusTimeLayout))
		fmt.Printf("Distinct Users: %d\n", status.DistinctUsers)
		fmt.Printf("Total Events Analyzed: %d\n", status.TotalEvents)
	}
	if len(status.ArchetypeTallies) > 0 {
		fmt.Println("Archetypes:")
		for _, name := range algo.SortedKeys(status.ArchetypeTallies) {
			fmt.Printf("  %s: %d\n", name, status.ArchetypeTallies[name])
		}
	}
	fmt.Println("Table Sizes:")
	for _, table := range algo.SortedKeys(status.TableSizes) {
		fmt.Printf("  %s: %d rows\n", table, status.TableSizes[table])
	}
}
