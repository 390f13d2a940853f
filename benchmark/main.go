// Package main benchmarks the gitwrapped CLI against live GitHub accounts.
// Each user is run several times without a cache and several times with the
// SQLite cache, treating the first cached run as cold and averaging the rest
// as warm. Results are written to a CSV file for documentation.
//
// Prerequisites:
// - gitwrapped binary installed and available in PATH
// - GITHUB_TOKEN set, otherwise the unauthenticated rate limit runs out quickly
//
// Usage: go run benchmark/main.go [user ...]
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	User        string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Users       []string
}

func main() {
	config := BenchmarkConfig{
		Timeout:     2 * time.Minute,
		Workers:     8,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Users:       []string{"torvalds", "gaearon", "sindresorhus", "huangsam"},
	}
	if len(os.Args) > 1 {
		config.Users = os.Args[1:]
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("gitwrapped", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the binary exists and a token is configured
func checkPrerequisites() error {
	if _, err := exec.LookPath("gitwrapped"); err != nil {
		return errors.New("gitwrapped binary not found in PATH")
	}
	if os.Getenv("GITHUB_TOKEN") == "" && os.Getenv("GITWRAPPED_TOKEN") == "" {
		fmt.Println("Warning: no token set, runs may hit the GitHub rate limit")
	}
	return nil
}

func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(config.Users))

	fmt.Printf("Starting benchmark: %d users, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.Users), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, user := range config.Users {
		results = append(results, runBenchmarkSuite(config, user))
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for one user
func runBenchmarkSuite(config BenchmarkConfig, user string) BenchmarkResult {
	fmt.Printf("Benchmarking %s\n", user)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, user, cacheBackend, numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		User:        user,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark runs gitwrapped numRuns times and returns the first successful time and the rest
func runBenchmark(config BenchmarkConfig, user, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"wrapped", user,
		"--cache-backend", cacheBackend,
		"--workers", fmt.Sprint(config.Workers),
		"--color", "no",
	}

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "gitwrapped", args...).CombinedOutput()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err == nil && isSuccess(output) {
			times = append(times, elapsed)
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks the text footer printed after a completed run
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Wrapped generated in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/gitwrapped_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"user", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.User, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-14s: No-cache: %s, Cold: %s, Warm: %s\n", result.User, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}
