package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
)

// Table names for analysis tracking.
const (
	analysisRunsTable   = "gitwrapped_analysis_runs"
	wrappedResultsTable = "gitwrapped_wrapped_results"
)

// analysisTables lists the analysis tables in creation order.
var analysisTables = []string{analysisRunsTable, wrappedResultsTable}

// wrappedColumns is the column order shared by inserts and selects.
const wrappedColumns = `analysis_id, username, year, analysis_time, archetype, rarity,
	total_events, commits, pull_requests, issues, reviews,
	peak_hour, peak_day, weekend_ratio, longest_streak,
	stars_earned, forks_earned, external_repos, work_style,
	top_language, top_repository, top_starred_repo`

const wrappedColumnCount = 22

// AnalysisStoreImpl records wrapped runs and their summaries.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore migrates the backend to the latest schema and opens the store.
// NoneBackend yields a store that records nothing.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		return &AnalysisStoreImpl{backend: backend}, nil
	}
	if _, err := driverFor(backend); err != nil {
		return nil, err
	}

	quiet := func(string, ...any) {}
	if err := migrateAnalysis(backend, connStr, -1, quiet); err != nil {
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	db, err := openDatabase(backend, connStr, GetAnalysisDBFilePath())
	if err != nil {
		return nil, err
	}
	return &AnalysisStoreImpl{db: db, backend: backend}, nil
}

// BeginAnalysis creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(startTime time.Time, username string, configParams map[string]any) (int64, error) {
	if as.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	args := []any{username, formatTime(startTime, as.backend), string(configJSON)}

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (username, start_time, config_params) VALUES ($1, $2, $3) RETURNING analysis_id`, quotedTableName)
		err = as.db.QueryRow(query, args...).Scan(&analysisID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (username, start_time, config_params) VALUES (?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = as.db.Exec(query, args...)
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	return analysisID, nil
}

// EndAnalysis stamps the run with its end time, duration and event count.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totalEvents int) error {
	if as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)

	start := timeScanner{backend: as.backend}
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`, quotedTableName, placeholder(as.backend, 1))
	if err := as.db.QueryRow(query, analysisID).Scan(start.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}
	startTime, err := start.value()
	if err != nil {
		return err
	}
	if startTime == nil {
		return fmt.Errorf("analysis %d has no start_time", analysisID)
	}

	durationMs := endTime.Sub(*startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_events = %s WHERE analysis_id = %s`,
		quotedTableName,
		placeholder(as.backend, 1), placeholder(as.backend, 2), placeholder(as.backend, 3), placeholder(as.backend, 4))
	if _, err := as.db.Exec(updateQuery, formatTime(endTime, as.backend), durationMs, totalEvents, analysisID); err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}

	return nil
}

// RecordWrappedResult stores the flattened summary of a result for the run.
func (as *AnalysisStoreImpl) RecordWrappedResult(analysisID int64, result schema.WrappedResult) error {
	if as.db == nil {
		return nil
	}

	rec := schema.NewWrappedRecord(analysisID, time.Now(), result)
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteTableName(wrappedResultsTable, as.backend), wrappedColumns, placeholders(as.backend, wrappedColumnCount))

	args := []any{
		rec.AnalysisID, rec.Username, rec.Year, formatTime(rec.AnalysisTime, as.backend), rec.Archetype, rec.Rarity,
		rec.TotalEvents, rec.Commits, rec.PullRequests, rec.Issues, rec.Reviews,
		rec.PeakHour, rec.PeakDay, rec.WeekendRatio, rec.LongestStreak,
		rec.StarsEarned, rec.ForksEarned, rec.ExternalRepos, rec.WorkStyle,
		rec.TopLanguage, rec.TopRepository, rec.TopStarredRepo,
	}
	if _, err := as.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert wrapped result: %w", err)
	}

	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus summarizes the recorded runs and results.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:          string(as.backend),
		Connected:        as.db != nil,
		TableSizes:       make(map[string]int64),
		ArchetypeTallies: make(map[string]int),
	}
	if as.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(analysisRunsTable, as.backend)
	resultsTable := quoteTableName(wrappedResultsTable, as.backend)

	query := fmt.Sprintf("SELECT COUNT(*), COALESCE(SUM(total_events), 0), COUNT(DISTINCT username) FROM %s", runsTable)
	if err := as.db.QueryRow(query).Scan(&status.TotalRuns, &status.TotalEvents, &status.DistinctUsers); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		last := timeScanner{backend: as.backend}
		query = fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", runsTable)
		if err := as.db.QueryRow(query).Scan(&status.LastRunID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		if t, err := last.value(); err != nil {
			return status, err
		} else if t != nil {
			status.LastRunTime = *t
		}

		oldest := timeScanner{backend: as.backend}
		query = fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", runsTable)
		if err := as.db.QueryRow(query).Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		if t, err := oldest.value(); err != nil {
			return status, err
		} else if t != nil {
			status.OldestRunTime = *t
		}
	}

	rows, err := as.db.Query(fmt.Sprintf("SELECT archetype, COUNT(*) FROM %s GROUP BY archetype", resultsTable))
	if err != nil {
		return status, fmt.Errorf("failed to tally archetypes: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return status, fmt.Errorf("failed to scan archetype tally: %w", err)
		}
		status.ArchetypeTallies[name] = count
	}
	if err := rows.Err(); err != nil {
		return status, fmt.Errorf("error iterating archetype tallies: %w", err)
	}

	for _, table := range analysisTables {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend))
		if err := as.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllAnalysisRuns retrieves all analysis runs ordered by ID.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	if as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT analysis_id, username, start_time, end_time, run_duration_ms, total_events, config_params FROM %s ORDER BY analysis_id",
		quoteTableName(analysisRunsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord
	for rows.Next() {
		var record schema.AnalysisRunRecord
		start := timeScanner{backend: as.backend}
		end := timeScanner{backend: as.backend}
		if err := rows.Scan(&record.AnalysisID, &record.Username, start.dest(), end.dest(),
			&record.RunDurationMs, &record.TotalEvents, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}

		startTime, err := start.value()
		if err != nil {
			return nil, err
		}
		if startTime != nil {
			record.StartTime = *startTime
		}
		if record.EndTime, err = end.value(); err != nil {
			return nil, err
		}

		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}

	return results, nil
}

// GetAllWrappedRecords retrieves all wrapped summaries ordered by run ID.
func (as *AnalysisStoreImpl) GetAllWrappedRecords() ([]schema.WrappedRecord, error) {
	if as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY analysis_id", wrappedColumns, quoteTableName(wrappedResultsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query wrapped results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.WrappedRecord
	for rows.Next() {
		var rec schema.WrappedRecord
		analysisTime := timeScanner{backend: as.backend}
		if err := rows.Scan(
			&rec.AnalysisID, &rec.Username, &rec.Year, analysisTime.dest(), &rec.Archetype, &rec.Rarity,
			&rec.TotalEvents, &rec.Commits, &rec.PullRequests, &rec.Issues, &rec.Reviews,
			&rec.PeakHour, &rec.PeakDay, &rec.WeekendRatio, &rec.LongestStreak,
			&rec.StarsEarned, &rec.ForksEarned, &rec.ExternalRepos, &rec.WorkStyle,
			&rec.TopLanguage, &rec.TopRepository, &rec.TopStarredRepo,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wrapped result: %w", err)
		}

		t, err := analysisTime.value()
		if err != nil {
			return nil, err
		}
		if t != nil {
			rec.AnalysisTime = *t
		}

		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wrapped results: %w", err)
	}

	return results, nil
}
