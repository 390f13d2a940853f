// Package agg has aggregation logic for GitHub activity events.
package agg

import (
	"github.com/huangsam/gitwrapped/core/algo"
	"github.com/huangsam/gitwrapped/schema"
)

// Line estimation heuristics. The event feed carries no diff data, so these are
// approximations and not measurements.
const (
	LinesPerCommit   = 50
	AdditionsPercent = 70
	DeletionsPercent = 30

	// TopRepositoryLimit caps the ranked repository list.
	TopRepositoryLimit = 10
)

// DateLayout is the calendar date key used for per-day buckets.
const DateLayout = "2006-01-02"

// TimeBuckets holds per-time-bucket event counts.
type TimeBuckets struct {
	ByHour  [24]int        // index is hour of day
	ByDay   [7]int         // index is time.Weekday (Sunday first)
	ByDate  map[string]int // YYYY-MM-DD -> count
	Weekend int            // events on Saturday or Sunday
	Total   int
}

// ClassifyEvent maps an event type to its contribution category.
func ClassifyEvent(e schema.Event) schema.Category {
	switch e.Type {
	case schema.PushEvent:
		return schema.CommitCategory
	case schema.PullRequestEvent:
		return schema.PullRequestCategory
	case schema.IssuesEvent, schema.IssueCommentEvent:
		return schema.IssueCategory
	case schema.PullRequestReviewEvent, schema.PullRequestReviewCommentEvent:
		return schema.ReviewCategory
	default:
		return schema.UncategorizedCategory
	}
}

// CommitCount returns the number of commits a push carries, defaulting to 1.
func CommitCount(e schema.Event) int {
	if e.CommitCount == nil || *e.CommitCount <= 0 {
		return 1
	}
	return *e.CommitCount
}

// AggregateContributions folds events into per-category counts.
func AggregateContributions(events []schema.Event) schema.ContributionStats {
	stats := schema.ContributionStats{Total: len(events)}
	for _, e := range events {
		switch ClassifyEvent(e) {
		case schema.CommitCategory:
			stats.Commits += CommitCount(e)
		case schema.PullRequestCategory:
			stats.PRs++
		case schema.IssueCategory:
			stats.Issues++
		case schema.ReviewCategory:
			stats.Reviews++
		}
	}
	return stats
}

// RankRepositories tallies push activity per repository short name and returns
// the top repositories by commit count.
func RankRepositories(events []schema.Event) []schema.RepositoryStat {
	return algo.RankRepositories(TallyRepositories(events), TopRepositoryLimit)
}

// TallyRepositories accumulates commits and estimated line changes for every
// repository that received a push, in first-seen order.
func TallyRepositories(events []schema.Event) []schema.RepositoryStat {
	index := make(map[string]int)
	stats := []schema.RepositoryStat{}

	for _, e := range events {
		if e.Type != schema.PushEvent {
			continue
		}
		name := schema.RepoShortName(e.RepoFullName)
		i, ok := index[name]
		if !ok {
			i = len(stats)
			index[name] = i
			stats = append(stats, schema.RepositoryStat{Name: name})
		}

		commits := CommitCount(e)
		estimatedLines := commits * LinesPerCommit
		stats[i].Commits += commits
		stats[i].Additions += estimatedLines * AdditionsPercent / 100
		stats[i].Deletions += estimatedLines * DeletionsPercent / 100
	}

	return stats
}

// BucketEvents counts events by hour, weekday and calendar date. Each timestamp is
// read in its own location, so callers localize events beforehand.
func BucketEvents(events []schema.Event) TimeBuckets {
	buckets := TimeBuckets{
		ByDate: make(map[string]int),
		Total:  len(events),
	}
	for _, e := range events {
		t := e.CreatedAt
		buckets.ByHour[t.Hour()]++
		buckets.ByDay[t.Weekday()]++
		buckets.ByDate[t.Format(DateLayout)]++
		if algo.IsWeekend(t.Weekday()) {
			buckets.Weekend++
		}
	}
	return buckets
}

// DateCounts returns the per-date counts as a slice, ordered by date.
func (b TimeBuckets) DateCounts() []int {
	dates := algo.SortedKeys(b.ByDate)
	counts := make([]int, len(dates))
	for i, d := range dates {
		counts[i] = b.ByDate[d]
	}
	return counts
}

// UniqueDates returns the active dates in ascending order.
func (b TimeBuckets) UniqueDates() []string {
	return algo.SortedKeys(b.ByDate)
}
