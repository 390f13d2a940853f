package agg

import (
	"fmt"
	"testing"
	"time"

	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func pushEvent(repo string, commits int, at time.Time) schema.Event {
	return schema.Event{Type: schema.PushEvent, RepoFullName: repo, CommitCount: intPtr(commits), CreatedAt: at}
}

func TestClassifyEvent(t *testing.T) {
	tests := []struct {
		eventType string
		want      schema.Category
	}{
		{schema.PushEvent, schema.CommitCategory},
		{schema.PullRequestEvent, schema.PullRequestCategory},
		{schema.IssuesEvent, schema.IssueCategory},
		{schema.IssueCommentEvent, schema.IssueCategory},
		{schema.PullRequestReviewEvent, schema.ReviewCategory},
		{schema.PullRequestReviewCommentEvent, schema.ReviewCategory},
		{"WatchEvent", schema.UncategorizedCategory},
		{"", schema.UncategorizedCategory},
	}

	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyEvent(schema.Event{Type: tt.eventType}))
		})
	}
}

func TestCommitCount(t *testing.T) {
	assert.Equal(t, 1, CommitCount(schema.Event{Type: schema.PushEvent}))
	assert.Equal(t, 1, CommitCount(schema.Event{Type: schema.PushEvent, CommitCount: intPtr(0)}))
	assert.Equal(t, 4, CommitCount(schema.Event{Type: schema.PushEvent, CommitCount: intPtr(4)}))
}

func TestAggregateContributions(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []schema.Event{
		pushEvent("me/a", 3, now),
		{Type: schema.PushEvent, RepoFullName: "me/a", CreatedAt: now}, // no payload counts as 1
		{Type: schema.PullRequestEvent, CreatedAt: now},
		{Type: schema.IssuesEvent, CreatedAt: now},
		{Type: schema.IssueCommentEvent, CreatedAt: now},
		{Type: schema.PullRequestReviewEvent, CreatedAt: now},
		{Type: "WatchEvent", CreatedAt: now},
	}

	stats := AggregateContributions(events)
	assert.Equal(t, schema.ContributionStats{Total: 7, Commits: 4, PRs: 1, Issues: 2, Reviews: 1}, stats)
	assert.Equal(t, schema.ContributionStats{}, AggregateContributions(nil))
}

func TestRankRepositories(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("estimates lines per push", func(t *testing.T) {
		events := []schema.Event{
			pushEvent("me/a", 3, now),
			pushEvent("me/a", 1, now),
			pushEvent("other/b", 5, now),
			{Type: schema.PullRequestEvent, RepoFullName: "me/c", CreatedAt: now},
		}

		stats := RankRepositories(events)
		require.Len(t, stats, 2)
		assert.Equal(t, schema.RepositoryStat{Name: "b", Commits: 5, Additions: 175, Deletions: 75}, stats[0])
		// 3 commits: 105/45, 1 commit: 35/15
		assert.Equal(t, schema.RepositoryStat{Name: "a", Commits: 4, Additions: 140, Deletions: 60}, stats[1])
	})

	t.Run("groups by short name across owners", func(t *testing.T) {
		events := []schema.Event{
			pushEvent("me/dotfiles", 1, now),
			pushEvent("you/dotfiles", 2, now),
			pushEvent("bare", 1, now),
		}

		stats := RankRepositories(events)
		require.Len(t, stats, 2)
		assert.Equal(t, "dotfiles", stats[0].Name)
		assert.Equal(t, 3, stats[0].Commits)
		assert.Equal(t, "bare", stats[1].Name)
	})

	t.Run("keeps the top ten", func(t *testing.T) {
		var events []schema.Event
		for i := range 12 {
			events = append(events, pushEvent(fmt.Sprintf("me/r%02d", i), i+1, now))
		}

		stats := RankRepositories(events)
		require.Len(t, stats, TopRepositoryLimit)
		assert.Equal(t, "r11", stats[0].Name)
		assert.Equal(t, "r02", stats[9].Name)
	})

	t.Run("no pushes", func(t *testing.T) {
		stats := RankRepositories([]schema.Event{{Type: schema.IssuesEvent, CreatedAt: now}})
		assert.NotNil(t, stats, "empty list, not null, on the wire")
		assert.Empty(t, stats)
	})
}

func TestBucketEvents(t *testing.T) {
	events := []schema.Event{
		{Type: schema.PushEvent, CreatedAt: time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)}, // Saturday
		{Type: schema.PushEvent, CreatedAt: time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)},
		{Type: schema.PushEvent, CreatedAt: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)}, // Monday
	}

	buckets := BucketEvents(events)
	assert.Equal(t, 3, buckets.Total)
	assert.Equal(t, 2, buckets.ByHour[23])
	assert.Equal(t, 1, buckets.ByHour[9])
	assert.Equal(t, 2, buckets.ByDay[time.Saturday])
	assert.Equal(t, 1, buckets.ByDay[time.Monday])
	assert.Equal(t, 2, buckets.Weekend)
	assert.Equal(t, []string{"2025-03-01", "2025-03-03"}, buckets.UniqueDates())
	assert.Equal(t, []int{2, 1}, buckets.DateCounts())
}

func TestBucketEventsUsesEventLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	at := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC).In(tokyo) // 05:00 on March 2 in Tokyo

	buckets := BucketEvents([]schema.Event{{Type: schema.PushEvent, CreatedAt: at}})
	assert.Equal(t, 1, buckets.ByHour[5])
	assert.Equal(t, 1, buckets.ByDay[time.Sunday])
	assert.Equal(t, []string{"2025-03-02"}, buckets.UniqueDates())
}

func BenchmarkRankRepositories(b *testing.B) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := make([]schema.Event, 0, 300)
	for i := range 300 {
		events = append(events, pushEvent(fmt.Sprintf("me/r%d", i%40), i%5+1, now))
	}
	for b.Loop() {
		RankRepositories(events)
	}
}

func TestTallyRepositoriesKeepsAll(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var events []schema.Event
	for i := range 15 {
		events = append(events, pushEvent(fmt.Sprintf("me/r%02d", i), 1, now))
	}

	assert.Len(t, TallyRepositories(events), 15)
	assert.Len(t, RankRepositories(events), TopRepositoryLimit)
	assert.Empty(t, TallyRepositories(nil))
}
