package core

import (
	"testing"
	"time"

	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/assert"
)

func eventAt(repo string, at time.Time) schema.Event {
	return schema.Event{Type: schema.PushEvent, RepoFullName: repo, CreatedAt: at}
}

func TestAnalyzeRhythm(t *testing.T) {
	t.Run("no events", func(t *testing.T) {
		assert.Equal(t, schema.RhythmStats{PeakHour: 12, PeakDay: "Monday"}, AnalyzeRhythm(nil))
	})

	t.Run("peaks and streak", func(t *testing.T) {
		events := []schema.Event{
			eventAt("me/a", time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)), // Monday
			eventAt("me/a", time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)), // Tuesday
			eventAt("me/a", time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)), // Wednesday
			eventAt("me/a", time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC)),
			eventAt("me/a", time.Date(2025, 3, 8, 15, 0, 0, 0, time.UTC)), // Saturday
		}

		stats := AnalyzeRhythm(events)
		assert.Equal(t, 9, stats.PeakHour)
		assert.Equal(t, "Wednesday", stats.PeakDay)
		assert.InDelta(t, 0.2, stats.WeekendRatio, 1e-9)
		assert.Equal(t, 3, stats.LongestStreak)
	})

	t.Run("ties go to the lowest hour and earliest day", func(t *testing.T) {
		events := []schema.Event{
			eventAt("me/a", time.Date(2025, 3, 4, 20, 0, 0, 0, time.UTC)), // Tuesday
			eventAt("me/a", time.Date(2025, 3, 2, 7, 0, 0, 0, time.UTC)),  // Sunday
		}

		stats := AnalyzeRhythm(events)
		assert.Equal(t, 7, stats.PeakHour)
		assert.Equal(t, "Sunday", stats.PeakDay)
		assert.Equal(t, 1, stats.LongestStreak)
	})

	t.Run("weekend only", func(t *testing.T) {
		events := []schema.Event{
			eventAt("me/a", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)),
			eventAt("me/a", time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)),
		}

		stats := AnalyzeRhythm(events)
		assert.InDelta(t, 1.0, stats.WeekendRatio, 1e-9)
		assert.Equal(t, 2, stats.LongestStreak)
	})
}

func TestAnalyzeRhythmIsIdempotent(t *testing.T) {
	events := []schema.Event{
		eventAt("me/a", time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)),
		eventAt("me/b", time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)),
	}
	assert.Equal(t, AnalyzeRhythm(events), AnalyzeRhythm(events))
}
