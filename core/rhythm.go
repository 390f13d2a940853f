package core

import (
	"github.com/huangsam/gitwrapped/core/agg"
	"github.com/huangsam/gitwrapped/core/algo"
	"github.com/huangsam/gitwrapped/schema"
)

// Defaults reported when there is no activity at all.
const (
	defaultPeakHour = 12
	defaultPeakDay  = "Monday"
)

// AnalyzeRhythm derives the peak hour, peak weekday, weekend share and longest
// daily streak from event timestamps.
func AnalyzeRhythm(events []schema.Event) schema.RhythmStats {
	return rhythmFromBuckets(agg.BucketEvents(events))
}

func rhythmFromBuckets(b agg.TimeBuckets) schema.RhythmStats {
	if b.Total == 0 {
		return schema.RhythmStats{PeakHour: defaultPeakHour, PeakDay: defaultPeakDay}
	}

	peakHour := algo.PeakIndex(b.ByHour[:])
	peakDay := algo.PeakIndex(b.ByDay[:])

	return schema.RhythmStats{
		PeakHour:      peakHour,
		PeakDay:       schema.Weekdays[peakDay],
		WeekendRatio:  float64(b.Weekend) / float64(b.Total),
		LongestStreak: algo.LongestStreak(b.UniqueDates(), agg.DateLayout),
	}
}
