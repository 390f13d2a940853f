package algo

import (
	"math"
	"time"
)

// IsWeekend reports whether the day is Saturday or Sunday.
func IsWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// PeakIndex returns the index of the largest value. The lowest index wins ties,
// and an empty or all-zero slice returns -1.
func PeakIndex(values []int) int {
	peak, best := -1, 0
	for i, v := range values {
		if v > best {
			peak, best = i, v
		}
	}
	return peak
}

// Burstiness is the coefficient of variation (population standard deviation
// divided by the mean) of a set of counts. It is 0 for an empty set.
func Burstiness(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}
	var sum float64
	for _, c := range counts {
		sum += float64(c)
	}
	mean := sum / float64(len(counts))
	if mean == 0 {
		return 0
	}

	var variance float64
	for _, c := range counts {
		d := float64(c) - mean
		variance += d * d
	}
	variance /= float64(len(counts))
	return math.Sqrt(variance) / mean
}

// LongestStreak returns the longest run of consecutive calendar days in a
// sorted list of unique dates using the given layout. Unparseable dates
// break the current run.
func LongestStreak(dates []string, layout string) int {
	longest, current := 0, 0
	var prev time.Time
	for _, d := range dates {
		t, err := time.Parse(layout, d)
		if err != nil {
			current, prev = 0, time.Time{}
			continue
		}
		if !prev.IsZero() && t.Sub(prev) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		longest = max(longest, current)
		prev = t
	}
	return longest
}
