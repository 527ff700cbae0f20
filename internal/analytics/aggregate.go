package analytics

import (
	"math"
	"time"
)

// Interval is a raw session interval. A nil End means the session is still
// running and is clipped at the request's evaluation instant.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// DailyBucket is the aggregation output for one calendar day.
type DailyBucket struct {
	Date         string  `json:"date"`
	TotalMinutes float64 `json:"total_minutes"`
	TotalHours   float64 `json:"total_hours"`
	SessionCount int     `json:"session_count"`
}

// BuildBuckets aggregates session intervals into one bucket per calendar day
// of the range, in ascending date order with zero-activity days filled in.
// Intervals are clipped to UTC day boundaries, so a session spanning midnight
// contributes to each overlapped day proportionally. A session counts once
// toward session_count for every day it overlaps. Active intervals end at now.
func BuildBuckets(rng DateRange, intervals []Interval, now time.Time) []DailyBucket {
	days := rng.Days()
	seconds := make([]float64, days)
	counts := make([]int, days)

	for _, iv := range intervals {
		start := iv.Start.UTC()
		end := now.UTC()
		if iv.End != nil {
			end = iv.End.UTC()
		}
		if !end.After(start) {
			continue
		}

		first := dayIndex(rng.Start, start)
		last := dayIndex(rng.Start, end)
		if first < 0 {
			first = 0
		}
		if last > days-1 {
			last = days - 1
		}

		for i := first; i <= last; i++ {
			dayStart := rng.Start.AddDate(0, 0, i)
			dayEnd := dayStart.AddDate(0, 0, 1)
			overlap := minTime(end, dayEnd).Sub(maxTime(start, dayStart))
			if overlap <= 0 {
				continue
			}
			seconds[i] += overlap.Seconds()
			counts[i]++
		}
	}

	buckets := make([]DailyBucket, days)
	for i := range buckets {
		minutes := round2(seconds[i] / 60)
		buckets[i] = DailyBucket{
			Date:         rng.Start.AddDate(0, 0, i).Format(DateLayout),
			TotalMinutes: minutes,
			TotalHours:   round2(minutes / 60),
			SessionCount: counts[i],
		}
	}
	return buckets
}

// dayIndex returns the offset in whole days of t's UTC calendar day from the
// range start. Negative when t precedes the range.
func dayIndex(rangeStart, t time.Time) int {
	return int(math.Floor(Midnight(t).Sub(rangeStart).Hours() / 24))
}

// round2 rounds to two decimal places, the fixed precision of all reported
// hour and minute values.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
