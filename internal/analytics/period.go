// Package analytics implements the time-bucket aggregation engine: resolving
// named periods to date ranges, bucketing raw session intervals into calendar
// days, and reducing buckets to metric views.
package analytics

import (
	"time"

	apperrors "worktrack/internal/shared/errors"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Named periods accepted by the period resolver, each a fixed number of
// calendar days ending at "today" inclusive.
var periodDays = map[string]int{
	"week":  7,
	"month": 30,
	"year":  365,
}

// DateRange is an inclusive pair of calendar dates, held as UTC midnights.
// Start never exceeds End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two literal dates, rejecting a start after
// the end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = Midnight(start)
	end = Midnight(end)
	if start.After(end) {
		return DateRange{}, apperrors.Validation("startDate must not be after endDate")
	}
	return DateRange{Start: start, End: end}, nil
}

// ResolvePeriod turns a named period into an explicit date range anchored at
// the caller's today: "week" covers the 7 days ending today, "month" 30 and
// "year" 365.
func ResolvePeriod(period string, today time.Time) (DateRange, error) {
	days, ok := periodDays[period]
	if !ok {
		return DateRange{}, apperrors.Validation("invalid period: must be one of week, month, year")
	}
	end := Midnight(today)
	return DateRange{Start: end.AddDate(0, 0, -(days - 1)), End: end}, nil
}

// ParseDate parses a YYYY-MM-DD calendar date as a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.Validation("invalid date " + s + ": expected YYYY-MM-DD")
	}
	return t, nil
}

// Midnight truncates an instant to the start of its UTC calendar day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Days returns the number of calendar days the range spans, both ends
// inclusive.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start)/(24*time.Hour)) + 1
}

// RangeQuery is the raw range selection taken from a request: either a named
// period or a literal startDate/endDate pair.
type RangeQuery struct {
	Period    string
	StartDate string
	EndDate   string
}

// Resolve turns the query into a concrete date range anchored at today.
// Validation failures surface before any aggregation or cache work happens.
func (q RangeQuery) Resolve(today time.Time) (DateRange, error) {
	if q.Period != "" {
		return ResolvePeriod(q.Period, today)
	}

	if q.StartDate == "" || q.EndDate == "" {
		return DateRange{}, apperrors.Validation("startDate and endDate are required")
	}
	start, err := ParseDate(q.StartDate)
	if err != nil {
		return DateRange{}, err
	}
	end, err := ParseDate(q.EndDate)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(start, end)
}
