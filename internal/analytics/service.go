package analytics

import (
	"time"

	"github.com/coder/quartz"

	apperrors "worktrack/internal/shared/errors"
)

// TrackerInfo is the slice of tracker state the analytics views need.
type TrackerInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	TargetHours float64 `json:"target_hours"`
}

// Source provides raw session intervals and tracker scope resolution.
// Implementations must be side-effect-free; the aggregation layer never
// touches the cache or the store's mutable state.
type Source interface {
	// Intervals returns the session intervals for the user that overlap
	// [from, to). An empty trackerID combines sessions across all of the
	// user's trackers.
	Intervals(userID, trackerID string, from, to time.Time) ([]Interval, error)

	// Tracker resolves a tracker owned by the user, or nil when the tracker
	// does not exist or belongs to someone else.
	Tracker(userID, trackerID string) (*TrackerInfo, error)

	// ActiveTracker returns the user's most recently created active tracker,
	// or nil when the user has none.
	ActiveTracker(userID string) (*TrackerInfo, error)
}

// Service computes the aggregated analytics views. Each method evaluates
// "now" exactly once, so period anchoring and active-session clipping agree
// within a request.
type Service struct {
	source Source
	clock  quartz.Clock
}

// NewService creates an analytics service over the given session source.
func NewService(source Source, clock quartz.Clock) *Service {
	return &Service{source: source, clock: clock}
}

// TotalHoursResult is the total-hours reduction: the summed hours plus the
// per-day buckets for transparency.
type TotalHoursResult struct {
	TotalHours   float64       `json:"total_hours"`
	TotalMinutes float64       `json:"total_minutes"`
	Days         int           `json:"days"`
	Buckets      []DailyBucket `json:"buckets"`
}

// TodayStats compares today's activity against the tracker's configured
// target.
type TodayStats struct {
	Date           string      `json:"date"`
	Tracker        TrackerInfo `json:"tracker"`
	TotalMinutes   float64     `json:"total_minutes"`
	TotalHours     float64     `json:"total_hours"`
	SessionCount   int         `json:"session_count"`
	TargetHours    float64     `json:"target_hours"`
	TargetProgress float64     `json:"target_progress"`
}

// DailyTotals aggregates the scope's sessions into one bucket per calendar
// day of the resolved range.
func (s *Service) DailyTotals(userID, trackerID string, q RangeQuery) ([]DailyBucket, error) {
	now := s.clock.Now().UTC()
	rng, err := q.Resolve(now)
	if err != nil {
		return nil, err
	}
	return s.aggregate(userID, trackerID, rng, now)
}

// TotalHours sums the daily buckets of the resolved range into total hours.
func (s *Service) TotalHours(userID, trackerID string, q RangeQuery) (*TotalHoursResult, error) {
	now := s.clock.Now().UTC()
	rng, err := q.Resolve(now)
	if err != nil {
		return nil, err
	}

	buckets, err := s.aggregate(userID, trackerID, rng, now)
	if err != nil {
		return nil, err
	}

	var minutes float64
	for _, b := range buckets {
		minutes += b.TotalMinutes
	}
	minutes = round2(minutes)

	return &TotalHoursResult{
		TotalHours:   round2(minutes / 60),
		TotalMinutes: minutes,
		Days:         len(buckets),
		Buckets:      buckets,
	}, nil
}

// ProductivityTrend returns the date-ordered bucket sequence as the trend
// signal. No smoothing is applied; the gap-filled ascending sequence is the
// contract, and rendering is the caller's job.
func (s *Service) ProductivityTrend(userID, trackerID string, q RangeQuery) ([]DailyBucket, error) {
	return s.DailyTotals(userID, trackerID, q)
}

// Today aggregates the single-day range today..today for the selected
// tracker, falling back to the user's most recent active tracker when none is
// given, and reports progress against the tracker's target hours.
func (s *Service) Today(userID, trackerID string) (*TodayStats, error) {
	now := s.clock.Now().UTC()

	var tracker *TrackerInfo
	var err error
	if trackerID != "" {
		tracker, err = s.source.Tracker(userID, trackerID)
	} else {
		tracker, err = s.source.ActiveTracker(userID)
	}
	if err != nil {
		return nil, err
	}
	if tracker == nil {
		return nil, apperrors.NotFound("no tracker found for user " + userID)
	}

	today := Midnight(now)
	rng := DateRange{Start: today, End: today}
	buckets, err := s.aggregate(userID, tracker.ID, rng, now)
	if err != nil {
		return nil, err
	}

	day := buckets[0]
	progress := 0.0
	if tracker.TargetHours > 0 {
		progress = round2(day.TotalHours / tracker.TargetHours)
	}

	return &TodayStats{
		Date:           day.Date,
		Tracker:        *tracker,
		TotalMinutes:   day.TotalMinutes,
		TotalHours:     day.TotalHours,
		SessionCount:   day.SessionCount,
		TargetHours:    tracker.TargetHours,
		TargetProgress: progress,
	}, nil
}

// aggregate validates the tracker scope, fetches the overlapping intervals
// and buckets them over the range.
func (s *Service) aggregate(userID, trackerID string, rng DateRange, now time.Time) ([]DailyBucket, error) {
	if trackerID != "" {
		tracker, err := s.source.Tracker(userID, trackerID)
		if err != nil {
			return nil, err
		}
		if tracker == nil {
			return nil, apperrors.NotFound("tracker " + trackerID + " not found for user " + userID)
		}
	}

	from := rng.Start
	to := rng.End.AddDate(0, 0, 1)
	intervals, err := s.source.Intervals(userID, trackerID, from, to)
	if err != nil {
		return nil, err
	}

	return BuildBuckets(rng, intervals, now), nil
}
