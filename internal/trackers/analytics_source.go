package trackers

import (
	"fmt"
	"time"

	"worktrack/internal/analytics"
)

// AnalyticsSource adapts the repository to the analytics session source port.
// It is read-only: aggregation never mutates store state.
type AnalyticsSource struct {
	repo *Repository
}

// NewAnalyticsSource creates an AnalyticsSource over the repository.
func NewAnalyticsSource(repo *Repository) *AnalyticsSource {
	return &AnalyticsSource{repo: repo}
}

// Intervals returns the user's session intervals overlapping [from, to).
func (a *AnalyticsSource) Intervals(userID, trackerID string, from, to time.Time) ([]analytics.Interval, error) {
	sessions, err := a.repo.SessionsOverlapping(userID, trackerID, FormatRFC3339(from), FormatRFC3339(to))
	if err != nil {
		return nil, err
	}

	intervals := make([]analytics.Interval, 0, len(sessions))
	for _, s := range sessions {
		start, err := time.Parse(time.RFC3339, s.StartedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at of session %s: %w", s.ID, err)
		}
		iv := analytics.Interval{Start: start}
		if s.EndedAt != nil {
			end, err := time.Parse(time.RFC3339, *s.EndedAt)
			if err != nil {
				return nil, fmt.Errorf("failed to parse ended_at of session %s: %w", s.ID, err)
			}
			iv.End = &end
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// Tracker resolves a tracker scoped to the user, nil when it does not exist
// or belongs to another user.
func (a *AnalyticsSource) Tracker(userID, trackerID string) (*analytics.TrackerInfo, error) {
	tracker, err := a.repo.GetTracker(trackerID)
	if err != nil {
		return nil, err
	}
	if tracker == nil || tracker.UserID != userID {
		return nil, nil
	}
	return toTrackerInfo(tracker), nil
}

// ActiveTracker returns the user's most recently created active tracker, nil
// when there is none.
func (a *AnalyticsSource) ActiveTracker(userID string) (*analytics.TrackerInfo, error) {
	tracker, err := a.repo.LatestActiveTracker(userID)
	if err != nil {
		return nil, err
	}
	if tracker == nil {
		return nil, nil
	}
	return toTrackerInfo(tracker), nil
}

func toTrackerInfo(t *Tracker) *analytics.TrackerInfo {
	return &analytics.TrackerInfo{
		ID:          t.ID,
		Name:        t.Name,
		TargetHours: t.TargetHours,
	}
}
