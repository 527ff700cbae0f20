// Package trackers implements the tracker and work-session store: the
// mutable records the aggregation engine reads and the mutating endpoints
// whose writes trigger cache invalidation.
package trackers

import (
	"errors"
	"time"

	"worktrack/internal/shared/validation"
)

// NameMaxLen bounds tracker names.
const NameMaxLen = 100

// MaxTargetHours bounds the per-day target; more than a day makes no sense.
const MaxTargetHours = 24

// Validation errors
var (
	ErrNameRequired     = errors.New("name is required")
	ErrNameTooLong      = errors.New("name must be at most 100 characters")
	ErrTargetOutOfRange = errors.New("target_hours must be between 0 and 24")
	ErrBadWorkDays      = errors.New("work_days must be distinct weekday names (mon..sun)")
)

// DefaultWorkDays is applied when a tracker is created without an explicit
// work-day configuration.
var DefaultWorkDays = []string{"mon", "tue", "wed", "thu", "fri"}

// TrackerStatus is the lifecycle state of a tracker.
type TrackerStatus string

const (
	TrackerStatusActive   TrackerStatus = "active"
	TrackerStatusArchived TrackerStatus = "archived"
)

// Tracker is a named time tracker owned by exactly one user.
type Tracker struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	TargetHours float64  `json:"target_hours"`
	WorkDays    []string `json:"work_days"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at"`
}

// TrackerCreate is the input for creating a tracker.
type TrackerCreate struct {
	Name        string   `json:"name"`
	TargetHours float64  `json:"target_hours"`
	WorkDays    []string `json:"work_days,omitempty"`
}

// Validate sanitizes and checks the create input, filling work-day defaults.
func (t *TrackerCreate) Validate() error {
	t.Name = validation.SanitizeString(t.Name)
	if t.Name == "" {
		return ErrNameRequired
	}
	if len(t.Name) > NameMaxLen {
		return ErrNameTooLong
	}

	if t.TargetHours < 0 || t.TargetHours > MaxTargetHours {
		return ErrTargetOutOfRange
	}

	if len(t.WorkDays) == 0 {
		t.WorkDays = append([]string(nil), DefaultWorkDays...)
		return nil
	}
	normalized, ok := validation.NormalizeWorkDays(t.WorkDays)
	if !ok {
		return ErrBadWorkDays
	}
	t.WorkDays = normalized
	return nil
}

// Session is one work interval of a tracker. EndedAt is nil while the session
// is running; a stopped session is immutable. UserID is derived from the
// owning tracker so mutation responses carry the affected user.
type Session struct {
	ID        string  `json:"id"`
	TrackerID string  `json:"tracker_id"`
	UserID    string  `json:"user_id"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at,omitempty"`
}

// FormatRFC3339 formats an instant as an RFC3339 UTC string, the storage and
// wire format for all instants. UTC keeps the strings fixed-width, so
// lexicographic comparison in SQL matches chronological order.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
