package trackers

import (
	"github.com/coder/quartz"
	"github.com/google/uuid"

	apperrors "worktrack/internal/shared/errors"
	"worktrack/internal/shared/validation"
)

// Service handles business logic for tracker and session mutations. Every
// returned payload carries the affected user's ID so the invalidation layer
// can resolve its scope from the result alone.
type Service struct {
	repo  *Repository
	clock quartz.Clock
}

// NewService creates a new Service.
func NewService(repo *Repository, clock quartz.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// CreateTracker creates an active tracker for the user.
func (s *Service) CreateTracker(userID string, input *TrackerCreate) (*Tracker, error) {
	userID = validation.SanitizeString(userID)
	if userID == "" {
		return nil, apperrors.Validation("userId is required")
	}
	if err := input.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	tracker := &Tracker{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        input.Name,
		TargetHours: input.TargetHours,
		WorkDays:    input.WorkDays,
		Status:      string(TrackerStatusActive),
		CreatedAt:   FormatRFC3339(s.clock.Now()),
	}
	if err := s.repo.CreateTracker(tracker); err != nil {
		return nil, err
	}
	return tracker, nil
}

// ListTrackers returns the user's trackers, most recent first.
func (s *Service) ListTrackers(userID string) ([]Tracker, error) {
	userID = validation.SanitizeString(userID)
	if userID == "" {
		return nil, apperrors.Validation("userId is required")
	}
	return s.repo.ListTrackers(userID)
}

// StartSession begins a work session on the tracker. A tracker can have at
// most one running session, and archived trackers reject mutations.
func (s *Service) StartSession(trackerID string) (*Session, error) {
	tracker, err := s.requireTracker(trackerID)
	if err != nil {
		return nil, err
	}
	if tracker.Status == string(TrackerStatusArchived) {
		return nil, apperrors.Validation("tracker " + trackerID + " is archived")
	}

	running, err := s.repo.RunningSession(trackerID)
	if err != nil {
		return nil, err
	}
	if running != nil {
		return nil, apperrors.Validation("a session is already running for tracker " + trackerID)
	}

	session := &Session{
		ID:        uuid.NewString(),
		TrackerID: trackerID,
		UserID:    tracker.UserID,
		StartedAt: FormatRFC3339(s.clock.Now()),
	}
	if err := s.repo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// StopSession ends the tracker's running session.
func (s *Service) StopSession(trackerID string) (*Session, error) {
	if _, err := s.requireTracker(trackerID); err != nil {
		return nil, err
	}

	running, err := s.repo.RunningSession(trackerID)
	if err != nil {
		return nil, err
	}
	if running == nil {
		return nil, apperrors.Validation("no running session for tracker " + trackerID)
	}

	endedAt := FormatRFC3339(s.clock.Now())
	if err := s.repo.FinishSession(running.ID, endedAt); err != nil {
		return nil, err
	}
	running.EndedAt = &endedAt
	return running, nil
}

// ArchiveTracker moves the tracker to the archived state. Its historical
// sessions keep aggregating; only further mutations are rejected.
func (s *Service) ArchiveTracker(trackerID string) (*Tracker, error) {
	return s.setStatus(trackerID, TrackerStatusArchived)
}

// UnarchiveTracker restores an archived tracker to active.
func (s *Service) UnarchiveTracker(trackerID string) (*Tracker, error) {
	return s.setStatus(trackerID, TrackerStatusActive)
}

func (s *Service) setStatus(trackerID string, status TrackerStatus) (*Tracker, error) {
	tracker, err := s.requireTracker(trackerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetTrackerStatus(trackerID, status); err != nil {
		return nil, err
	}
	tracker.Status = string(status)
	return tracker, nil
}

func (s *Service) requireTracker(trackerID string) (*Tracker, error) {
	if trackerID == "" {
		return nil, apperrors.Validation("trackerId is required")
	}
	tracker, err := s.repo.GetTracker(trackerID)
	if err != nil {
		return nil, err
	}
	if tracker == nil {
		return nil, apperrors.NotFound("tracker " + trackerID + " not found")
	}
	return tracker, nil
}
