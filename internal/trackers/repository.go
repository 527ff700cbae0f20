package trackers

import (
	"database/sql"
	"fmt"
	"strings"

	"worktrack/internal/shared/database"
)

// Repository handles database operations for trackers and sessions.
type Repository struct {
	db *database.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// CreateTracker inserts a new tracker.
func (r *Repository) CreateTracker(t *Tracker) error {
	_, err := r.db.Exec(
		`INSERT INTO trackers (id, user_id, name, target_hours, work_days, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Name, t.TargetHours, strings.Join(t.WorkDays, ","), t.Status, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tracker: %w", err)
	}
	return nil
}

// GetTracker retrieves a tracker by ID, returning nil when it does not exist.
func (r *Repository) GetTracker(id string) (*Tracker, error) {
	row := r.db.QueryRow(
		`SELECT id, user_id, name, target_hours, work_days, status, created_at
		 FROM trackers WHERE id = ?`, id,
	)
	return scanTracker(row)
}

// ListTrackers returns all of a user's trackers, most recent first.
func (r *Repository) ListTrackers(userID string) ([]Tracker, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, target_hours, work_days, status, created_at
		 FROM trackers WHERE user_id = ? ORDER BY created_at DESC, id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query trackers: %w", err)
	}
	defer rows.Close()

	trackers := []Tracker{}
	for rows.Next() {
		var t Tracker
		var workDays string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.TargetHours, &workDays, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tracker row: %w", err)
		}
		t.WorkDays = splitWorkDays(workDays)
		trackers = append(trackers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracker rows: %w", err)
	}
	return trackers, nil
}

// LatestActiveTracker returns the user's most recently created active
// tracker, or nil when the user has none.
func (r *Repository) LatestActiveTracker(userID string) (*Tracker, error) {
	row := r.db.QueryRow(
		`SELECT id, user_id, name, target_hours, work_days, status, created_at
		 FROM trackers WHERE user_id = ? AND status = ?
		 ORDER BY created_at DESC, id LIMIT 1`,
		userID, string(TrackerStatusActive),
	)
	return scanTracker(row)
}

// SetTrackerStatus updates a tracker's lifecycle state.
func (r *Repository) SetTrackerStatus(id string, status TrackerStatus) error {
	result, err := r.db.Exec("UPDATE trackers SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update tracker status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("tracker not found")
	}
	return nil
}

// RunningSession returns the tracker's running session, or nil if none.
func (r *Repository) RunningSession(trackerID string) (*Session, error) {
	row := r.db.QueryRow(
		`SELECT s.id, s.tracker_id, t.user_id, s.started_at, s.ended_at
		 FROM sessions s JOIN trackers t ON s.tracker_id = t.id
		 WHERE s.tracker_id = ? AND s.ended_at IS NULL LIMIT 1`, trackerID,
	)
	return scanSessionRow(row)
}

// CreateSession inserts a new running session.
func (r *Repository) CreateSession(s *Session) error {
	_, err := r.db.Exec(
		"INSERT INTO sessions (id, tracker_id, started_at, ended_at) VALUES (?, ?, ?, NULL)",
		s.ID, s.TrackerID, s.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// FinishSession stamps a session's end instant. Stopped sessions are
// immutable, so only rows with a NULL ended_at qualify.
func (r *Repository) FinishSession(id, endedAt string) error {
	result, err := r.db.Exec(
		"UPDATE sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL",
		endedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to finish session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session not found or already stopped")
	}
	return nil
}

// SessionsOverlapping returns the user's sessions whose interval overlaps
// [from, to), both RFC3339 UTC strings. An empty trackerID combines sessions
// across all of the user's trackers; running sessions always qualify as
// extending past any upper bound they started before.
func (r *Repository) SessionsOverlapping(userID, trackerID, from, to string) ([]Session, error) {
	query := `SELECT s.id, s.tracker_id, t.user_id, s.started_at, s.ended_at
	 FROM sessions s JOIN trackers t ON s.tracker_id = t.id
	 WHERE t.user_id = ? AND s.started_at < ? AND (s.ended_at IS NULL OR s.ended_at > ?)`
	args := []interface{}{userID, to, from}

	if trackerID != "" {
		query += " AND s.tracker_id = ?"
		args = append(args, trackerID)
	}
	query += " ORDER BY s.started_at"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var s Session
		var endedAt sql.NullString
		if err := rows.Scan(&s.ID, &s.TrackerID, &s.UserID, &s.StartedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		if endedAt.Valid {
			s.EndedAt = &endedAt.String
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}
	return sessions, nil
}

func scanTracker(row *sql.Row) (*Tracker, error) {
	var t Tracker
	var workDays string
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.TargetHours, &workDays, &t.Status, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tracker: %w", err)
	}
	t.WorkDays = splitWorkDays(workDays)
	return &t, nil
}

func scanSessionRow(row *sql.Row) (*Session, error) {
	var s Session
	var endedAt sql.NullString
	err := row.Scan(&s.ID, &s.TrackerID, &s.UserID, &s.StartedAt, &endedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	if endedAt.Valid {
		s.EndedAt = &endedAt.String
	}
	return &s, nil
}

func splitWorkDays(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
