// Package database provides SQLite connection management and table initialization.
package database

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite database connection with initialization logic.
type DB struct {
	*sql.DB
	path string
	mu   sync.Mutex
}

// New creates a new database connection and initializes tables.
func New(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys and WAL mode for better performance
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}

	// SQLite supports only one writer at a time. A single connection avoids
	// "database is locked" errors during concurrent writes; read throughput
	// is not a concern here since hot reads are served from the cache layer.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	db := &DB{
		DB:   sqlDB,
		path: dbPath,
	}

	if err := db.initTables(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return db, nil
}

// initTables creates the trackers and sessions tables with indexes.
func (db *DB) initTables() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trackersTableSQL := `
	CREATE TABLE IF NOT EXISTS trackers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		target_hours REAL NOT NULL DEFAULT 0,
		work_days TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);`

	if _, err := db.Exec(trackersTableSQL); err != nil {
		return fmt.Errorf("failed to create trackers table: %w", err)
	}

	trackersIndexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_trackers_user ON trackers(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_trackers_status ON trackers(status);",
	}

	for _, idx := range trackersIndexes {
		if _, err := db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create trackers index: %w", err)
		}
	}

	sessionsTableSQL := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		tracker_id TEXT NOT NULL,
		started_at TEXT NOT NULL,
		ended_at TEXT,
		FOREIGN KEY (tracker_id) REFERENCES trackers(id) ON DELETE CASCADE
	);`

	if _, err := db.Exec(sessionsTableSQL); err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}

	sessionsIndexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_sessions_tracker ON sessions(tracker_id);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);",
	}

	for _, idx := range sessionsIndexes {
		if _, err := db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create sessions index: %w", err)
		}
	}

	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}
