package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form; a re-run
			// reports the column as a duplicate.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// One row per ledger key. blob holds the JSON object keyed by
	// YYYY-MM-DD exactly as the file and memory stores hold it.
	`CREATE TABLE IF NOT EXISTS progress_blobs (
		key        TEXT PRIMARY KEY,
		blob       TEXT NOT NULL,
		revision   INTEGER NOT NULL DEFAULT 1,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS progress_events (
		id         TEXT PRIMARY KEY,
		user_key   TEXT NOT NULL,
		date       TEXT NOT NULL,
		action     TEXT NOT NULL CHECK(action IN ('complete','uncomplete')),
		confidence TEXT,
		at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_progress_events_user_at ON progress_events(user_key, at)`,

	`ALTER TABLE progress_events ADD COLUMN source TEXT NOT NULL DEFAULT 'cli'`,

	`CREATE INDEX IF NOT EXISTS idx_progress_events_date ON progress_events(user_key, date)`,
}
