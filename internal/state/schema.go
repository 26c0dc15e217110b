package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			destination TEXT NOT NULL,
			source_port INTEGER NOT NULL,
			ttl INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS recent_recordings (
			path TEXT PRIMARY KEY,
			packets INTEGER NOT NULL,
			skipped INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL,
			size INTEGER,
			opened_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_recent_opened_at ON recent_recordings(opened_at DESC);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
