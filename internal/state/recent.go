package state

import (
	"context"
	"database/sql"
	"time"

	dbutil "github.com/llehouerou/packetplay/internal/db"
)

// MaxRecent is the number of recordings kept in the recent list.
const MaxRecent = 20

// RecentRecording is a previously opened capture.
type RecentRecording struct {
	Path     string
	Packets  int
	Skipped  int
	Duration time.Duration
	Size     int64
	OpenedAt time.Time
}

// AddRecent records r as the most recently opened capture and prunes the
// list to MaxRecent entries.
func (m *Manager) AddRecent(r RecentRecording) error {
	return addRecent(m.db, r)
}

// ListRecent returns up to limit recordings, newest first.
func (m *Manager) ListRecent(limit int) ([]RecentRecording, error) {
	return listRecent(m.db, limit)
}

// RemoveRecent forgets path.
func (m *Manager) RemoveRecent(path string) error {
	_, err := m.db.Exec(`DELETE FROM recent_recordings WHERE path = ?`, path)
	return err
}

func addRecent(db *sql.DB, r RecentRecording) error {
	if r.OpenedAt.IsZero() {
		r.OpenedAt = time.Now()
	}
	return dbutil.WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO recent_recordings (path, packets, skipped, duration_ms, size, opened_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				packets = excluded.packets,
				skipped = excluded.skipped,
				duration_ms = excluded.duration_ms,
				size = excluded.size,
				opened_at = excluded.opened_at
		`, r.Path, r.Packets, r.Skipped, r.Duration.Milliseconds(), r.Size, r.OpenedAt.UnixMilli())
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			DELETE FROM recent_recordings WHERE path NOT IN (
				SELECT path FROM recent_recordings ORDER BY opened_at DESC LIMIT ?
			)
		`, MaxRecent)
		return err
	})
}

func listRecent(db *sql.DB, limit int) ([]RecentRecording, error) {
	rows, err := db.Query(`
		SELECT path, packets, skipped, duration_ms, size, opened_at
		FROM recent_recordings
		ORDER BY opened_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecentRecording
	for rows.Next() {
		var r RecentRecording
		var durationMS, openedAt int64
		var size sql.NullInt64
		if err := rows.Scan(&r.Path, &r.Packets, &r.Skipped, &durationMS, &size, &openedAt); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Size = dbutil.NullInt64Value(size)
		r.OpenedAt = time.UnixMilli(openedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}
