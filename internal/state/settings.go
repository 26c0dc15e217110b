package state

import (
	"database/sql"
	"errors"

	"github.com/llehouerou/packetplay/internal/model"
)

func getSettings(db *sql.DB) (*model.Settings, error) {
	row := db.QueryRow(`SELECT destination, source_port, ttl FROM settings WHERE id = 1`)

	var s model.Settings
	err := row.Scan(&s.Destination, &s.SourcePort, &s.TTL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved settings is valid on first run
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func saveSettings(db *sql.DB, s model.Settings) error {
	_, err := db.Exec(`
		INSERT INTO settings (id, destination, source_port, ttl)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			destination = excluded.destination,
			source_port = excluded.source_port,
			ttl = excluded.ttl
	`, s.Destination, s.SourcePort, s.TTL)

	return err
}
