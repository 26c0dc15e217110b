package state

import "github.com/llehouerou/packetplay/internal/model"

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	SaveSettings(s model.Settings)
	GetSettings() (*model.Settings, error)
	AddRecent(r RecentRecording) error
	ListRecent(limit int) ([]RecentRecording, error)
	RemoveRecent(path string) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
