package state

import (
	"slices"
	"time"

	"github.com/llehouerou/packetplay/internal/model"
)

// Mock is a test double for Manager.
type Mock struct {
	settings *model.Settings
	recent   []RecentRecording
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SaveSettings(s model.Settings) { m.settings = &s }

func (m *Mock) GetSettings() (*model.Settings, error) {
	return m.settings, nil
}

func (m *Mock) AddRecent(r RecentRecording) error {
	if r.OpenedAt.IsZero() {
		r.OpenedAt = time.Now()
	}
	m.recent = slices.DeleteFunc(m.recent, func(e RecentRecording) bool { return e.Path == r.Path })
	m.recent = append([]RecentRecording{r}, m.recent...)
	if len(m.recent) > MaxRecent {
		m.recent = m.recent[:MaxRecent]
	}
	return nil
}

func (m *Mock) ListRecent(limit int) ([]RecentRecording, error) {
	if limit < len(m.recent) {
		return slices.Clone(m.recent[:limit]), nil
	}
	return slices.Clone(m.recent), nil
}

func (m *Mock) RemoveRecent(path string) error {
	m.recent = slices.DeleteFunc(m.recent, func(e RecentRecording) bool { return e.Path == path })
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
