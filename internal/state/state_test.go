package state

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/packetplay/internal/model"
)

func setupTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenPath(":memory:")
	require.NoError(t, err)
	return m
}

func TestGetSettings_Empty(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	s, err := m.GetSettings()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSaveSettings_Debounced(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	m.SaveSettings(model.Settings{Destination: "10.0.0.1:3000", SourcePort: 3001, TTL: 1})
	m.SaveSettings(model.Settings{Destination: "239.0.0.9:3000", SourcePort: 0, TTL: 8})

	s, err := m.GetSettings()
	require.NoError(t, err)
	assert.Nil(t, s, "nothing is written before the debounce delay")

	want := model.Settings{Destination: "239.0.0.9:3000", SourcePort: 0, TTL: 8}
	assert.Eventually(t, func() bool {
		got, err := m.GetSettings()
		return err == nil && got != nil && *got == want
	}, 3*time.Second, 20*time.Millisecond)
}

func TestClose_FlushesPendingSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packetplay.db")

	m, err := OpenPath(path)
	require.NoError(t, err)
	want := model.Settings{Destination: "192.168.1.255:3000", SourcePort: 4000, TTL: 2}
	m.SaveSettings(want)
	require.NoError(t, m.Close())

	reopened, err := OpenPath(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetSettings()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestRecent_NewestFirst(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, m.AddRecent(RecentRecording{
		Path: "/captures/a.pcap", Packets: 10, Duration: 2 * time.Second, Size: 4096, OpenedAt: base,
	}))
	require.NoError(t, m.AddRecent(RecentRecording{
		Path: "/captures/b.pcapng", Packets: 3, Skipped: 1, Duration: 1500 * time.Millisecond, OpenedAt: base.Add(time.Minute),
	}))

	list, err := m.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "/captures/b.pcapng", list[0].Path)
	assert.Equal(t, 1, list[0].Skipped)
	assert.Equal(t, 1500*time.Millisecond, list[0].Duration)
	assert.True(t, list[0].OpenedAt.Equal(base.Add(time.Minute)))

	assert.Equal(t, "/captures/a.pcap", list[1].Path)
	assert.Equal(t, 10, list[1].Packets)
	assert.Equal(t, int64(4096), list[1].Size)
}

func TestRecent_ReopenMovesToFront(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, m.AddRecent(RecentRecording{Path: "/a.pcap", Packets: 1, OpenedAt: base}))
	require.NoError(t, m.AddRecent(RecentRecording{Path: "/b.pcap", Packets: 1, OpenedAt: base.Add(time.Second)}))
	require.NoError(t, m.AddRecent(RecentRecording{Path: "/a.pcap", Packets: 7, OpenedAt: base.Add(2 * time.Second)}))

	list, err := m.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "/a.pcap", list[0].Path)
	assert.Equal(t, 7, list[0].Packets)
}

func TestRecent_PrunedToMax(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := range MaxRecent + 5 {
		require.NoError(t, m.AddRecent(RecentRecording{
			Path:     fmt.Sprintf("/captures/%02d.pcap", i),
			Packets:  i,
			OpenedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	list, err := m.ListRecent(100)
	require.NoError(t, err)
	require.Len(t, list, MaxRecent)
	assert.Equal(t, "/captures/24.pcap", list[0].Path)
	assert.Equal(t, "/captures/05.pcap", list[MaxRecent-1].Path)

	limited, err := m.ListRecent(3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestRecent_Remove(t *testing.T) {
	m := setupTestManager(t)
	defer m.Close()

	require.NoError(t, m.AddRecent(RecentRecording{Path: "/gone.pcap", Packets: 1}))
	require.NoError(t, m.RemoveRecent("/gone.pcap"))

	list, err := m.ListRecent(10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMock_Recent(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.AddRecent(RecentRecording{Path: "/a.pcap"}))
	require.NoError(t, m.AddRecent(RecentRecording{Path: "/b.pcap"}))
	require.NoError(t, m.AddRecent(RecentRecording{Path: "/a.pcap"}))

	list, err := m.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "/a.pcap", list[0].Path)

	m.SaveSettings(model.Settings{Destination: "10.0.0.1:3000", TTL: 1})
	s, err := m.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:3000", s.Destination)

	require.NoError(t, m.Close())
	assert.True(t, m.IsClosed())
}
