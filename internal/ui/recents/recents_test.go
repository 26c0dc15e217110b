package recents

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/packetplay/internal/keymap"
	"github.com/llehouerou/packetplay/internal/state"
	"github.com/llehouerou/packetplay/internal/ui/testutil"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func items(n int) []state.RecentRecording {
	out := make([]state.RecentRecording, n)
	for i := range out {
		out[i] = state.RecentRecording{
			Path:     "/captures/run" + string(rune('a'+i)) + ".pcap",
			Packets:  1000 + i,
			Duration: time.Duration(i) * time.Minute,
			OpenedAt: now.Add(-time.Hour),
		}
	}
	return out
}

func newModel(n, height int) Model {
	m := New()
	m.now = func() time.Time { return now }
	m.SetSize(70, height)
	m.SetFocused(true)
	m.SetItems(items(n))
	return m
}

func TestDetails(t *testing.T) {
	r := state.RecentRecording{
		Path:     "/captures/dis.pcap",
		Packets:  1204,
		Duration: 130 * time.Second,
		Size:     1_200_000,
		OpenedAt: now.Add(-3 * time.Hour),
	}
	assert.Equal(t, "1,204 pkts · 00:02:10 · 1.2 MB · 3 hours ago", Details(r, now))

	bare := state.RecentRecording{Packets: 3, Duration: time.Second}
	assert.Equal(t, "3 pkts · 00:00:01", Details(bare, now))
}

func TestSelectedFollowsCursor(t *testing.T) {
	m := newModel(5, 12)

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "/captures/runa.pcap", sel.Path)

	assert.True(t, m.HandleAction(keymap.ActionMoveDown))
	assert.True(t, m.HandleAction(keymap.ActionMoveDown))
	sel, _ = m.Selected()
	assert.Equal(t, "/captures/runc.pcap", sel.Path)

	assert.True(t, m.HandleAction(keymap.ActionJumpEnd))
	sel, _ = m.Selected()
	assert.Equal(t, "/captures/rune.pcap", sel.Path)

	assert.False(t, m.HandleAction(keymap.ActionPlayPause))
}

func TestSetItemsClampsCursor(t *testing.T) {
	m := newModel(5, 12)
	m.HandleAction(keymap.ActionJumpEnd)

	m.SetItems(items(2))
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "/captures/runb.pcap", sel.Path)

	m.SetItems(nil)
	_, ok = m.Selected()
	assert.False(t, ok)
}

func TestView(t *testing.T) {
	m := newModel(3, 10)
	view := m.View()

	lines := strings.Split(testutil.StripANSI(view), "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, 70, testutil.MeasureWidth(view))
	assert.True(t, testutil.ContainsLine(view, "Recent"))

	line := testutil.FindLine(view, "runb.pcap")
	assert.Contains(t, line, "1,001 pkts · 00:01:00 · 1 hour ago")
}

func TestView_Empty(t *testing.T) {
	m := newModel(0, 8)
	assert.True(t, testutil.ContainsLine(m.View(), "No recordings opened yet"))
}

func TestView_ScrollsWithCursor(t *testing.T) {
	m := newModel(10, 8) // 4 visible rows
	for range 9 {
		m.HandleAction(keymap.ActionMoveDown)
	}
	view := m.View()

	assert.True(t, testutil.ContainsLine(view, "runj.pcap"))
	assert.False(t, testutil.ContainsLine(view, "runa.pcap"))
}
