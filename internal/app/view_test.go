package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/ui/testutil"
)

func TestView_EmptyBeforeSize(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.width, m.height = 0, 0
	assert.Empty(t, m.View())
}

func TestView_NoRecording(t *testing.T) {
	m, _, _ := newTestModel(t)
	view := m.View()

	assert.Len(t, strings.Split(view, "\n"), 40)
	assert.True(t, testutil.ContainsLine(view, "Packet Play"))
	assert.True(t, testutil.ContainsLine(view, "No recording"))
	assert.True(t, testutil.ContainsLine(view, "Press o to open a capture file."))
	assert.True(t, testutil.ContainsLine(view, "[ Play ] [ Pause ] [ Rewind ] [ Quit ]"))
	assert.True(t, testutil.ContainsLine(view, "Destination 255.255.255.255:3000 · source port 3001 · TTL 1"))
	assert.True(t, testutil.ContainsLine(view, "p play/pause · r rewind"))
	assert.False(t, testutil.ContainsLine(view, "00:00:00 / "), "no player bar without a recording")
}

func TestView_LoadedRecording(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = openCapture(t, m, 3)
	view := m.View()

	assert.Len(t, strings.Split(view, "\n"), 40)
	assert.True(t, testutil.ContainsLine(view, "Ready"))
	assert.Contains(t, testutil.FindLine(view, "Name"), "dis.pcap")
	assert.Contains(t, testutil.FindLine(view, "Path"), "dis.pcap")
	assert.Contains(t, testutil.FindLine(view, "Packets"), "3")
	assert.Contains(t, testutil.FindLine(view, "Duration"), "00:00:02")
	assert.Contains(t, testutil.FindLine(view, "Format"), "pcap · Ethernet")
	assert.True(t, testutil.ContainsLine(view, "0 / 3"), "player bar counter")
}

func TestView_NarrowStacksPanels(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	view := m.View()

	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, testutil.MeasureWidth(line), 80)
	}
	assert.Less(t,
		strings.Index(testutil.StripANSI(view), "Recording"),
		strings.Index(testutil.StripANSI(view), "Recent"))
}

func TestView_PopupOverlay(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = update(t, m, key("e"))
	view := m.View()

	assert.Len(t, strings.Split(view, "\n"), 40)
	assert.True(t, testutil.ContainsLine(view, "Applies to the next opened recording"))
}

func TestView_FinishedStatus(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = update(t, m, ServiceStateChangedMsg{Previous: model.Playing, Current: model.Finished})
	assert.True(t, testutil.ContainsLine(m.View(), "Playback finished"))
}

func TestEnforceHeight(t *testing.T) {
	assert.Equal(t, "a\nb\n\n", enforceHeight("a\nb", 4))
	assert.Equal(t, "a\nb", enforceHeight("a\nb\nc", 2))
	assert.Equal(t, "a", enforceHeight("a", 1))
}

func TestSourcePort(t *testing.T) {
	assert.Equal(t, "any", sourcePort(0))
	assert.Equal(t, "3001", sourcePort(3001))
}
