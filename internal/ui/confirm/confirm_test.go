package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/packetplay/internal/ui/testutil"
)

type unloadRequest struct{}

func newHarness() *testutil.PopupHarness {
	m := New("Stop replay?", "dis.pcap is still sending packets.", unloadRequest{})
	m.SetSize(60, 10)
	return testutil.NewPopupHarness(&m)
}

func answer(t *testing.T, h *testutil.PopupHarness) Result {
	t.Helper()
	msg, ok := h.Emitted()
	require.True(t, ok, "expected an action")
	assert.Equal(t, "confirm", msg.Source)
	r, ok := msg.Action.(Result)
	require.True(t, ok, "expected Result, got %T", msg.Action)
	return r
}

func TestConfirm_Answers(t *testing.T) {
	tests := []struct {
		name string
		send func(*testutil.PopupHarness)
		want bool
	}{
		{"enter", func(h *testutil.PopupHarness) { h.SendEnter() }, true},
		{"y", func(h *testutil.PopupHarness) { h.Type("y") }, true},
		{"Y", func(h *testutil.PopupHarness) { h.Type("Y") }, true},
		{"escape", func(h *testutil.PopupHarness) { h.SendEscape() }, false},
		{"n", func(h *testutil.PopupHarness) { h.Type("n") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			tt.send(h)
			r := answer(t, h)
			assert.Equal(t, tt.want, r.Confirmed)
			assert.Equal(t, unloadRequest{}, r.Context)
		})
	}
}

func TestConfirm_IgnoresOtherKeys(t *testing.T) {
	h := newHarness()
	h.Type("x")
	assert.Nil(t, h.SendMsg(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Nil(t, h.LastCommand())
}

func TestConfirm_AnswersOnce(t *testing.T) {
	h := newHarness()
	require.NotNil(t, h.SendEnter())
	assert.Nil(t, h.SendEscape())
	assert.True(t, answer(t, h).Confirmed)
}

func TestConfirm_View(t *testing.T) {
	h := newHarness()
	view := testutil.StripANSI(h.View())
	assert.Contains(t, view, "Stop replay?")
	assert.Contains(t, view, "dis.pcap is still sending packets.")
	assert.Contains(t, view, "Esc/n: cancel")

	m := New("t", "m", nil)
	assert.Empty(t, m.View(), "nothing renders before SetSize")
}
