package testutil

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/packetplay/internal/ui/action"
	"github.com/llehouerou/packetplay/internal/ui/popup"
)

// PopupHarness feeds key presses to a popup and remembers every command it
// returned, newest last.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness wraps p and records the command from its Init.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	h.record(p.Init())
	return h
}

func (h *PopupHarness) record(cmd tea.Cmd) tea.Cmd {
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

func (h *PopupHarness) View() string { return h.popup.View() }

// SendMsg delivers msg to the popup.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	return h.record(cmd)
}

// Type presses one rune key per character of s.
func (h *PopupHarness) Type(s string) {
	for _, r := range s {
		h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Press sends each non-rune key in order and returns the last command.
func (h *PopupHarness) Press(keys ...tea.KeyType) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.SendMsg(tea.KeyMsg{Type: k})
	}
	return cmd
}

func (h *PopupHarness) SendEnter() tea.Cmd  { return h.Press(tea.KeyEnter) }
func (h *PopupHarness) SendEscape() tea.Cmd { return h.Press(tea.KeyEscape) }

// LastCommand is the newest recorded command, nil before any.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// Emitted runs the newest command and reports the action it produced, if
// it produced one.
func (h *PopupHarness) Emitted() (action.Msg, bool) {
	msg, ok := ExecuteCmd(h.LastCommand()).(action.Msg)
	return msg, ok
}

// ExecuteCmd runs cmd, tolerating nil.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
