package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/packetplay/internal/errmsg"
	"github.com/llehouerou/packetplay/internal/keymap"
	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/ui/controls"
)

// contexts returns the keymap contexts active for the current focus.
func (m Model) contexts() []string {
	focused := "controls"
	if m.focus == FocusRecents {
		focused = "recents"
	}
	return []string{"global", "playback", focused}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.keys.ResolveIn(msg.String(), m.contexts()...)
	switch a {
	case keymap.ActionQuit:
		return m.quit()

	case keymap.ActionSwitchFocus:
		if m.focus == FocusControls {
			m.focus = FocusRecents
		} else {
			m.focus = FocusControls
		}
		m.recents.SetFocused(m.focus == FocusRecents)
		return m, nil

	case keymap.ActionHelp:
		return m, m.popups.ShowHelp()

	case keymap.ActionOpen:
		return m, m.popups.ShowOpenFile(m.promptPath())

	case keymap.ActionEditSettings:
		return m, m.popups.ShowSettings(m.svc.Settings())

	case keymap.ActionUnload:
		if m.svc.State() == model.Playing {
			return m, m.popups.ShowConfirm("Stop replay?",
				m.recording.ShortFileName+" is still sending packets. Unload it?",
				unloadRequest{})
		}
		return m.unload()

	case keymap.ActionPlayPause:
		op := errmsg.OpPlaybackPlay
		if m.svc.State().CanPause() {
			op = errmsg.OpPlaybackPause
		}
		m.run(op, m.svc.Toggle)
		return m, nil

	case keymap.ActionRewind:
		m.run(errmsg.OpPlaybackRewind, m.svc.Rewind)
		return m, nil
	}

	if m.focus == FocusRecents {
		return m.handleRecentsKey(a)
	}
	return m.handleControlsKey(a)
}

func (m Model) handleControlsKey(a keymap.Action) (tea.Model, tea.Cmd) {
	switch a {
	case keymap.ActionMoveLeft:
		m.selected = m.selected.Prev()
	case keymap.ActionMoveRight:
		m.selected = m.selected.Next()
	case keymap.ActionSelect:
		return m.activate(m.selected)
	}
	return m, nil
}

// activate presses a transport button. Disabled buttons do nothing.
func (m Model) activate(b controls.Button) (tea.Model, tea.Cmd) {
	if !b.Enabled(m.svc.State()) {
		return m, nil
	}
	switch b {
	case controls.Play:
		m.run(errmsg.OpPlaybackPlay, m.svc.Play)
	case controls.Pause:
		m.run(errmsg.OpPlaybackPause, m.svc.Pause)
	case controls.Rewind:
		m.run(errmsg.OpPlaybackRewind, m.svc.Rewind)
	case controls.Quit:
		return m.quit()
	}
	return m, nil
}

func (m Model) handleRecentsKey(a keymap.Action) (tea.Model, tea.Cmd) {
	switch a {
	case keymap.ActionSelect:
		if r, ok := m.recents.Selected(); ok {
			if m.svc.State() == model.Playing {
				return m, m.popups.ShowConfirm("Replace recording?",
					m.recording.ShortFileName+" is still sending packets. Open "+filepath.Base(r.Path)+" instead?",
					openRequest{path: r.Path})
			}
			return m.open(r.Path)
		}
	case keymap.ActionDelete:
		if r, ok := m.recents.Selected(); ok {
			if err := m.state.RemoveRecent(r.Path); err != nil {
				m.setError(errmsg.Format(errmsg.OpRecentSave, err))
				return m, nil
			}
			return m, loadRecentsCmd(m.state)
		}
	default:
		m.recents.HandleAction(a)
	}
	return m, nil
}

// Requests parked behind a confirmation while a replay is running.
type (
	unloadRequest struct{}
	openRequest   struct{ path string }
)

func (m Model) unload() (tea.Model, tea.Cmd) {
	if err := m.svc.Unload(); err != nil {
		m.setError(errmsg.Format(errmsg.OpRecordingUnload, err))
	}
	return m, nil
}

// run executes a playback command and reports a refusal in the status line.
func (m *Model) run(op errmsg.Op, cmd func() error) {
	if err := cmd(); err != nil {
		m.setError(errmsg.Format(op, err))
		return
	}
	m.setError("")
}
