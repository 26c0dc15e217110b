package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/packetplay/internal/app/popupctl"
	"github.com/llehouerou/packetplay/internal/errmsg"
	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/state"
	"github.com/llehouerou/packetplay/internal/ui/action"
	"github.com/llehouerou/packetplay/internal/ui/confirm"
	"github.com/llehouerou/packetplay/internal/ui/helpbindings"
	"github.com/llehouerou/packetplay/internal/ui/settingsform"
	"github.com/llehouerou/packetplay/internal/ui/textinput"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case ServiceStateChangedMsg:
		m.playerState = msg.Current
		if msg.Current == model.Finished {
			m.setStatus("Playback finished")
		}
		return m, m.WatchServiceEvents()

	case ServicePositionChangedMsg:
		m.position = msg.Position
		return m, m.WatchServiceEvents()

	case ServiceRecordingChangedMsg:
		m.recording = msg.Change.Info
		m.position = m.svc.Position()
		m.refreshDetails()
		return m, m.WatchServiceEvents()

	case ServiceSettingsChangedMsg:
		m.settings = msg.Settings
		return m, m.WatchServiceEvents()

	case ServiceErrorMsg:
		m.setError(errmsg.FormatWith(errmsg.OpPlaybackSend, filepath.Base(msg.Event.Path), msg.Event.Err))
		return m, m.WatchServiceEvents()

	case ServiceClosedMsg:
		m.sub = nil
		return m, tea.Quit

	case OpenResultMsg:
		return m.handleOpenResult(msg)

	case RecentsLoadedMsg:
		if msg.Err != nil {
			m.setError(errmsg.Format(errmsg.OpRecentLoad, msg.Err))
			return m, nil
		}
		m.recents.SetItems(msg.Items)
		return m, nil

	case action.Msg:
		return m.handleAction(msg)

	case tea.KeyMsg:
		if m.popups.Active() != popupctl.None {
			return m, m.popups.Update(msg)
		}
		return m.handleKey(msg)
	}

	// Cursor blinks and other component messages go to the open popup.
	if m.popups.Active() != popupctl.None {
		return m, m.popups.Update(msg)
	}
	return m, nil
}

func (m *Model) resize() {
	m.popups.SetSize(m.width, m.height)
	l := m.layout()
	m.recents.SetSize(l.recentsWidth, l.recentsHeight)
}

// handleAction routes results reported by popups.
func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case textinput.Result:
		m.popups.Hide()
		path := expandHome(a.Text)
		if a.Canceled || path == "" {
			return m, nil
		}
		return m.open(path)

	case settingsform.Submitted:
		s := a.Settings
		if err := m.svc.UpdateSettings(s.Destination, s.SourcePort, s.TTL); err != nil {
			if f := m.popups.SettingsForm(); f != nil {
				f.SetError(err)
			}
			return m, nil
		}
		m.popups.Hide()
		m.settings = m.svc.Settings()
		m.state.SaveSettings(m.settings)
		m.setStatus("Settings saved, they apply to the next opened recording")
		return m, nil

	case confirm.Result:
		m.popups.Hide()
		if !a.Confirmed {
			return m, nil
		}
		switch req := a.Context.(type) {
		case unloadRequest:
			return m.unload()
		case openRequest:
			return m.open(req.path)
		}
		return m, nil

	case settingsform.Canceled, helpbindings.Close:
		m.popups.Hide()
		return m, nil
	}
	return m, nil
}

func (m Model) open(path string) (tea.Model, tea.Cmd) {
	m.lastPath = path
	m.setStatus("Opening " + filepath.Base(path) + "…")
	return m, openCmd(m.svc, path)
}

func (m Model) handleOpenResult(msg OpenResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpRecordingOpen, filepath.Base(msg.Path), msg.Err))
		return m, nil
	}

	m.lastPath = msg.Path
	m.setStatus("Opened " + filepath.Base(msg.Path))
	m.recording = m.svc.Recording()
	m.playerState = m.svc.State()
	m.position = m.svc.Position()
	m.refreshDetails()
	m.selected = 0

	rec := m.svc.Capture()
	if rec == nil {
		return m, nil
	}
	err := m.state.AddRecent(state.RecentRecording{
		Path:     msg.Path,
		Packets:  rec.Len(),
		Skipped:  rec.Skipped,
		Duration: rec.Duration(),
		Size:     rec.Size,
		OpenedAt: time.Now(),
	})
	if err != nil {
		m.log.Warn("recent list not updated", "path", msg.Path, "err", err)
		m.setError(errmsg.Format(errmsg.OpRecentSave, err))
	}
	return m, loadRecentsCmd(m.state)
}

// promptPath is the text the open prompt starts with.
func (m Model) promptPath() string {
	dir := m.defaultFolder
	if m.lastPath != "" {
		dir = filepath.Dir(m.lastPath)
	}
	if dir == "" {
		return ""
	}
	return strings.TrimSuffix(dir, string(filepath.Separator)) + string(filepath.Separator)
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
