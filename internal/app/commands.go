package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/packetplay/internal/playback"
	"github.com/llehouerou/packetplay/internal/state"
)

// WatchServiceEvents returns a command that waits for the next playback
// service event and converts it to a tea.Msg. The handler of each message
// issues the command again.
func (m Model) WatchServiceEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg{Previous: e.Previous, Current: e.Current}
		case p := <-sub.PositionChanged:
			return ServicePositionChangedMsg{Position: p}
		case r := <-sub.RecordingChanged:
			return ServiceRecordingChangedMsg{Change: r}
		case s := <-sub.SettingsChanged:
			return ServiceSettingsChangedMsg{Settings: s}
		case e := <-sub.Error:
			return ServiceErrorMsg{Event: e}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// openCmd opens path off the update loop; parsing a large capture takes a
// while.
func openCmd(svc playback.Service, path string) tea.Cmd {
	return func() tea.Msg {
		err := svc.Open(context.Background(), path)
		return OpenResultMsg{Path: path, Err: err}
	}
}

func loadRecentsCmd(st state.Interface) tea.Cmd {
	return func() tea.Msg {
		items, err := st.ListRecent(state.MaxRecent)
		return RecentsLoadedMsg{Items: items, Err: err}
	}
}
