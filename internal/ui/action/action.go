// Package action carries results from popups back to the app model.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is a result reported by a popup. ActionType names it for logs.
type Action interface {
	ActionType() string
}

// Msg is the message every popup emits. Source is the popup package name.
type Msg struct {
	Source string
	Action Action
}

// Emit returns a command delivering a from source.
func Emit(source string, a Action) tea.Cmd {
	return func() tea.Msg { return Msg{Source: source, Action: a} }
}
