// Package confirm provides a yes/no popup, used before an action would cut
// a running replay short.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/packetplay/internal/ui"
	"github.com/llehouerou/packetplay/internal/ui/action"
	"github.com/llehouerou/packetplay/internal/ui/popup"
	"github.com/llehouerou/packetplay/internal/ui/render"
	"github.com/llehouerou/packetplay/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

const source = "confirm"

// Result is emitted once the user answers. Context is the value given to
// Show.
type Result struct {
	Confirmed bool
	Context   any
}

func (Result) ActionType() string { return "confirm.result" }

// ActionMsg wraps r as if the popup had emitted it.
func ActionMsg(r action.Action) action.Msg {
	return action.Msg{Source: source, Action: r}
}

// Model is the yes/no popup.
type Model struct {
	ui.Base
	title   string
	message string
	context any
	// answered stops a second keypress from emitting another Result.
	answered bool
}

// New returns a popup asking title, with message as the body.
func New(title, message string, context any) Model {
	return Model{title: title, message: message, context: context}
}

func (m *Model) Init() tea.Cmd { return nil }

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.answered {
		return m, nil
	}
	switch key.String() {
	case "enter", "y", "Y":
		m.answered = true
		return m, action.Emit(source, Result{Confirmed: true, Context: m.context})
	case "esc", "n", "N":
		m.answered = true
		return m, action.Emit(source, Result{Context: m.context})
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render(m.title)
	body := lipgloss.NewStyle().Width(m.Width()).Render(render.Sanitize(m.message))
	hint := t.S().Subtle.Render("Enter/y: confirm, Esc/n: cancel")
	return title + "\n\n" + body + "\n\n" + hint
}
