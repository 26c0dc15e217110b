// Package helpbindings provides a scrollable popup listing the key bindings.
package helpbindings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/packetplay/internal/keymap"
	"github.com/llehouerou/packetplay/internal/ui"
	"github.com/llehouerou/packetplay/internal/ui/action"
	"github.com/llehouerou/packetplay/internal/ui/popup"
	"github.com/llehouerou/packetplay/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

const source = "helpbindings"

// Close is emitted when the user dismisses the popup.
type Close struct{}

func (Close) ActionType() string { return "helpbindings.close" }

// ActionMsg wraps a as if the popup had emitted it.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: source, Action: a}
}

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	"global":   "Global",
	"playback": "Playback",
	"controls": "Transport Buttons",
	"recents":  "Recent Recordings",
	"form":     "Prompts",
}

// chrome is the number of lines taken by the title and footer.
const chrome = 4

// Model holds the state for the help bindings popup.
type Model struct {
	ui.Base
	lines        []string
	scrollOffset int
}

// New creates a help popup listing every context in display order.
func New() Model {
	return Model{lines: buildLines(keymap.Contexts)}
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, action.Emit(source, Close{})
	case "j", "down":
		m.scrollOffset = min(m.scrollOffset+1, m.maxScroll())
	case "k", "up":
		m.scrollOffset = max(m.scrollOffset-1, 0)
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	visible := m.lines[m.scrollOffset:min(m.scrollOffset+m.visibleHeight(), len(m.lines))]

	st := styles.T().S()
	var b strings.Builder
	b.WriteString(st.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(visible, "\n"))
	b.WriteString("\n\n")
	b.WriteString(st.Subtle.Render(m.footer()))
	return b.String()
}

func buildLines(contexts []string) []string {
	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	descStyle := t.S().Base
	headerStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)

	keyWidth := 0
	for _, b := range keymap.Bindings {
		keyWidth = max(keyWidth, len(keyLabel(b.Keys)))
	}

	var lines []string
	for _, ctx := range contexts {
		bindings := keymap.ByContext(ctx)
		if len(bindings) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		label := categoryLabels[ctx]
		if label == "" {
			label = ctx
		}
		lines = append(lines, headerStyle.Render(label))
		for _, b := range bindings {
			k := keyLabel(b.Keys)
			lines = append(lines,
				keyStyle.Render(k+strings.Repeat(" ", keyWidth-len(k)))+"  "+descStyle.Render(b.Description))
		}
	}
	return lines
}

func keyLabel(keys []string) string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return strings.Join(out, ", ")
}

func (m Model) footer() string {
	if m.maxScroll() == 0 {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) visibleHeight() int {
	return max(m.Height()-chrome, 3)
}

func (m Model) maxScroll() int {
	return max(len(m.lines)-m.visibleHeight(), 0)
}
