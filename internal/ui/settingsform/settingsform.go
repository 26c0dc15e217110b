// Package settingsform provides the popup that edits the replay destination,
// source port and TTL.
package settingsform

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/ui"
	"github.com/llehouerou/packetplay/internal/ui/action"
	"github.com/llehouerou/packetplay/internal/ui/popup"
	"github.com/llehouerou/packetplay/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

const (
	fieldDestination = iota
	fieldSourcePort
	fieldTTL
	fieldCount
)

var fieldLabels = [fieldCount]string{"Destination", "Source port", "TTL"}

// Submitted carries the edited settings. They are not validated beyond
// being well-formed numbers.
type Submitted struct {
	Settings model.Settings
}

func (Submitted) ActionType() string { return "settingsform.submitted" }

// Canceled signals the form was closed without saving.
type Canceled struct{}

func (Canceled) ActionType() string { return "settingsform.canceled" }

// ActionMsg wraps a as if the form had emitted it.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: source, Action: a}
}

const source = "settingsform"


// Model is the settings form popup.
type Model struct {
	ui.Base
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

// New creates a form prefilled with s.
func New(s model.Settings) Model {
	var m Model
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		m.inputs[i] = ti
	}
	m.inputs[fieldDestination].Placeholder = "255.255.255.255:3000"
	m.inputs[fieldDestination].CharLimit = 64
	m.inputs[fieldSourcePort].CharLimit = 5
	m.inputs[fieldTTL].CharLimit = 3

	m.inputs[fieldDestination].SetValue(s.Destination)
	m.inputs[fieldSourcePort].SetValue(strconv.Itoa(s.SourcePort))
	m.inputs[fieldTTL].SetValue(strconv.Itoa(s.TTL))
	m.inputs[fieldDestination].Focus()
	return m
}

// SetError shows err below the fields, e.g. a rejected update.
func (m *Model) SetError(err error) {
	if err == nil {
		m.err = ""
		return
	}
	m.err = err.Error()
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	for i := range m.inputs {
		m.inputs[i].Width = max(width-labelWidth-1, 8)
	}
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, action.Emit(source, Canceled{})
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if m.focus < fieldCount-1 {
				return m, m.setFocus(m.focus + 1)
			}
			return m, m.submit()
		case "ctrl+s":
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

func (m *Model) submit() tea.Cmd {
	s, err := m.settings()
	if err != nil {
		m.err = err.Error()
		return nil
	}
	m.err = ""
	return action.Emit(source, Submitted{Settings: s})
}

func (m *Model) settings() (model.Settings, error) {
	port, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldSourcePort].Value()))
	if err != nil {
		return model.Settings{}, errors.New("source port must be a number")
	}
	ttl, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldTTL].Value()))
	if err != nil {
		return model.Settings{}, errors.New("ttl must be a number")
	}
	return model.Settings{
		Destination: strings.TrimSpace(m.inputs[fieldDestination].Value()),
		SourcePort:  port,
		TTL:         ttl,
	}, nil
}

const labelWidth = 13

// View implements popup.Popup.
func (m *Model) View() string {
	t := styles.T()
	st := t.S()
	label := st.Muted.Width(labelWidth)
	focused := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(labelWidth)

	var b strings.Builder
	b.WriteString(st.Title.Foreground(t.Primary).Render("Settings"))
	b.WriteString("\n\n")
	for i := range m.inputs {
		l := label
		if i == m.focus {
			l = focused
		}
		b.WriteString(l.Render(fieldLabels[i]))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(st.Error.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(st.Subtle.Render("Tab: next field, Enter: save, Esc: cancel"))
	b.WriteString("\n")
	b.WriteString(st.Subtle.Render("Applies to the next opened recording"))
	return b.String()
}
