package popupctl

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/ui/confirm"
	"github.com/llehouerou/packetplay/internal/ui/helpbindings"
	"github.com/llehouerou/packetplay/internal/ui/popup"
	"github.com/llehouerou/packetplay/internal/ui/settingsform"
	"github.com/llehouerou/packetplay/internal/ui/textinput"
)

// Manager holds the single popup that can be open at a time. Opening a
// popup replaces the previous one.
type Manager struct {
	active Type
	popup  popup.Popup
	width  int
	height int
}

// New creates a Manager with no popup open.
func New() *Manager {
	return &Manager{}
}

// SetSize updates the screen dimensions and resizes the open popup.
func (p *Manager) SetSize(width, height int) {
	p.width = width
	p.height = height
	if p.popup != nil {
		p.popup.SetSize(popup.ContentSize(width, height))
	}
}

// Active returns the open popup type, None when nothing is shown.
func (p *Manager) Active() Type {
	return p.active
}

// Show opens pop as type t.
func (p *Manager) Show(t Type, pop popup.Popup) tea.Cmd {
	pop.SetSize(popup.ContentSize(p.width, p.height))
	p.active = t
	p.popup = pop
	return pop.Init()
}

// Hide closes the open popup.
func (p *Manager) Hide() {
	p.active = None
	p.popup = nil
}

// Update forwards msg to the open popup.
func (p *Manager) Update(msg tea.Msg) tea.Cmd {
	if p.popup == nil {
		return nil
	}
	var cmd tea.Cmd
	p.popup, cmd = p.popup.Update(msg)
	return cmd
}

// Render draws the open popup centered over base.
func (p *Manager) Render(base string) string {
	if p.popup == nil {
		return base
	}
	box := popup.Box(p.popup.View(), p.width-4)
	return popup.Place(base, box, p.width, p.height)
}

// ShowHelp opens the key binding reference.
func (p *Manager) ShowHelp() tea.Cmd {
	h := helpbindings.New()
	return p.Show(Help, &h)
}

// ShowOpenFile opens the path prompt prefilled with initial.
func (p *Manager) ShowOpenFile(initial string) tea.Cmd {
	ti := textinput.New()
	w, h := popup.ContentSize(p.width, p.height)
	ti.Start("Open capture (.pcap, .pcapng)", initial, nil, w, h)
	return p.Show(OpenFile, &ti)
}

// ShowSettings opens the settings form with the current values.
func (p *Manager) ShowSettings(s model.Settings) tea.Cmd {
	f := settingsform.New(s)
	return p.Show(Settings, &f)
}

// ShowConfirm asks a yes/no question. context comes back in the
// confirm.Result.
func (p *Manager) ShowConfirm(title, message string, context any) tea.Cmd {
	c := confirm.New(title, message, context)
	return p.Show(Confirm, &c)
}

// SettingsForm returns the open settings form, or nil.
func (p *Manager) SettingsForm() *settingsform.Model {
	if p.active != Settings {
		return nil
	}
	f, _ := p.popup.(*settingsform.Model)
	return f
}
