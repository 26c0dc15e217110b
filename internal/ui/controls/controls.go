// Package controls renders the transport button row and decides which
// buttons are actionable for a given player state.
package controls

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/ui/styles"
)

// AttrDisabled marks a control that cannot be activated.
const AttrDisabled = "disabled"

// DisableBtn returns the presentation attribute for a control.
func DisableBtn(disabled bool) string {
	if disabled {
		return AttrDisabled
	}
	return ""
}

// Button identifies one transport control.
type Button int

const (
	Play Button = iota
	Pause
	Rewind
	Quit
)

// Buttons lists the controls in display order.
var Buttons = []Button{Play, Pause, Rewind, Quit}

// String returns the button caption.
func (b Button) String() string {
	switch b {
	case Play:
		return "Play"
	case Pause:
		return "Pause"
	case Rewind:
		return "Rewind"
	case Quit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Enabled reports whether b can be activated in state s.
func (b Button) Enabled(s model.PlayerState) bool {
	switch b {
	case Play:
		return s.CanPlay()
	case Pause:
		return s.CanPause()
	case Rewind:
		return s.CanRewind()
	case Quit:
		return true
	}
	return false
}

// Attr returns the presentation attribute of b in state s.
func (b Button) Attr(s model.PlayerState) string {
	return DisableBtn(!b.Enabled(s))
}

// Next returns the button to the right, stopping at the last one.
func (b Button) Next() Button {
	return min(b+1, Quit)
}

// Prev returns the button to the left, stopping at the first one.
func (b Button) Prev() Button {
	return max(b-1, Play)
}

// Render draws the button row. The selected button is highlighted only
// while the row has focus.
func Render(s model.PlayerState, selected Button, focused bool) string {
	st := styles.T().S()
	attrStyle := map[string]lipgloss.Style{
		"":           st.Base,
		AttrDisabled: st.Disabled,
	}

	parts := make([]string, 0, len(Buttons))
	for _, b := range Buttons {
		style := attrStyle[b.Attr(s)]
		label := "[ " + b.String() + " ]"
		if focused && b == selected {
			style = style.Inherit(st.Cursor).Bold(true)
			if b.Enabled(s) {
				style = style.Foreground(styles.T().Primary)
			}
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, " ")
}
