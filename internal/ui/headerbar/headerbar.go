// Package headerbar renders the single-line application header: the title on
// the left and the replay destination on the right.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/ui/render"
	"github.com/llehouerou/packetplay/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Title is the application name shown in the header.
const Title = "Packet Play"

// Render returns the header for the given width. The destination is dropped
// first when the terminal is too narrow for both.
func Render(settings model.Settings, width int) string {
	if width < lipgloss.Width(Title) {
		return ""
	}

	t := styles.T()
	title := styles.ApplyBoldGradient(Title, t.Primary, t.Secondary)

	dest := "→ " + settings.Destination
	gap := width - lipgloss.Width(Title) - lipgloss.Width(dest)
	if settings.Destination == "" || gap < 2 {
		return title
	}

	return title + strings.Repeat(" ", gap) + t.S().Muted.Render(render.Sanitize(dest))
}
