package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/packetplay/internal/ui/styles"
)

// Frame is the space a bordered popup adds around its content.
const (
	FrameWidth  = 2 + 4 // border + horizontal padding
	FrameHeight = 2 + 2 // border + vertical padding
)

// Box wraps content in the popup border, no wider than maxWidth.
func Box(content string, maxWidth int) string {
	w := min(lipgloss.Width(content)+FrameWidth, max(maxWidth, FrameWidth))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Padding(1, 2).
		Width(w - 2).
		Render(content)
}

// ContentSize returns the room left for popup content on a screen.
func ContentSize(screenW, screenH int) (width, height int) {
	return max(screenW-4-FrameWidth, 0), max(screenH-2-FrameHeight, 0)
}

// Place draws box centered over base. Lines of base outside the box are
// left untouched; base is padded when it is shorter than the screen.
func Place(base, box string, screenW, screenH int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < screenH {
		baseLines = append(baseLines, "")
	}

	boxLines := strings.Split(box, "\n")
	boxW := 0
	for _, l := range boxLines {
		boxW = max(boxW, ansi.StringWidth(l))
	}
	top := max((screenH-len(boxLines))/2, 0)
	left := max((screenW-boxW)/2, 0)

	for i, l := range boxLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		baseLines[row] = splice(baseLines[row], l, left, boxW, screenW)
	}
	return strings.Join(baseLines, "\n")
}

// splice replaces columns [left, left+width) of line with over.
func splice(line, over string, left, width, screenW int) string {
	if w := ansi.StringWidth(line); w < screenW {
		line += strings.Repeat(" ", screenW-w)
	}
	if w := ansi.StringWidth(over); w < width {
		over += strings.Repeat(" ", width-w)
	}

	prefix := ansi.Truncate(line, left, "")
	if pw := ansi.StringWidth(prefix); pw < left {
		// a wide rune straddled the edge
		prefix += strings.Repeat(" ", left-pw)
	}
	suffix := ansi.TruncateLeft(line, left+width, "")
	return prefix + over + suffix
}
