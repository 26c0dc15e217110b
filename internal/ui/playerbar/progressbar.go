package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/packetplay/internal/ui"
	"github.com/llehouerou/packetplay/internal/ui/render"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a block-style progress bar for elapsed/total
// seconds. Format: 00:01:23  ▓▓▓▓▓░░░░░  00:04:56
func RenderProgressBar(elapsed, total float64, width int) string {
	posStr := render.FormatSecs(elapsed)
	durStr := render.FormatSecs(total)

	fixedWidth := lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < ui.MinProgressBarWidth {
		// Too narrow for bar, just show times
		return posStr + " / " + durStr
	}

	var ratio float64
	if total > 0 {
		ratio = min(max(elapsed/total, 0), 1)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)

	bar := progressFilled().Render(strings.Repeat(filledBlock, filled)) +
		progressEmpty().Render(strings.Repeat(emptyBlock, barWidth-filled))

	return posStr + "  " + bar + "  " + durStr
}
