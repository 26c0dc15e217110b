// Package playerbar renders the playback progress panel: transport state,
// packet counter and elapsed time against the recording length.
package playerbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/ui/styles"
)

// Height is the total height of the bar: border, content, border.
const Height = 3

const (
	playSymbol     = "▶"
	pauseSymbol    = "⏸"
	stopSymbol     = "■"
	finishedSymbol = "✓"
)

// State holds everything needed to render the player bar.
type State struct {
	Player   model.PlayerState
	Position model.PlayerPosition
}

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border)
}

func progressFilled() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func progressEmpty() lipgloss.Style {
	return styles.T().S().Subtle
}

// Symbol returns the glyph shown for a player state.
func Symbol(s model.PlayerState) string {
	switch s { //nolint:exhaustive // the rest have no transport glyph
	case model.Playing:
		return playSymbol
	case model.Paused:
		return pauseSymbol
	case model.Finished:
		return finishedSymbol
	}
	return stopSymbol
}

// Counter formats "sent / total" packets with thousands separators.
func Counter(p model.PlayerPosition) string {
	return fmt.Sprintf("%s / %s",
		humanize.Comma(int64(p.Position)), humanize.Comma(int64(p.MaxPosition)))
}

// Render returns the player bar for the given width. It is empty while no
// recording is loaded.
func Render(s State, width int) string {
	if !s.Player.IsActive() {
		return ""
	}

	innerWidth := max(width-6, 0) // border + padding

	status := Symbol(s.Player) + " " + s.Player.Label()
	counter := styles.T().S().Muted.Render(Counter(s.Position))
	prefix := status + "   " + counter + "   "

	bar := RenderProgressBar(s.Position.TimePositionSecs, s.Position.TimeTotalSecs,
		innerWidth-lipgloss.Width(prefix))

	return barStyle().Padding(0, 2).Width(max(width-2, 0)).Render(prefix + bar)
}
