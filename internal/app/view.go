package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/packetplay/internal/keymap"
	"github.com/llehouerou/packetplay/internal/ui"
	"github.com/llehouerou/packetplay/internal/ui/controls"
	"github.com/llehouerou/packetplay/internal/ui/headerbar"
	"github.com/llehouerou/packetplay/internal/ui/layout"
	"github.com/llehouerou/packetplay/internal/ui/playerbar"
	"github.com/llehouerou/packetplay/internal/ui/render"
	"github.com/llehouerou/packetplay/internal/ui/styles"
)

const (
	// infoHeight is the recording panel: title, rule, seven fields, border.
	infoHeight     = 11
	controlsHeight = 1
	// statusHeight covers the settings, status and key hint lines.
	statusHeight = 3
)

type screenLayout struct {
	narrow        bool
	infoWidth     int
	infoHeight    int
	recentsWidth  int
	recentsHeight int
}

func (m Model) layout() screenLayout {
	opts := layout.ContentOpts{
		HeaderHeight:   headerbar.Height,
		InfoHeight:     infoHeight,
		ControlsHeight: controlsHeight,
		StatusHeight:   statusHeight,
	}
	if m.playerState.IsActive() {
		opts.PlayerBarHeight = playerbar.Height
	}

	narrow := layout.IsNarrowMode(m.width)
	l := screenLayout{
		narrow:        narrow,
		infoWidth:     layout.InfoWidth(m.width, narrow),
		recentsWidth:  layout.RecentsWidth(m.width, narrow),
		recentsHeight: layout.RecentsHeight(m.height, narrow, opts),
	}
	l.infoHeight = infoHeight
	if !narrow {
		l.infoHeight = l.recentsHeight
	}
	return l
}

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	l := m.layout()
	// The recents panel may have been sized for another player state.
	m.recents.SetSize(l.recentsWidth, l.recentsHeight)

	info := m.renderInfo(l.infoWidth, l.infoHeight)
	var content string
	if l.narrow {
		content = info + "\n" + m.recents.View()
	} else {
		content = lipgloss.JoinHorizontal(lipgloss.Top, info, m.recents.View())
	}

	parts := []string{
		headerbar.Render(m.settings, m.width),
		content,
		" " + controls.Render(m.playerState, m.selected, m.focus == FocusControls),
	}
	if bar := playerbar.Render(playerbar.State{Player: m.playerState, Position: m.position}, m.width); bar != "" {
		parts = append(parts, bar)
	}
	parts = append(parts, m.renderSettings(), m.renderStatus(), m.renderHint())

	view := strings.Join(parts, "\n")
	view = m.popups.Render(view)
	return enforceHeight(view, m.height)
}

// renderInfo draws the recording panel.
func (m Model) renderInfo(width, height int) string {
	t := styles.T()
	st := t.S()
	inner := max(width-4, 0)

	lines := []string{
		st.Title.Render("Recording") + "  " + st.Muted.Render(m.playerState.Label()),
		st.Subtle.Render(strings.Repeat("─", inner)),
	}

	if !m.recording.IsLoaded {
		hint := "Press " + keyFor(m.keys, keymap.ActionOpen) + " to open a capture file."
		lines = append(lines, st.Muted.Render(hint))
	} else {
		packets := humanize.Comma(int64(m.details.Packets))
		if m.details.Skipped > 0 {
			packets += st.Warning.Render(fmt.Sprintf("  (%s non-UDP skipped)", humanize.Comma(int64(m.details.Skipped))))
		}
		size := "-"
		if m.details.Size > 0 {
			size = humanize.Bytes(uint64(m.details.Size))
		}
		fields := [][2]string{
			{"Name", render.Truncate(m.recording.ShortFileName, inner-labelWidth)},
			{"Path", render.TruncateLeft(m.recording.FilePath, inner-labelWidth)},
			{"Packets", packets},
			{"Duration", render.FormatSecs(m.position.TimeTotalSecs)},
			{"Elapsed", render.FormatSecs(m.position.TimePositionSecs)},
			{"Size", size},
			{"Format", m.details.Format + " · " + m.details.Link},
		}
		for _, f := range fields {
			lines = append(lines, st.Label.Width(labelWidth).Render(f[0])+f[1])
		}
	}

	for len(lines) < height-ui.BorderHeight {
		lines = append(lines, "")
	}
	if len(lines) > height-ui.BorderHeight {
		lines = lines[:max(height-ui.BorderHeight, 0)]
	}

	return t.PanelStyle(false).
		Width(max(width-2, 0)).
		Render(strings.Join(lines, "\n"))
}

const labelWidth = 11

func (m Model) renderSettings() string {
	st := styles.T().S()
	s := m.settings
	line := fmt.Sprintf(" Destination %s · source port %s · TTL %d",
		s.Destination, sourcePort(s.SourcePort), s.TTL)
	return st.Muted.Render(render.Truncate(line, m.width))
}

func sourcePort(p int) string {
	if p == 0 {
		return "any"
	}
	return strconv.Itoa(p)
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	st := styles.T().S()
	style := st.Success
	if m.statusErr {
		style = st.Error
	}
	return style.Render(" " + render.Truncate(m.status, max(m.width-1, 0)))
}

func (m Model) renderHint() string {
	pairs := []keymap.HintPair{
		{Action: keymap.ActionPlayPause, Label: "play/pause"},
		{Action: keymap.ActionRewind, Label: "rewind"},
		{Action: keymap.ActionOpen, Label: "open"},
		{Action: keymap.ActionEditSettings, Label: "settings"},
		{Action: keymap.ActionSwitchFocus, Label: "recents"},
		{Action: keymap.ActionHelp, Label: "help"},
		{Action: keymap.ActionQuit, Label: "quit"},
	}
	if m.focus == FocusRecents {
		pairs[4].Label = "controls"
	}
	hint := m.keys.Hint(pairs...)
	return styles.T().S().Subtle.Render(" " + render.Truncate(hint, max(m.width-1, 0)))
}

func keyFor(r *keymap.Resolver, a keymap.Action) string {
	keys := r.KeysFor(a)
	if len(keys) == 0 {
		return "?"
	}
	return keys[0]
}

// enforceHeight pads or cuts view to exactly targetHeight lines so the
// terminal never scrolls.
func enforceHeight(view string, targetHeight int) string {
	lines := strings.Split(view, "\n")
	switch {
	case len(lines) < targetHeight:
		for len(lines) < targetHeight {
			lines = append(lines, "")
		}
	case len(lines) > targetHeight:
		lines = lines[:targetHeight]
	}
	return strings.Join(lines, "\n")
}
