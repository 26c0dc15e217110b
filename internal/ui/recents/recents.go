// Package recents renders the list of recently opened captures.
package recents

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/packetplay/internal/keymap"
	"github.com/llehouerou/packetplay/internal/state"
	"github.com/llehouerou/packetplay/internal/ui"
	"github.com/llehouerou/packetplay/internal/ui/cursor"
	"github.com/llehouerou/packetplay/internal/ui/render"
	"github.com/llehouerou/packetplay/internal/ui/styles"
)

// Model is the recent recordings panel.
type Model struct {
	ui.Base
	items  []state.RecentRecording
	cursor cursor.Cursor
	now    func() time.Time
}

// New creates an empty panel.
func New() Model {
	return Model{cursor: cursor.New(ui.ScrollMargin), now: time.Now}
}

// SetItems replaces the list, keeping the cursor in bounds.
func (m *Model) SetItems(items []state.RecentRecording) {
	m.items = items
	m.cursor.ClampToBounds(len(items), m.listHeight())
}

// Len returns the number of entries.
func (m Model) Len() int {
	return len(m.items)
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (state.RecentRecording, bool) {
	if len(m.items) == 0 {
		return state.RecentRecording{}, false
	}
	return m.items[m.cursor.Pos()], true
}

// HandleAction moves the cursor for navigation actions and reports whether
// the action was consumed.
func (m *Model) HandleAction(a keymap.Action) bool {
	return m.cursor.HandleAction(a, len(m.items), m.listHeight())
}

func (m Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}

// View renders the panel with a border, highlighted when focused.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()
	st := t.S()
	inner := max(m.Width()-4, 0) // border + padding

	lines := []string{
		st.Title.Render("Recent"),
		st.Subtle.Render(strings.Repeat("─", inner)),
	}

	if len(m.items) == 0 {
		lines = append(lines, st.Muted.Render(render.Truncate("No recordings opened yet. Press o to open one.", inner)))
	}

	start, end := m.cursor.VisibleRange(len(m.items), m.listHeight())
	for i := start; i < end; i++ {
		row := m.row(m.items[i], inner)
		if m.IsFocused() && i == m.cursor.Pos() {
			row = st.Cursor.Width(inner).Render(row)
		}
		lines = append(lines, row)
	}

	// Pad so the border keeps its size.
	for len(lines) < m.Height()-ui.BorderHeight {
		lines = append(lines, "")
	}

	return t.PanelStyle(m.IsFocused()).
		Width(max(m.Width()-2, 0)).
		Render(strings.Join(lines, "\n"))
}

// row formats one entry: name on the left, details on the right.
func (m Model) row(r state.RecentRecording, width int) string {
	details := Details(r, m.now())
	name := render.Sanitize(filepath.Base(r.Path))

	nameWidth := width - lipgloss.Width(details) - 2
	if nameWidth < 8 {
		return render.Truncate(name, width)
	}
	name = render.Truncate(name, nameWidth)
	gap := width - lipgloss.Width(name) - lipgloss.Width(details)
	return name + strings.Repeat(" ", gap) + styles.T().S().Muted.Render(details)
}

// Details summarizes an entry, e.g. "1,204 pkts · 00:02:10 · 1.2 MB · 3 hours ago".
func Details(r state.RecentRecording, now time.Time) string {
	parts := []string{
		humanize.Comma(int64(r.Packets)) + " pkts",
		render.FormatDuration(r.Duration),
	}
	if r.Size > 0 {
		parts = append(parts, humanize.Bytes(uint64(r.Size)))
	}
	if !r.OpenedAt.IsZero() {
		parts = append(parts, humanize.RelTime(r.OpenedAt, now, "ago", "from now"))
	}
	return strings.Join(parts, " · ")
}
