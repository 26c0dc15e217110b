// Package ui holds the sizing helpers shared by the panels of the player
// screen.
package ui

// Panel geometry, in terminal rows.
const (
	// BorderHeight is taken by the top and bottom border of a panel.
	BorderHeight = 2
	// PanelOverhead is the border plus a title row and its rule.
	PanelOverhead = BorderHeight + 2
	// ScrollMargin is how many rows stay visible past the cursor when a
	// list scrolls.
	ScrollMargin = 2
	// MinProgressBarWidth is the narrowest progress bar worth drawing.
	MinProgressBarWidth = 5
)

// Base is embedded by panels that track their own size and focus.
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) { b.focused = focused }

func (b Base) IsFocused() bool { return b.focused }

// SetSize stores the outer size of the panel, borders included.
func (b *Base) SetSize(width, height int) {
	b.width, b.height = width, height
}

func (b Base) Width() int  { return b.width }
func (b Base) Height() int { return b.height }

// ListHeight is the number of rows left for items once overhead rows are
// removed. It never goes negative.
func (b Base) ListHeight(overhead int) int {
	return max(b.height-overhead, 0)
}
