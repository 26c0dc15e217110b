// Package layout provides pure functions for UI dimension calculations.
package layout

// NarrowThreshold is the terminal width below which the recording panel and
// the recents list are stacked instead of placed side by side.
const NarrowThreshold = 100

// MinRecentsHeight keeps at least a few recent entries visible.
const MinRecentsHeight = 5

// ContentOpts lists the heights of the fixed rows around the recents list.
type ContentOpts struct {
	HeaderHeight    int
	InfoHeight      int // recording panel, counted only in narrow mode
	ControlsHeight  int
	PlayerBarHeight int
	StatusHeight    int
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// ContentHeight is the window height left for the recording panel and the
// recents list once the fixed rows are placed.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	h := windowHeight - opts.HeaderHeight - opts.ControlsHeight - opts.PlayerBarHeight - opts.StatusHeight
	return max(h, 0)
}

// RecentsHeight returns the height of the recents panel. In narrow mode the
// recording panel sits above it and takes its share first.
func RecentsHeight(windowHeight int, narrow bool, opts ContentOpts) int {
	h := ContentHeight(windowHeight, opts)
	if narrow {
		h -= opts.InfoHeight
	}
	return max(h, MinRecentsHeight)
}

// InfoWidth returns the width of the recording panel.
func InfoWidth(windowWidth int, narrow bool) int {
	if narrow {
		return windowWidth
	}
	return windowWidth * 3 / 5
}

// RecentsWidth returns the width of the recents panel.
func RecentsWidth(windowWidth int, narrow bool) int {
	if narrow {
		return windowWidth
	}
	return windowWidth - InfoWidth(windowWidth, narrow)
}
