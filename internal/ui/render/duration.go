package render

import (
	"fmt"
	"math"
	"time"
)

// FormatSecs renders elapsed seconds as HH:MM:SS.
//
// Negative input yields the empty string ("not applicable"). Fractions are
// truncated and the hours field grows past two digits instead of wrapping.
func FormatSecs(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return ""
	}
	seconds = math.Abs(seconds) // -0
	hrs := math.Floor(seconds / 3600)
	rem := math.Mod(seconds, 3600)
	mins := math.Floor(rem / 60)
	secs := math.Floor(math.Mod(rem, 60))
	return fmt.Sprintf("%02.0f:%02.0f:%02.0f", hrs, mins, secs)
}

// FormatDuration is FormatSecs for a time.Duration.
func FormatDuration(d time.Duration) string {
	return FormatSecs(d.Seconds())
}
