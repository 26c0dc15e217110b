// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Recording operations
	OpRecordingOpen   Op = "open recording"
	OpRecordingUnload Op = "unload recording"
	OpRecentLoad      Op = "load recent recordings"
	OpRecentSave      Op = "save recent recording"

	// Playback operations
	OpPlaybackPlay   Op = "start playback"
	OpPlaybackPause  Op = "pause playback"
	OpPlaybackRewind Op = "rewind playback"
	OpPlaybackSend   Op = "send packet"

	// Settings
	OpSettingsUpdate Op = "update settings"
	OpSettingsLoad   Op = "load settings"

	// Control bridge
	OpBridgeListen Op = "start control bridge"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
