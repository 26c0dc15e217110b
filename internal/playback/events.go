package playback

import "github.com/llehouerou/packetplay/internal/model"

// StateChange is emitted when the player state changes.
//
// Emitted by:
//   - Open: Previous is the state of the replaced player (or Uninitialised)
//   - Play/Pause/Rewind: once the engine applied the command
//   - the engine itself when the last packet is sent (Finished) or a send
//     fails (Paused)
//   - Unload/Close: Current is Uninitialised
type StateChange struct {
	Previous model.PlayerState
	Current  model.PlayerState
}

// RecordingChange is emitted when a recording is opened or unloaded.
type RecordingChange struct {
	Info    model.RecordingInfo
	Packets int
	Skipped int
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g. "send"
	Path      string // recording path if applicable
	Err       error
}
