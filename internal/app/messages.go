// Package app implements the terminal front-end of the packet player.
package app

import (
	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/playback"
	"github.com/llehouerou/packetplay/internal/state"
)

// ServiceStateChangedMsg is sent when the player state changes.
type ServiceStateChangedMsg struct {
	Previous model.PlayerState
	Current  model.PlayerState
}

// ServicePositionChangedMsg is sent after each packet is sent or on rewind.
type ServicePositionChangedMsg struct {
	Position model.PlayerPosition
}

// ServiceRecordingChangedMsg is sent when a recording is opened or unloaded.
type ServiceRecordingChangedMsg struct {
	Change playback.RecordingChange
}

// ServiceSettingsChangedMsg is sent when the network settings change,
// including changes made through the control bridge.
type ServiceSettingsChangedMsg struct {
	Settings model.Settings
}

// ServiceErrorMsg is sent when the player hits an error while playing.
type ServiceErrorMsg struct {
	Event playback.ErrorEvent
}

// ServiceClosedMsg is sent when the playback service shuts down.
type ServiceClosedMsg struct{}

// OpenResultMsg reports the outcome of opening a capture.
type OpenResultMsg struct {
	Path string
	Err  error
}

// RecentsLoadedMsg carries the recent recordings read from state.
type RecentsLoadedMsg struct {
	Items []state.RecentRecording
	Err   error
}
