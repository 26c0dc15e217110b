package bridge

import "github.com/llehouerou/packetplay/internal/model"

// Commands understood by the bridge.
const (
	CmdUpdateSettings = "update_settings"
	CmdOpen           = "open"
	CmdPlay           = "play"
	CmdPause          = "pause"
	CmdRewind         = "rewind"
	CmdStatus         = "status"
	CmdSettings       = "settings"
	CmdSubscribe      = "subscribe"
)

// Event names on a subscribed connection.
const (
	EventState     = "state"
	EventPosition  = "position"
	EventRecording = "recording"
	EventSettings  = "settings"
	EventError     = "error"
)

// Request is one line sent by a client.
type Request struct {
	Cmd         string `json:"cmd"`
	Destination string `json:"destination,omitempty"`
	SourcePort  *int   `json:"source_port,omitempty"`
	TTL         *int   `json:"ttl,omitempty"`
	FilePath    string `json:"file_path,omitempty"`
}

// Response answers one Request.
type Response struct {
	OK        bool                  `json:"ok"`
	Error     string                `json:"error,omitempty"`
	State     model.PlayerState     `json:"state,omitempty"`
	Position  *model.PlayerPosition `json:"position,omitempty"`
	Recording *model.RecordingInfo  `json:"recording,omitempty"`
	Settings  *model.Settings       `json:"settings,omitempty"`
}

// Event is one line pushed to a subscribed client.
type Event struct {
	Event     string                `json:"event"`
	Previous  model.PlayerState     `json:"previous,omitempty"`
	State     model.PlayerState     `json:"state,omitempty"`
	Position  *model.PlayerPosition `json:"position,omitempty"`
	Recording *model.RecordingInfo  `json:"recording,omitempty"`
	Settings  *model.Settings       `json:"settings,omitempty"`
	Error     string                `json:"error,omitempty"`
}
