package player

import "github.com/llehouerou/packetplay/internal/model"

// StateChange is emitted on every engine transition.
type StateChange struct {
	Previous model.PlayerState
	Current  model.PlayerState
}

// ErrorEvent is emitted when the engine hits a recoverable failure.
type ErrorEvent struct {
	Op  string // e.g. "send"
	Err error
}
