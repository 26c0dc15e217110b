// Package playback owns the current recording and its player, and exposes
// the command surface shared by every front-end.
package playback

import (
	"context"
	"errors"

	"github.com/llehouerou/packetplay/internal/capture"
	"github.com/llehouerou/packetplay/internal/model"
)

var (
	// ErrCannotLoadFile is returned when Open fails.
	ErrCannotLoadFile = errors.New("error loading file")
	// ErrIncorrectStateForCommand is returned when a command is not allowed
	// in the current player state.
	ErrIncorrectStateForCommand = errors.New("incorrect player state for command")
	// ErrUpdateSettings is returned for invalid settings.
	ErrUpdateSettings = errors.New("error updating settings")
	// ErrClosed is returned by Open once the service is closed.
	ErrClosed = errors.New("playback service closed")
)

// Service defines the playback service contract.
type Service interface {
	// Settings
	UpdateSettings(destination string, sourcePort, ttl int) error
	Settings() model.Settings

	// Recording lifecycle
	Open(ctx context.Context, path string) error
	Unload() error

	// Transport control
	Play() error
	Pause() error
	Rewind() error
	Toggle() error

	// State queries
	State() model.PlayerState
	Position() model.PlayerPosition
	Recording() model.RecordingInfo
	Capture() *capture.Recording

	// Event subscription
	Subscribe() *Subscription
	Unsubscribe(sub *Subscription)

	// Lifecycle
	Close() error
}
