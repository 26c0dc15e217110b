// Package model holds the data shapes shared by the player engine, the
// playback service and every front-end (TUI, JSON bridge, MPRIS).
package model

import "fmt"

// PlayerState is the transport state of the packet player.
//
// Uninitialised is only ever reported by front-ends before a recording is
// loaded; the engine itself starts in Initial.
//
// Valid transitions:
//   - Initial  → Playing  (via Play)
//   - Playing  → Paused   (via Pause)
//   - Paused   → Playing  (via Play)
//   - Playing  → Finished (last packet sent)
//   - Playing, Paused, Finished → Initial (via Rewind)
//   - any      → Quit     (via Quit, terminal)
//
// Everything else is ignored by the engine.
type PlayerState string

const (
	Uninitialised PlayerState = "Uninitialised"
	Initial       PlayerState = "Initial"
	Playing       PlayerState = "Playing"
	Paused        PlayerState = "Paused"
	Finished      PlayerState = "Finished"
	Quit          PlayerState = "Quit"
)

// PlayerStates lists every variant in lifecycle order.
var PlayerStates = []PlayerState{Uninitialised, Initial, Playing, Paused, Finished, Quit}

// ParsePlayerState returns the variant named s.
func ParsePlayerState(s string) (PlayerState, error) {
	for _, st := range PlayerStates {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown player state %q", s)
}

// Valid reports whether s is one of the six variants.
func (s PlayerState) Valid() bool {
	_, err := ParsePlayerState(string(s))
	return err == nil
}

// UnmarshalText rejects anything outside the enumeration.
func (s *PlayerState) UnmarshalText(text []byte) error {
	st, err := ParsePlayerState(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Label is the human readable status shown next to the controls.
func (s PlayerState) Label() string {
	switch s {
	case Uninitialised:
		return "No recording"
	case Initial:
		return "Ready"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Finished:
		return "Finished"
	case Quit:
		return ""
	}
	return "Unknown"
}

// CanPlay returns true if playback can be started or resumed.
func (s PlayerState) CanPlay() bool {
	return s == Initial || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s PlayerState) CanPause() bool {
	return s == Playing
}

// CanRewind returns true if there is progress to rewind.
func (s PlayerState) CanRewind() bool {
	return s == Playing || s == Paused || s == Finished
}

// IsActive returns true if a recording is loaded and the player still runs.
func (s PlayerState) IsActive() bool {
	return s == Initial || s == Playing || s == Paused || s == Finished
}
