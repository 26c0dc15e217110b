package model

import (
	"encoding/json"
	"testing"
)

func TestPlayerState_ControlGate(t *testing.T) {
	tests := []struct {
		state     PlayerState
		canPlay   bool
		canPause  bool
		canRewind bool
	}{
		{Uninitialised, false, false, false},
		{Initial, true, false, false},
		{Playing, false, true, true},
		{Paused, true, false, true},
		{Finished, false, false, true},
		{Quit, false, false, false},
	}

	if len(tests) != len(PlayerStates) {
		t.Fatalf("table covers %d states, enumeration has %d", len(tests), len(PlayerStates))
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.CanPlay(); got != tt.canPlay {
				t.Errorf("CanPlay() = %v, want %v", got, tt.canPlay)
			}
			if got := tt.state.CanPause(); got != tt.canPause {
				t.Errorf("CanPause() = %v, want %v", got, tt.canPause)
			}
			if got := tt.state.CanRewind(); got != tt.canRewind {
				t.Errorf("CanRewind() = %v, want %v", got, tt.canRewind)
			}
		})
	}
}

func TestPlayerState_Label(t *testing.T) {
	tests := []struct {
		state PlayerState
		want  string
	}{
		{Uninitialised, "No recording"},
		{Initial, "Ready"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{Finished, "Finished"},
		{Quit, ""},
		{PlayerState("Bogus"), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.Label(); got != tt.want {
			t.Errorf("%q.Label() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestParsePlayerState(t *testing.T) {
	for _, st := range PlayerStates {
		got, err := ParsePlayerState(string(st))
		if err != nil {
			t.Errorf("ParsePlayerState(%q) error: %v", st, err)
		}
		if got != st {
			t.Errorf("ParsePlayerState(%q) = %q", st, got)
		}
	}

	if _, err := ParsePlayerState("playing"); err == nil {
		t.Error("expected error for lowercase variant")
	}
	if PlayerState("Stopped").Valid() {
		t.Error("Stopped should not be a valid state")
	}
}

func TestPlayerState_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		State PlayerState `json:"state"`
	}{Paused})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"state":"Paused"}` {
		t.Errorf("marshal = %s", data)
	}

	var decoded struct {
		State PlayerState `json:"state"`
	}
	if err := json.Unmarshal([]byte(`{"state":"Finished"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.State != Finished {
		t.Errorf("decoded = %q, want Finished", decoded.State)
	}

	if err := json.Unmarshal([]byte(`{"state":"Rewinding"}`), &decoded); err == nil {
		t.Error("expected error for unknown state")
	}
}

func TestPlayerState_IsActive(t *testing.T) {
	tests := []struct {
		state PlayerState
		want  bool
	}{
		{Uninitialised, false},
		{Initial, true},
		{Playing, true},
		{Paused, true},
		{Finished, true},
		{Quit, false},
	}
	for _, tt := range tests {
		if got := tt.state.IsActive(); got != tt.want {
			t.Errorf("%q.IsActive() = %v, want %v", tt.state, got, tt.want)
		}
	}
}
