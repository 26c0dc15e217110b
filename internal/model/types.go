package model

import (
	"path/filepath"
	"time"
)

// Settings configures where replayed packets go.
type Settings struct {
	Destination string `json:"destination"`
	SourcePort  int    `json:"source_port"`
	TTL         int    `json:"ttl"`
}

// PlayerPosition is a progress snapshot emitted by the engine.
//
// Position counts packets already sent (1-based once playback started).
// Nothing guarantees Position <= MaxPosition; consumers must not assume it.
type PlayerPosition struct {
	Position         int     `json:"position"`
	MaxPosition      int     `json:"max_position"`
	TimePositionSecs float64 `json:"time_position_secs"`
	TimeTotalSecs    float64 `json:"time_total_secs"`
}

// NewPlayerPosition builds a snapshot from durations.
func NewPlayerPosition(pos, maxPos int, elapsed, total time.Duration) PlayerPosition {
	return PlayerPosition{
		Position:         pos,
		MaxPosition:      maxPos,
		TimePositionSecs: elapsed.Seconds(),
		TimeTotalSecs:    total.Seconds(),
	}
}

// Elapsed returns the time position as a duration.
func (p PlayerPosition) Elapsed() time.Duration {
	return time.Duration(p.TimePositionSecs * float64(time.Second))
}

// Total returns the total time as a duration.
func (p PlayerPosition) Total() time.Duration {
	return time.Duration(p.TimeTotalSecs * float64(time.Second))
}

// Ratio returns elapsed/total clamped to [0, 1].
func (p PlayerPosition) Ratio() float64 {
	if p.TimeTotalSecs <= 0 {
		return 0
	}
	r := p.TimePositionSecs / p.TimeTotalSecs
	return min(max(r, 0), 1)
}

// RecordingInfo describes the loaded capture file.
type RecordingInfo struct {
	IsLoaded      bool   `json:"is_loaded"`
	FilePath      string `json:"filePath"`
	ShortFileName string `json:"shortFileName"`
}

// NewRecordingInfo returns a loaded RecordingInfo for path.
func NewRecordingInfo(path string) RecordingInfo {
	return RecordingInfo{
		IsLoaded:      true,
		FilePath:      path,
		ShortFileName: filepath.Base(path),
	}
}
