package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireFieldNames(t *testing.T) {
	settings, err := json.Marshal(Settings{Destination: "239.1.2.3:3000", SourcePort: 3001, TTL: 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"destination":"239.1.2.3:3000","source_port":3001,"ttl":4}`, string(settings))

	pos, err := json.Marshal(PlayerPosition{Position: 2, MaxPosition: 10, TimePositionSecs: 1.5, TimeTotalSecs: 9})
	require.NoError(t, err)
	assert.JSONEq(t, `{"position":2,"max_position":10,"time_position_secs":1.5,"time_total_secs":9}`, string(pos))

	info, err := json.Marshal(NewRecordingInfo("/captures/session.pcap"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_loaded":true,"filePath":"/captures/session.pcap","shortFileName":"session.pcap"}`, string(info))
}

func TestPlayerPosition_Durations(t *testing.T) {
	p := NewPlayerPosition(3, 7, 1500*time.Millisecond, 6*time.Second)

	assert.Equal(t, 1.5, p.TimePositionSecs)
	assert.Equal(t, 6.0, p.TimeTotalSecs)
	assert.Equal(t, 1500*time.Millisecond, p.Elapsed())
	assert.Equal(t, 6*time.Second, p.Total())
	assert.InDelta(t, 0.25, p.Ratio(), 1e-9)
}

func TestPlayerPosition_Ratio(t *testing.T) {
	tests := []struct {
		name string
		pos  PlayerPosition
		want float64
	}{
		{"zero total", PlayerPosition{TimePositionSecs: 5}, 0},
		{"half", PlayerPosition{TimePositionSecs: 5, TimeTotalSecs: 10}, 0.5},
		{"past the end clamps", PlayerPosition{TimePositionSecs: 12, TimeTotalSecs: 10}, 1},
		{"negative clamps", PlayerPosition{TimePositionSecs: -1, TimeTotalSecs: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.pos.Ratio(), 1e-9)
		})
	}
}

func TestRecordingInfo_ZeroValueIsUnloaded(t *testing.T) {
	var info RecordingInfo
	assert.False(t, info.IsLoaded)
	assert.Empty(t, info.FilePath)
	assert.Empty(t, info.ShortFileName)
}
