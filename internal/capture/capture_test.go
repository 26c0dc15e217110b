package capture_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/packetplay/internal/capture"
	"github.com/llehouerou/packetplay/internal/capture/capturetest"
)

func TestOpen_Pcap(t *testing.T) {
	frames := capturetest.UDP(3, 250*time.Millisecond)
	path := capturetest.WriteFile(t, "three.pcap", capturetest.Pcap(t, frames))

	rec, err := capture.Open(path)
	require.NoError(t, err)

	assert.Equal(t, capture.FormatPcap, rec.Format)
	assert.Equal(t, layers.LinkTypeEthernet, rec.LinkType)
	assert.Equal(t, 3, rec.Len())
	assert.Equal(t, 0, rec.Skipped)
	assert.Positive(t, rec.Size)
	assert.Equal(t, 500*time.Millisecond, rec.Duration())
	assert.Equal(t, 250*time.Millisecond, rec.Offset(1))
	assert.True(t, rec.Start().Equal(capturetest.Epoch))

	for i, pkt := range rec.Packets {
		assert.Equal(t, frames[i].Payload, pkt.Payload, "payload %d", i)
		assert.Equal(t, uint16(3000), pkt.DstPort)
	}

	info := rec.Info()
	assert.True(t, info.IsLoaded)
	assert.Equal(t, path, info.FilePath)
	assert.Equal(t, "three.pcap", info.ShortFileName)
}

func TestRead_PcapNG(t *testing.T) {
	frames := capturetest.UDP(4, 100*time.Millisecond)
	data := capturetest.PcapNG(t, frames)

	rec, err := capture.Read(bytes.NewReader(data), "stream.pcapng")
	require.NoError(t, err)

	assert.Equal(t, capture.FormatPcapNG, rec.Format)
	assert.Equal(t, 4, rec.Len())
	assert.Equal(t, 300*time.Millisecond, rec.Duration())
	assert.Equal(t, []byte("pkt-3"), rec.Packets[3].Payload)
	assert.Zero(t, rec.Size)
}

func TestRead_SkipsNonUDP(t *testing.T) {
	frames := []capturetest.Frame{
		{At: 0, Payload: []byte("a"), DstPort: 3000},
		{At: 10 * time.Millisecond, Payload: []byte("tcp")},
		{At: 20 * time.Millisecond, Payload: []byte("b"), DstPort: 4000},
	}

	rec, err := capture.Read(bytes.NewReader(capturetest.Pcap(t, frames)), "mixed.pcap")
	require.NoError(t, err)

	assert.Equal(t, 2, rec.Len())
	assert.Equal(t, 1, rec.Skipped)
	assert.Equal(t, uint16(4000), rec.Packets[1].DstPort)
}

func TestRead_OnlyNonUDPIsEmpty(t *testing.T) {
	frames := []capturetest.Frame{{Payload: []byte("tcp")}}

	_, err := capture.Read(bytes.NewReader(capturetest.Pcap(t, frames)), "tcp.pcap")
	assert.ErrorIs(t, err, capture.ErrEmptyRecording)
}

func TestRead_HeaderOnlyIsEmpty(t *testing.T) {
	_, err := capture.Read(bytes.NewReader(capturetest.Pcap(t, nil)), "empty.pcap")
	assert.ErrorIs(t, err, capture.ErrEmptyRecording)
}

func TestRead_UnsupportedFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"text file", []byte("this is not a capture")},
		{"too short", []byte{0xd4, 0xc3}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := capture.Read(bytes.NewReader(tt.data), "x")
			assert.ErrorIs(t, err, capture.ErrUnsupportedFormat)
		})
	}
}

func TestRead_TruncatedTail(t *testing.T) {
	data := capturetest.Pcap(t, capturetest.UDP(2, time.Millisecond))
	// Cut into the payload of the last record.
	data = data[:len(data)-3]

	rec, err := capture.Read(bytes.NewReader(data), "cut.pcap")
	require.NoError(t, err)
	assert.True(t, rec.Truncated)
	assert.Equal(t, 1, rec.Len())
}

func TestRead_BadRecordHeader(t *testing.T) {
	data := capturetest.Pcap(t, capturetest.UDP(1, time.Millisecond))
	// Corrupt the captured length of the first record (global header is 24 bytes,
	// incl_len sits at offset 8 of the record header) so it exceeds the snaplen.
	binary.LittleEndian.PutUint32(data[24+8:], 0xffffff)

	_, err := capture.Read(bytes.NewReader(data), "bad.pcap")
	require.Error(t, err)
	assert.True(t, errors.Is(err, capture.ErrParse), "got %v", err)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := capture.Open("/nonexistent/capture.pcap")
	assert.Error(t, err)
}

func TestOffset_ClampsOutOfOrderTimestamps(t *testing.T) {
	frames := []capturetest.Frame{
		{At: 100 * time.Millisecond, Payload: []byte("first"), DstPort: 3000},
		{At: 0, Payload: []byte("earlier"), DstPort: 3000},
	}

	rec, err := capture.Read(bytes.NewReader(capturetest.Pcap(t, frames)), "ooo.pcap")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), rec.Offset(1))
	assert.Equal(t, time.Duration(0), rec.Duration())
}
