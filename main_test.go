package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/packetplay/internal/capture"
	"github.com/llehouerou/packetplay/internal/capture/capturetest"
	"github.com/llehouerou/packetplay/internal/config"
	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/playback"
	"github.com/llehouerou/packetplay/internal/player"
	"github.com/llehouerou/packetplay/internal/transport"
)

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-d", "239.1.1.1:4000", "-t", "5", "-headless", "dis.pcap"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "239.1.1.1:4000", o.destination)
	assert.Equal(t, 5, o.ttl)
	assert.True(t, o.headless)
	assert.Equal(t, "dis.pcap", o.file)
	assert.True(t, o.set["d"])
	assert.False(t, o.set["s"])
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"headless without file", []string{"-headless"}},
		{"two files", []string{"a.pcap", "b.pcap"}},
		{"bad number", []string{"-t", "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestOptions_SettingsLayering(t *testing.T) {
	cfg := config.Default()
	cfg.Destination = "10.0.0.1:3000"

	o, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)

	s, err := o.settings(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, model.Settings{Destination: "10.0.0.1:3000", SourcePort: 3001, TTL: 1}, s)

	saved := &model.Settings{Destination: "239.9.9.9:5000", SourcePort: 0, TTL: 4}
	s, err = o.settings(cfg, saved)
	require.NoError(t, err)
	assert.Equal(t, *saved, s, "saved settings win over configuration")

	invalid := &model.Settings{Destination: "nowhere", TTL: 4}
	s, err = o.settings(cfg, invalid)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:3000", s.Destination, "invalid saved settings are ignored")

	o, err = parseFlags([]string{"-t", "9"}, io.Discard)
	require.NoError(t, err)
	s, err = o.settings(cfg, saved)
	require.NoError(t, err)
	assert.Equal(t, 9, s.TTL, "flags win over saved settings")
	assert.Equal(t, "239.9.9.9:5000", s.Destination)

	o, err = parseFlags([]string{"-t", "0"}, io.Discard)
	require.NoError(t, err)
	_, err = o.settings(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"missing file", fmt.Errorf("%w: %w", playback.ErrCannotLoadFile, os.ErrNotExist), exitIncorrectFilePath},
		{"wrong extension", fmt.Errorf("%w: %w", playback.ErrCannotLoadFile, player.ErrFileTypeNotSupported), exitCreatePlayer},
		{"dial failure", fmt.Errorf("%w: %w", playback.ErrCannotLoadFile, player.ErrPlayerInit), exitCreatePlayer},
		{"parse", fmt.Errorf("%w: %w", playback.ErrCannotLoadFile, capture.ErrParse), exitParseFile},
		{"not a capture", capture.ErrUnsupportedFormat, exitParseFile},
		{"no udp", capture.ErrEmptyRecording, exitParseFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func newHeadlessService(m *transport.Mock) playback.Service {
	return playback.New(
		model.Settings{Destination: config.DefaultDestination, SourcePort: 0, TTL: 1},
		playback.WithAutoPlay(true),
		playback.WithDialer(func(context.Context, model.Settings) (transport.Sender, error) {
			return m, nil
		}),
	)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestPlayOnce_Finishes(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := transport.NewMock()
		svc := newHeadlessService(mock)
		path := capturetest.WriteFile(t, "dis.pcap", capturetest.Pcap(t, capturetest.UDP(3, 100*time.Millisecond)))

		code := playOnce(context.Background(), svc, path, discard)
		assert.Equal(t, 0, code)
		assert.Equal(t, 3, mock.Count())

		require.NoError(t, svc.Close())
	})
}

func TestPlayOnce_OpenFailure(t *testing.T) {
	svc := newHeadlessService(transport.NewMock())
	defer svc.Close()

	assert.Equal(t, exitIncorrectFilePath, playOnce(context.Background(), svc, "/nonexistent/dis.pcap", discard))
	assert.Equal(t, exitCreatePlayer, playOnce(context.Background(), svc, "/tmp/notes.txt", discard))

	garbage := capturetest.WriteFile(t, "garbage.pcap", []byte("not a capture at all"))
	assert.Equal(t, exitParseFile, playOnce(context.Background(), svc, garbage, discard))
}

func TestPlayOnce_SendFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := transport.NewMock()
		mock.FailOn(2, errors.New("network is unreachable"))
		svc := newHeadlessService(mock)
		path := capturetest.WriteFile(t, "dis.pcap", capturetest.Pcap(t, capturetest.UDP(3, 10*time.Millisecond)))

		assert.Equal(t, exitPlayback, playOnce(context.Background(), svc, path, discard))
		require.NoError(t, svc.Close())
	})
}

func TestPlayOnce_Interrupted(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		svc := newHeadlessService(transport.NewMock())
		path := capturetest.WriteFile(t, "dis.pcap", capturetest.Pcap(t, capturetest.UDP(3, time.Hour)))
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		assert.Equal(t, exitInterrupted, playOnce(ctx, svc, path, discard))
		require.NoError(t, svc.Close())
	})
}
