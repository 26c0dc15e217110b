package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/packetplay/internal/bridge"
	"github.com/llehouerou/packetplay/internal/capture"
	"github.com/llehouerou/packetplay/internal/config"
	"github.com/llehouerou/packetplay/internal/errmsg"
	"github.com/llehouerou/packetplay/internal/logging"
	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/playback"
	"github.com/llehouerou/packetplay/internal/player"
	"github.com/llehouerou/packetplay/internal/ui/render"
)

// Exit codes of a headless run.
const (
	exitIncorrectFilePath = 1
	exitCreatePlayer      = 2
	exitPlayback          = 4
	exitParseFile         = 5
	exitInterrupted       = 130
)

// exitCode maps an Open error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return exitIncorrectFilePath
	case errors.Is(err, capture.ErrParse),
		errors.Is(err, capture.ErrUnsupportedFormat),
		errors.Is(err, capture.ErrEmptyRecording):
		return exitParseFile
	case errors.Is(err, player.ErrFileTypeNotSupported), errors.Is(err, player.ErrPlayerInit):
		return exitCreatePlayer
	default:
		return exitCreatePlayer
	}
}

// runHeadless plays opts.file once and reports progress through the log.
// Saved TUI settings are not consulted so scripted runs only depend on
// configuration and flags.
func runHeadless(opts options, cfg *config.Config) int {
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		return exitIncorrectFilePath
	}
	defer logger.Close()

	settings, err := opts.settings(cfg, nil)
	if err != nil {
		logger.Error(errmsg.Format(errmsg.OpSettingsLoad, err))
		return exitIncorrectFilePath
	}

	svc := playback.New(settings, playback.WithLogger(logger.Logger), playback.WithAutoPlay(true))
	defer svc.Close()

	if cfg.HasBridge() {
		srv := bridge.NewServer(cfg.Bridge.Listen, svc, logger.Logger)
		if err := srv.Start(); err != nil {
			logger.Error(errmsg.Format(errmsg.OpBridgeListen, err))
			return exitCreatePlayer
		}
		defer srv.Close()
	}

	ctx, cancel := signalContext()
	defer cancel()
	return playOnce(ctx, svc, opts.file, logger.Logger)
}

// playOnce opens path with auto play and waits for the end of the
// recording. A send failure pauses the player, so it ends the run.
func playOnce(ctx context.Context, svc playback.Service, path string, log *slog.Logger) int {
	sub := svc.Subscribe()
	defer svc.Unsubscribe(sub)

	if err := svc.Open(ctx, path); err != nil {
		log.Error(errmsg.FormatWith(errmsg.OpRecordingOpen, path, err))
		return exitCode(err)
	}

	total := svc.Position()
	log.Info("playing",
		"file", svc.Recording().ShortFileName,
		"packets", humanize.Comma(int64(total.MaxPosition)),
		"duration", render.FormatSecs(total.TimeTotalSecs),
		"destination", svc.Settings().Destination)

	for {
		select {
		case <-ctx.Done():
			log.Warn("interrupted", "position", svc.Position().Position)
			return exitInterrupted
		case <-sub.Done:
			return exitPlayback
		case e := <-sub.StateChanged:
			if e.Current == model.Finished {
				log.Info("playback finished", "packets", humanize.Comma(int64(svc.Position().Position)))
				return 0
			}
		case e := <-sub.Error:
			log.Error(errmsg.Format(errmsg.OpPlaybackSend, e.Err), "path", e.Path)
			return exitPlayback
		case p := <-sub.PositionChanged:
			if p.Position%progressEvery == 0 {
				log.Debug("progress",
					"packet", p.Position,
					"elapsed", render.FormatSecs(p.TimePositionSecs))
			}
		}
	}
}

// progressEvery is how often, in packets, headless runs log progress.
const progressEvery = 1000
