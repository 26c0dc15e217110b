package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/packetplay/internal/app"
	"github.com/llehouerou/packetplay/internal/bridge"
	"github.com/llehouerou/packetplay/internal/config"
	"github.com/llehouerou/packetplay/internal/errmsg"
	"github.com/llehouerou/packetplay/internal/logging"
	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/mpris"
	"github.com/llehouerou/packetplay/internal/notify"
	"github.com/llehouerou/packetplay/internal/playback"
	"github.com/llehouerou/packetplay/internal/state"
)

// options holds the command line.
type options struct {
	destination string
	sourcePort  int
	ttl         int
	autoPlay    bool
	headless    bool
	bridge      string
	configPath  string
	file        string

	set map[string]bool // flags given explicitly
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("packetplay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: packetplay [flags] [capture.pcap|capture.pcapng]")
		fs.PrintDefaults()
	}
	fs.StringVar(&o.destination, "d", config.DefaultDestination, "destination `host:port`")
	fs.IntVar(&o.sourcePort, "s", config.DefaultSourcePort, "source `port`, 0 picks one")
	fs.IntVar(&o.ttl, "t", config.DefaultTTL, "`ttl` of sent datagrams")
	fs.BoolVar(&o.autoPlay, "autoplay", false, "start playing as soon as the file is open")
	fs.BoolVar(&o.headless, "headless", false, "play the file without the terminal UI and exit when finished")
	fs.StringVar(&o.bridge, "bridge", "", "serve the JSON control bridge on `addr` (host:port or unix:/path)")
	fs.StringVar(&o.configPath, "config", "", "read configuration from `file` only")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return o, errors.New("at most one capture file can be given")
	}
	o.file = fs.Arg(0)
	o.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.headless && o.file == "" {
		fs.Usage()
		return o, errors.New("-headless needs a capture file")
	}
	return o, nil
}

// settings layers the replay settings: configuration, then the values saved
// by the TUI, then explicit flags.
func (o options) settings(cfg *config.Config, saved *model.Settings) (model.Settings, error) {
	s := model.Settings{Destination: cfg.Destination, SourcePort: cfg.SourcePort, TTL: cfg.TTL}
	if saved != nil && config.ValidateSettings(*saved) == nil {
		s = *saved
	}
	if o.set["d"] {
		s.Destination = o.destination
	}
	if o.set["s"] {
		s.SourcePort = o.sourcePort
	}
	if o.set["t"] {
		s.TTL = o.ttl
	}
	return s, config.ValidateSettings(s)
}

func loadConfig(o options) (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	return config.Load()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return exitIncorrectFilePath
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		return exitIncorrectFilePath
	}
	if opts.bridge != "" {
		cfg.Bridge.Listen = opts.bridge
	}

	if opts.headless {
		return runHeadless(opts, cfg)
	}
	return runTUI(opts, cfg)
}

func runTUI(opts options, cfg *config.Config) int {
	// The alternate screen owns the terminal; logs go to the file or nowhere.
	logger, err := logging.New(cfg.Log, io.Discard)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		return exitIncorrectFilePath
	}
	defer logger.Close()

	stateMgr, err := state.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		return exitCreatePlayer
	}
	defer stateMgr.Close()

	saved, err := stateMgr.GetSettings()
	if err != nil {
		logger.Warn(errmsg.Format(errmsg.OpSettingsLoad, err))
	}
	settings, err := opts.settings(cfg, saved)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpSettingsLoad, err))
		return exitIncorrectFilePath
	}

	svc := playback.New(settings,
		playback.WithLogger(logger.Logger),
		playback.WithAutoPlay(cfg.AutoPlay || opts.autoPlay),
	)
	defer svc.Close()

	if cfg.HasBridge() {
		srv := bridge.NewServer(cfg.Bridge.Listen, svc, logger.Logger)
		if err := srv.Start(); err != nil {
			fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpBridgeListen, err))
			return exitCreatePlayer
		}
		defer srv.Close()
	}

	if cfg.MPRIS {
		adapter, err := mpris.New(svc)
		if err != nil {
			logger.Warn("mpris unavailable", "err", err)
		} else {
			defer adapter.Close()
		}
	}

	if cfg.Notifications {
		n, err := notify.New()
		if err != nil {
			logger.Warn("notifications unavailable", "err", err)
		} else {
			stop := notify.Watch(svc, n, logger.Logger)
			defer stop()
		}
	}

	m := app.New(app.Options{
		Service:       svc,
		State:         stateMgr,
		Logger:        logger.Logger,
		DefaultFolder: cfg.DefaultFolder,
		InitialPath:   opts.file,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCreatePlayer
	}
	return 0
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
