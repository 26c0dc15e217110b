package playback

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/llehouerou/packetplay/internal/capture"
	"github.com/llehouerou/packetplay/internal/config"
	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/player"
	"github.com/llehouerou/packetplay/internal/transport"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

// Dialer opens the sender a new player writes to.
type Dialer func(ctx context.Context, s model.Settings) (transport.Sender, error)

// DialUDP is the default Dialer.
func DialUDP(ctx context.Context, s model.Settings) (transport.Sender, error) {
	return transport.Dial(ctx, s)
}

// Option configures the service.
type Option func(*serviceImpl)

// WithDialer replaces the UDP dialer.
func WithDialer(d Dialer) Option {
	return func(s *serviceImpl) { s.dial = d }
}

// WithLogger sets the logger passed down to every player.
func WithLogger(l *slog.Logger) Option {
	return func(s *serviceImpl) { s.log = l }
}

// WithAutoPlay starts playback as soon as a recording is opened.
func WithAutoPlay(enabled bool) Option {
	return func(s *serviceImpl) { s.autoPlay = enabled }
}

type serviceImpl struct {
	// lifecycle serializes Open, Unload and Close so that exactly one
	// player is installed at a time.
	lifecycle sync.Mutex

	mu sync.RWMutex

	settings model.Settings
	dial     Dialer
	log      *slog.Logger
	autoPlay bool

	player *player.Player
	sender transport.Sender
	rec    *capture.Recording
	cancel context.CancelFunc

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// New creates a new playback service. Settings are assumed valid.
func New(settings model.Settings, opts ...Option) Service {
	s := &serviceImpl{
		settings: settings,
		dial:     DialUDP,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateSettings validates and stores new settings. They apply to the next
// recording opened.
func (s *serviceImpl) UpdateSettings(destination string, sourcePort, ttl int) error {
	st := model.Settings{Destination: destination, SourcePort: sourcePort, TTL: ttl}
	if err := config.ValidateSettings(st); err != nil {
		return fmt.Errorf("%w: %w", ErrUpdateSettings, err)
	}

	s.mu.Lock()
	s.settings = st
	s.mu.Unlock()

	s.log.Info("settings updated", "destination", destination, "source_port", sourcePort, "ttl", ttl)
	s.broadcast(func(sub *Subscription) { sub.sendSettings(st) })
	return nil
}

// Settings returns the current settings.
func (s *serviceImpl) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Open loads path, replaces the current player and leaves the new one in
// the Initial state (or Playing with auto play).
func (s *serviceImpl) Open(ctx context.Context, path string) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.isClosed() {
		return fmt.Errorf("%w: %w", ErrCannotLoadFile, ErrClosed)
	}
	if err := player.CheckFileType(path); err != nil {
		return fmt.Errorf("%w: %w", ErrCannotLoadFile, err)
	}

	rec, err := capture.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCannotLoadFile, err)
	}

	prev := s.State()
	if err := s.stopPlayer(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrCannotLoadFile, err)
	}

	sender, err := s.dial(ctx, s.Settings())
	if err != nil {
		s.resetRecording(prev)
		return fmt.Errorf("%w: %w: %w", ErrCannotLoadFile, player.ErrPlayerInit, err)
	}

	p := player.New(rec, sender, player.WithLogger(s.log))
	sub := p.Subscribe()
	runCtx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.player = p
	s.sender = sender
	s.rec = rec
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		if err := p.Run(runCtx); err != nil && runCtx.Err() == nil {
			s.log.Error("player stopped", "err", err)
		}
	}()
	go s.forward(p, sub)

	s.log.Info("recording opened",
		"path", path, "packets", rec.Len(), "skipped", rec.Skipped, "duration", rec.Duration())
	change := RecordingChange{Info: rec.Info(), Packets: rec.Len(), Skipped: rec.Skipped}
	s.broadcast(func(sub *Subscription) {
		sub.sendRecording(change)
		sub.sendState(StateChange{Previous: prev, Current: model.Initial})
	})

	if s.autoPlay {
		return p.Play()
	}
	return nil
}

// resetRecording reports the unload that happens when Open fails after the
// previous player was stopped.
func (s *serviceImpl) resetRecording(prev model.PlayerState) {
	if prev == model.Uninitialised {
		return
	}
	s.broadcast(func(sub *Subscription) {
		sub.sendRecording(RecordingChange{})
		sub.sendState(StateChange{Previous: prev, Current: model.Uninitialised})
	})
}

// stopPlayer quits the current player and waits for it to exit.
func (s *serviceImpl) stopPlayer(ctx context.Context) error {
	s.mu.Lock()
	p, sender, cancel := s.player, s.sender, s.cancel
	s.player, s.sender, s.rec, s.cancel = nil, nil, nil, nil
	s.mu.Unlock()

	if p == nil {
		return nil
	}
	if err := p.Quit(); err != nil {
		cancel()
	}
	select {
	case <-p.Done():
	case <-ctx.Done():
		cancel()
		<-p.Done()
	}
	cancel()
	return sender.Close()
}

// forward relays events from p while it is the current player.
func (s *serviceImpl) forward(p *player.Player, sub *player.Subscription) {
	current := func() bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.player == p
	}
	path := p.Recording().Path

	for {
		select {
		case <-sub.Done:
			return
		case e := <-sub.StateChanged:
			if current() {
				s.broadcast(func(out *Subscription) {
					out.sendState(StateChange{Previous: e.Previous, Current: e.Current})
				})
			}
		case pos := <-sub.PositionChanged:
			if current() {
				s.broadcast(func(out *Subscription) { out.sendPosition(pos) })
			}
		case e := <-sub.Error:
			if current() {
				s.broadcast(func(out *Subscription) {
					out.sendError(ErrorEvent{Operation: e.Op, Path: path, Err: e.Err})
				})
			}
		case <-sub.Ready:
		}
	}
}

// Unload quits the player and forgets the recording.
func (s *serviceImpl) Unload() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	return s.unload()
}

func (s *serviceImpl) unload() error {
	prev := s.State()
	if err := s.stopPlayer(context.Background()); err != nil {
		return err
	}
	if prev != model.Uninitialised {
		s.log.Info("recording unloaded")
	}
	s.resetRecording(prev)
	return nil
}

// Play starts or resumes playback.
func (s *serviceImpl) Play() error {
	p, err := s.gate("play", model.PlayerState.CanPlay)
	if err != nil {
		return err
	}
	return p.Play()
}

// Pause pauses playback.
func (s *serviceImpl) Pause() error {
	p, err := s.gate("pause", model.PlayerState.CanPause)
	if err != nil {
		return err
	}
	return p.Pause()
}

// Rewind returns to the first packet.
func (s *serviceImpl) Rewind() error {
	p, err := s.gate("rewind", model.PlayerState.CanRewind)
	if err != nil {
		return err
	}
	return p.Rewind()
}

// Toggle pauses when playing and plays otherwise.
func (s *serviceImpl) Toggle() error {
	if s.State().CanPause() {
		return s.Pause()
	}
	return s.Play()
}

func (s *serviceImpl) gate(cmd string, allowed func(model.PlayerState) bool) (*player.Player, error) {
	s.mu.RLock()
	p := s.player
	s.mu.RUnlock()

	if p == nil || !allowed(p.State()) {
		return nil, fmt.Errorf("%w %s", ErrIncorrectStateForCommand, cmd)
	}
	return p, nil
}

// State returns the player state, Uninitialised when nothing is loaded.
func (s *serviceImpl) State() model.PlayerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.player == nil {
		return model.Uninitialised
	}
	return s.player.State()
}

// Position returns the current progress snapshot.
func (s *serviceImpl) Position() model.PlayerPosition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.player == nil {
		return model.PlayerPosition{}
	}
	return s.player.Position()
}

// Recording describes the loaded recording.
func (s *serviceImpl) Recording() model.RecordingInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rec == nil {
		return model.RecordingInfo{}
	}
	return s.rec.Info()
}

// Capture returns the loaded recording, or nil.
func (s *serviceImpl) Capture() *capture.Recording {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	if s.closed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Unsubscribe removes sub and closes it. Unknown subscriptions are ignored.
func (s *serviceImpl) Unsubscribe(sub *Subscription) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for i, existing := range s.subs {
		if existing == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			sub.close()
			return
		}
	}
}

func (s *serviceImpl) isClosed() bool {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	return s.closed
}

func (s *serviceImpl) broadcast(fn func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		fn(sub)
	}
}

// Close unloads the recording and closes every subscription.
func (s *serviceImpl) Close() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.isClosed() {
		return nil
	}

	err := s.unload()

	s.subsMu.Lock()
	s.closed = true
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return err
}
