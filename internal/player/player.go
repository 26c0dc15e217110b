// Package player replays a capture through a Sender, pacing each datagram by
// its capture timestamp.
package player

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/llehouerou/packetplay/internal/capture"
	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/transport"
)

const commandBufferSize = 8

type command int

const (
	cmdPlay command = iota
	cmdPause
	cmdRewind
	cmdQuit
)

func (c command) String() string {
	switch c {
	case cmdPlay:
		return "play"
	case cmdPause:
		return "pause"
	case cmdRewind:
		return "rewind"
	case cmdQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Player is the replay engine for one recording.
//
// All transitions happen on the goroutine running Run; the exported command
// methods only enqueue.
type Player struct {
	rec    *capture.Recording
	sender transport.Sender
	log    *slog.Logger

	cmds chan command
	done chan struct{}
	once sync.Once

	mu        sync.RWMutex
	state     model.PlayerState
	next      int           // index of the next packet to send
	elapsed   time.Duration // playback clock, frozen while not playing
	resumedAt time.Time     // wall time of the last resume

	subs   []*Subscription
	subsMu sync.Mutex
}

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger used for engine diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Player) { p.log = l }
}

// New creates a player in the Initial state. The caller starts it with Run.
func New(rec *capture.Recording, sender transport.Sender, opts ...Option) *Player {
	p := &Player{
		rec:    rec,
		sender: sender,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		cmds:   make(chan command, commandBufferSize),
		done:   make(chan struct{}),
		state:  model.Initial,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subscribe registers a new event subscriber. Subscribe before Run to
// receive the Ready event.
func (p *Player) Subscribe() *Subscription {
	sub := newSubscription()
	p.subsMu.Lock()
	defer p.subsMu.Unlock()
	select {
	case <-p.done:
		sub.close()
		return sub
	default:
	}
	p.subs = append(p.subs, sub)
	return sub
}

// Play starts or resumes playback.
func (p *Player) Play() error { return p.post(cmdPlay) }

// Pause freezes playback and the playback clock.
func (p *Player) Pause() error { return p.post(cmdPause) }

// Rewind returns to the first packet.
func (p *Player) Rewind() error { return p.post(cmdRewind) }

// Quit stops the engine. Run returns once it is processed.
func (p *Player) Quit() error { return p.post(cmdQuit) }

func (p *Player) post(c command) error {
	select {
	case <-p.done:
		return fmt.Errorf("%w: %s after quit", ErrCommandChannel, c)
	default:
	}
	select {
	case p.cmds <- c:
		return nil
	default:
		return fmt.Errorf("%w: %s dropped, queue full", ErrCommandChannel, c)
	}
}

// Done is closed when Run has returned.
func (p *Player) Done() <-chan struct{} {
	return p.done
}

// State returns the current engine state.
func (p *Player) State() model.PlayerState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Position returns the current progress snapshot.
func (p *Player) Position() model.PlayerPosition {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.positionLocked()
}

// Recording returns the recording being replayed.
func (p *Player) Recording() *capture.Recording {
	return p.rec
}

// Run drives playback until Quit is processed or ctx is cancelled.
func (p *Player) Run(ctx context.Context) error {
	defer p.finish()

	p.broadcast(func(s *Subscription) { s.sendReady() })
	p.log.Debug("player ready", "packets", p.rec.Len(), "duration", p.rec.Duration())

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		var wake <-chan time.Time
		if p.State() == model.Playing {
			wait := p.untilNext()
			if wait <= 0 {
				p.sendNext()
				// Drain pending commands between back-to-back sends.
				select {
				case <-ctx.Done():
					p.quit()
					return ctx.Err()
				case c := <-p.cmds:
					if p.handle(c) {
						return nil
					}
				default:
				}
				continue
			}
			timer.Reset(wait)
			wake = timer.C
		}

		select {
		case <-ctx.Done():
			p.quit()
			return ctx.Err()
		case c := <-p.cmds:
			timer.Stop()
			if p.handle(c) {
				return nil
			}
		case <-wake:
		}
	}
}

// handle applies a command and reports whether the engine must stop.
func (p *Player) handle(c command) bool {
	p.mu.Lock()
	prev := p.state
	switch c {
	case cmdPlay:
		if !prev.CanPlay() {
			p.mu.Unlock()
			return false
		}
		p.resumedAt = time.Now()
		p.state = model.Playing
	case cmdPause:
		if !prev.CanPause() {
			p.mu.Unlock()
			return false
		}
		p.elapsed = p.clockLocked()
		p.state = model.Paused
	case cmdRewind:
		if !prev.CanRewind() {
			p.mu.Unlock()
			return false
		}
		p.next = 0
		p.elapsed = 0
		p.state = model.Initial
	case cmdQuit:
		p.mu.Unlock()
		p.quit()
		return true
	}
	cur := p.state
	pos := p.positionLocked()
	p.mu.Unlock()

	p.log.Debug("player transition", "cmd", c.String(), "from", prev, "to", cur)
	p.broadcast(func(s *Subscription) { s.sendState(StateChange{Previous: prev, Current: cur}) })
	if c == cmdRewind {
		p.broadcast(func(s *Subscription) { s.sendPosition(pos) })
	}
	return false
}

func (p *Player) quit() {
	p.mu.Lock()
	prev := p.state
	if prev == model.Playing {
		p.elapsed = p.clockLocked()
	}
	p.state = model.Quit
	p.mu.Unlock()

	p.log.Debug("player quit", "from", prev)
	p.broadcast(func(s *Subscription) { s.sendState(StateChange{Previous: prev, Current: model.Quit}) })
}

// untilNext returns how long to wait before the next packet is due.
func (p *Player) untilNext() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.next >= p.rec.Len() {
		return 0
	}
	return p.rec.Offset(p.next) - p.clockLocked()
}

// sendNext sends the due packet, or finishes when none are left.
func (p *Player) sendNext() {
	p.mu.RLock()
	idx := p.next
	p.mu.RUnlock()

	if idx >= p.rec.Len() {
		p.transition(model.Finished)
		return
	}

	if err := p.sender.Send(p.rec.Packets[idx].Payload); err != nil {
		p.log.Warn("send failed, pausing", "packet", idx+1, "err", err)
		p.broadcast(func(s *Subscription) {
			s.sendError(ErrorEvent{Op: "send", Err: fmt.Errorf("packet %d: %w", idx+1, err)})
		})
		p.transition(model.Paused)
		return
	}

	p.mu.Lock()
	p.next = idx + 1
	pos := p.positionLocked()
	last := p.next >= p.rec.Len()
	p.mu.Unlock()

	p.broadcast(func(s *Subscription) { s.sendPosition(pos) })
	if last {
		p.transition(model.Finished)
	}
}

// transition moves from Playing to a resting state, freezing the clock.
func (p *Player) transition(to model.PlayerState) {
	p.mu.Lock()
	prev := p.state
	if prev == model.Playing {
		p.elapsed = p.clockLocked()
	}
	p.state = to
	p.mu.Unlock()

	if to == model.Finished {
		p.log.Info("replay finished", "packets", p.rec.Len())
	}
	p.broadcast(func(s *Subscription) { s.sendState(StateChange{Previous: prev, Current: to}) })
}

// clockLocked returns the playback clock. Time spent paused never counts.
func (p *Player) clockLocked() time.Duration {
	if p.state != model.Playing {
		return p.elapsed
	}
	return p.elapsed + time.Since(p.resumedAt)
}

func (p *Player) positionLocked() model.PlayerPosition {
	var at time.Duration
	if p.next > 0 {
		at = p.rec.Offset(p.next - 1)
	}
	return model.NewPlayerPosition(p.next, p.rec.Len(), at, p.rec.Duration())
}

func (p *Player) broadcast(fn func(*Subscription)) {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()
	for _, s := range p.subs {
		fn(s)
	}
}

func (p *Player) finish() {
	p.once.Do(func() {
		p.subsMu.Lock()
		close(p.done)
		for _, s := range p.subs {
			s.close()
		}
		p.subs = nil
		p.subsMu.Unlock()
	})
}
