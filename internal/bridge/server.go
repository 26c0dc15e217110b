// Package bridge exposes the playback service as line-delimited JSON over a
// TCP or unix socket, so scripts and other front-ends can drive the player.
package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/llehouerou/packetplay/internal/playback"
)

const unixPrefix = "unix:"

// maxLineSize bounds a single request line.
const maxLineSize = 64 * 1024

// Server serves the JSON bridge.
type Server struct {
	svc  playback.Service
	addr string
	log  *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	running  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer creates a bridge for svc. addr is "host:port" or "unix:/path".
func NewServer(addr string, svc playback.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		svc:   svc,
		addr:  addr,
		log:   log,
		conns: make(map[net.Conn]struct{}),
	}
}

// Start listens and accepts connections in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("bridge already running")
	}

	network, address := splitAddr(s.addr)
	if network == "unix" {
		// A stale socket from a previous run blocks Listen.
		_ = os.Remove(address)
	}
	ln, err := net.Listen(network, address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}

	s.listener = ln
	s.running = true
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.log.Info("control bridge listening", "addr", ln.Addr().String())

	s.wg.Add(1)
	go s.acceptLoop(ln)
	return nil
}

// Addr returns the listening address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close stops the listener, disconnects every client and waits for their
// handlers to return.
func (s *Server) Close() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cancel()
	err := s.listener.Close()
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	return err
}

func splitAddr(addr string) (network, address string) {
	if path, ok := strings.CutPrefix(addr, unixPrefix); ok {
		return "unix", path
	}
	return "tcp", addr
}

func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			running := s.running
			s.mu.Unlock()
			if !running {
				return
			}
			s.log.Warn("accept failed", "err", err)
			continue
		}

		s.mu.Lock()
		if !s.running {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.wg.Add(1)
		s.mu.Unlock()

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	log := s.log.With("remote", conn.RemoteAddr().String())
	log.Debug("bridge client connected")

	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	enc := json.NewEncoder(conn)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			if err := enc.Encode(failure(fmt.Errorf("malformed request: %w", err))); err != nil {
				return
			}
			continue
		}

		if req.Cmd == CmdSubscribe {
			s.stream(conn, sc, enc)
			return
		}

		if err := enc.Encode(s.dispatch(req)); err != nil {
			log.Debug("bridge write failed", "err", err)
			return
		}
	}
	log.Debug("bridge client disconnected")
}

// dispatch runs one request against the playback service.
func (s *Server) dispatch(req Request) Response {
	switch req.Cmd {
	case CmdUpdateSettings:
		if req.SourcePort == nil || req.TTL == nil || req.Destination == "" {
			return failure(fmt.Errorf("%w: destination, source_port and ttl are required", playback.ErrUpdateSettings))
		}
		if err := s.svc.UpdateSettings(req.Destination, *req.SourcePort, *req.TTL); err != nil {
			return failure(err)
		}
		st := s.svc.Settings()
		return Response{OK: true, Settings: &st}

	case CmdOpen:
		if req.FilePath == "" {
			return failure(fmt.Errorf("%w: file_path is required", playback.ErrCannotLoadFile))
		}
		if err := s.svc.Open(s.ctx, req.FilePath); err != nil {
			return failure(err)
		}
		return s.status()

	case CmdPlay:
		return result(s.svc.Play())
	case CmdPause:
		return result(s.svc.Pause())
	case CmdRewind:
		return result(s.svc.Rewind())

	case CmdStatus:
		return s.status()

	case CmdSettings:
		st := s.svc.Settings()
		return Response{OK: true, Settings: &st}
	}
	return failure(fmt.Errorf("unknown command %q", req.Cmd))
}

func (s *Server) status() Response {
	pos := s.svc.Position()
	rec := s.svc.Recording()
	return Response{OK: true, State: s.svc.State(), Position: &pos, Recording: &rec}
}

// stream turns the connection into an event feed until the client hangs up
// or the server closes.
func (s *Server) stream(conn net.Conn, sc *bufio.Scanner, enc *json.Encoder) {
	sub := s.svc.Subscribe()
	defer s.svc.Unsubscribe(sub)
	if err := enc.Encode(Response{OK: true}); err != nil {
		return
	}

	// Anything the client sends from now on is ignored; EOF ends the stream.
	hangup := make(chan struct{})
	go func() {
		defer close(hangup)
		for sc.Scan() {
		}
	}()

	for {
		var ev Event
		select {
		case <-hangup:
			return
		case <-s.ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.StateChanged:
			ev = Event{Event: EventState, Previous: e.Previous, State: e.Current}
		case p := <-sub.PositionChanged:
			ev = Event{Event: EventPosition, Position: &p}
		case r := <-sub.RecordingChanged:
			ev = Event{Event: EventRecording, Recording: &r.Info}
		case st := <-sub.SettingsChanged:
			ev = Event{Event: EventSettings, Settings: &st}
		case e := <-sub.Error:
			ev = Event{Event: EventError, Error: e.Err.Error()}
		}
		if err := enc.Encode(ev); err != nil {
			conn.Close()
			<-hangup
			return
		}
	}
}

func result(err error) Response {
	if err != nil {
		return failure(err)
	}
	return Response{OK: true}
}

func failure(err error) Response {
	return Response{OK: false, Error: err.Error()}
}
