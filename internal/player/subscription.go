package player

import "github.com/llehouerou/packetplay/internal/model"

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	Ready           <-chan struct{}
	StateChanged    <-chan StateChange
	PositionChanged <-chan model.PlayerPosition
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	readyCh    chan struct{}
	stateCh    chan StateChange
	positionCh chan model.PlayerPosition
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		readyCh:    make(chan struct{}, 1),
		stateCh:    make(chan StateChange, eventBufferSize),
		positionCh: make(chan model.PlayerPosition, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.Ready = s.readyCh
	s.StateChanged = s.stateCh
	s.PositionChanged = s.positionCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendReady() {
	select {
	case s.readyCh <- struct{}{}:
	default:
	}
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendPosition sends a position snapshot (non-blocking).
func (s *Subscription) sendPosition(p model.PlayerPosition) {
	select {
	case s.positionCh <- p:
	default:
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
