package playback

import "github.com/llehouerou/packetplay/internal/model"

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged     <-chan StateChange
	PositionChanged  <-chan model.PlayerPosition
	RecordingChanged <-chan RecordingChange
	SettingsChanged  <-chan model.Settings
	Error            <-chan ErrorEvent
	Done             <-chan struct{}

	// Internal write channels
	stateCh     chan StateChange
	positionCh  chan model.PlayerPosition
	recordingCh chan RecordingChange
	settingsCh  chan model.Settings
	errorCh     chan ErrorEvent
	doneCh      chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:     make(chan StateChange, eventBufferSize),
		positionCh:  make(chan model.PlayerPosition, eventBufferSize),
		recordingCh: make(chan RecordingChange, eventBufferSize),
		settingsCh:  make(chan model.Settings, eventBufferSize),
		errorCh:     make(chan ErrorEvent, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.PositionChanged = s.positionCh
	s.RecordingChanged = s.recordingCh
	s.SettingsChanged = s.settingsCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
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

// sendRecording sends a recording change event (non-blocking).
func (s *Subscription) sendRecording(e RecordingChange) {
	select {
	case s.recordingCh <- e:
	default:
	}
}

// sendSettings sends the new settings (non-blocking).
func (s *Subscription) sendSettings(st model.Settings) {
	select {
	case s.settingsCh <- st:
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
