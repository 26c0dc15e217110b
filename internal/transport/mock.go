package transport

import "sync"

// Mock is a Sender that records payloads in memory.
type Mock struct {
	mu      sync.Mutex
	sent    [][]byte
	failOn  int // 1-based send index that fails, 0 = never
	failErr error
	closed  bool
}

// Verify Mock implements Sender at compile time.
var _ Sender = (*Mock)(nil)

// NewMock creates a new mock sender for testing.
func NewMock() *Mock {
	return &Mock{}
}

// FailOn makes the n-th Send (1-based) return err.
func (m *Mock) FailOn(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn = n
	m.failErr = err
}

func (m *Mock) Send(payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.failOn > 0 && len(m.sent)+1 == m.failOn {
		m.failOn = 0
		return m.failErr
	}
	m.sent = append(m.sent, append([]byte(nil), payload...))
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Sent returns a copy of every payload sent so far.
func (m *Mock) Sent() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.sent...)
}

// Count returns the number of payloads sent.
func (m *Mock) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
