package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// ErrMailboxClosed is returned by Mailbox operations after Close.
var ErrMailboxClosed = errors.New("mailbox closed")

// Mailbox hands frames from a capture goroutine to a processing goroutine.
// It holds at most one frame: publishing while a frame is still waiting
// replaces it, so the consumer always sees the newest frame and never
// falls behind the camera.
type Mailbox struct {
	mu        sync.Mutex
	cond      *sync.Cond
	frame     *gocv.Mat
	closed    bool
	published uint64
	dropped   uint64
	onDrop    func()
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	m := &Mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// OnDrop registers a callback invoked (outside the lock) each time an
// unconsumed frame is overwritten.
func (m *Mailbox) OnDrop(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDrop = fn
}

// Publish stores frame, closing any frame that was never consumed.
// The mailbox takes ownership of frame. After Close the frame is closed
// immediately and ErrMailboxClosed is returned.
func (m *Mailbox) Publish(frame *gocv.Mat) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		frame.Close()
		return ErrMailboxClosed
	}

	stale := m.frame
	m.frame = frame
	m.published++
	if stale != nil {
		m.dropped++
	}
	onDrop := m.onDrop
	m.mu.Unlock()

	m.cond.Signal()

	if stale != nil {
		stale.Close()
		if onDrop != nil {
			onDrop()
		}
	}
	return nil
}

// Next blocks until a frame is available and returns it; the caller
// owns the returned frame. It returns ErrMailboxClosed once the mailbox
// is closed.
func (m *Mailbox) Next() (*gocv.Mat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for m.frame == nil && !m.closed {
		m.cond.Wait()
	}
	if m.closed {
		return nil, ErrMailboxClosed
	}

	frame := m.frame
	m.frame = nil
	return frame, nil
}

// Close wakes any waiting consumer and releases a pending frame.
// It is safe to call more than once.
func (m *Mailbox) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	pending := m.frame
	m.frame = nil
	m.mu.Unlock()

	m.cond.Broadcast()

	if pending != nil {
		pending.Close()
	}
}

// MailboxStats is a snapshot of mailbox counters.
type MailboxStats struct {
	Published uint64 `json:"published"`
	Dropped   uint64 `json:"dropped"`
}

// Stats returns the number of frames published and overwritten.
func (m *Mailbox) Stats() MailboxStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MailboxStats{Published: m.published, Dropped: m.dropped}
}
