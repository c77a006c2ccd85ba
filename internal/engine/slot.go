package engine

import "sync"

// Slot is the bounded single-slot result mailbox shared by all adapters.
// Push replaces an undrained value; Close makes further pushes no-ops and
// closes the channel consumers drain.
type Slot struct {
	mu     sync.Mutex
	ch     chan Result
	closed bool
}

func NewSlot() *Slot {
	return &Slot{ch: make(chan Result, 1)}
}

// C is the consumer side of the mailbox.
func (s *Slot) C() <-chan Result { return s.ch }

// Push delivers r, dropping an undrained predecessor. Push after Close is a
// no-op.
func (s *Slot) Push(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for {
		select {
		case s.ch <- r:
			return
		default:
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// Close closes the mailbox. Idempotent.
func (s *Slot) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
