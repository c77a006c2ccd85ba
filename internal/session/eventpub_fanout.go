package session

import "sync"

// FanoutPublisher distributes events to any number of subscribers; the SSE
// endpoint subscribes one channel per connected client. Slow subscribers
// drop events rather than block the coordinator.
type FanoutPublisher struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
	buf  int
}

// NewFanout creates a fan-out publisher whose subscriber channels buffer up
// to buf events.
func NewFanout(buf int) *FanoutPublisher {
	if buf <= 0 {
		buf = 64
	}
	return &FanoutPublisher{subs: make(map[int]chan Event), buf: buf}
}

func (p *FanoutPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a new subscriber. The returned cancel func must be
// called to release it; the channel is closed on cancel.
func (p *FanoutPublisher) Subscribe() (<-chan Event, func()) {
	p.mu.Lock()
	id := p.next
	p.next++
	ch := make(chan Event, p.buf)
	p.subs[id] = ch
	p.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}
