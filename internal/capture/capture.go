// Package capture provides camera stream acquisition for engine sessions.
// A Stream is a bundle of individually stoppable tracks plus a frame feed;
// exactly one engine session may hold a stream at a time, enforced by the
// session coordinator rather than by this package.
package capture

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Config selects the device and capture parameters for Open.
type Config struct {
	Device string
	Width  int
	Height int
	FPS    int
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	return c
}

// Frame is one captured video frame. Data may be nil for backends that only
// report frame timing (the synthetic opener).
type Frame struct {
	Seq    uint64
	Width  int
	Height int
	TS     time.Time
	Data   []byte
}

// Opener acquires a camera stream. Implementations: Synthetic (default) and
// the GStreamer backend behind the 'gst' build tag.
type Opener interface {
	Open(ctx context.Context, cfg Config) (*Stream, error)
}

// Track is one media track of a stream. Stop is idempotent.
type Track struct {
	id     string
	kind   string
	stop   sync.Once
	onStop func()

	mu      sync.Mutex
	stopped bool
}

func (t *Track) ID() string   { return t.id }
func (t *Track) Kind() string { return t.kind }

// Stop halts this track. Calling Stop on an already stopped track is a no-op.
func (t *Track) Stop() {
	t.stop.Do(func() {
		t.mu.Lock()
		t.stopped = true
		t.mu.Unlock()
		if t.onStop != nil {
			t.onStop()
		}
	})
}

// Stopped reports whether the track has been stopped.
func (t *Track) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Stream is a live capture session: one or more tracks plus a frame feed.
// The frame channel is closed once every track has stopped.
type Stream struct {
	id     string
	device string

	mu     sync.Mutex
	tracks []*Track
	live   int
	done   chan struct{}
	frames chan Frame
}

// newStream builds a stream with n video tracks. The caller is responsible
// for feeding s.frames from a producer goroutine that exits on s.done.
func newStream(device string, n int) *Stream {
	s := &Stream{
		id:     uuid.NewString(),
		device: device,
		done:   make(chan struct{}),
		frames: make(chan Frame, 1),
	}
	for i := 0; i < n; i++ {
		t := &Track{id: uuid.NewString(), kind: "video"}
		t.onStop = s.trackStopped
		s.tracks = append(s.tracks, t)
	}
	s.live = n
	return s
}

func (s *Stream) trackStopped() {
	s.mu.Lock()
	s.live--
	last := s.live == 0
	s.mu.Unlock()
	if last {
		close(s.done)
	}
}

func (s *Stream) ID() string     { return s.id }
func (s *Stream) Device() string { return s.device }

// Tracks returns the stream's tracks.
func (s *Stream) Tracks() []*Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// ActiveTracks counts tracks that have not been stopped.
func (s *Stream) ActiveTracks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Frames is the per-frame feed. It carries the latest frame only: a new
// frame replaces an undrained predecessor. Closed after the last track stops.
func (s *Stream) Frames() <-chan Frame { return s.frames }

// Stop stops every track individually. Idempotent.
func (s *Stream) Stop() {
	for _, t := range s.Tracks() {
		t.Stop()
	}
}

// push delivers a frame, replacing an undrained one. Returns false once the
// stream is done. Only the producer goroutine may call push.
func (s *Stream) push(f Frame) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	for {
		select {
		case s.frames <- f:
			return true
		case <-s.done:
			return false
		default:
			select {
			case <-s.frames:
			default:
			}
		}
	}
}
