package capture

import (
	"context"
	"time"
)

// Synthetic is the default opener. It produces timing-only frames at the
// configured rate without touching any device, which keeps the no-cgo build
// and the test suite independent of real camera hardware.
type Synthetic struct {
	// Err, when set, makes Open fail with it (permission/capability
	// simulation for tests).
	Err error
	// TrackCount overrides the number of tracks (default 1).
	TrackCount int
}

// Open starts a synthetic stream. The producer goroutine exits when all
// tracks are stopped and then closes the frame feed.
func (o *Synthetic) Open(ctx context.Context, cfg Config) (*Stream, error) {
	if o.Err != nil {
		return nil, o.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	n := o.TrackCount
	if n <= 0 {
		n = 1
	}
	s := newStream(cfg.Device, n)
	interval := time.Second / time.Duration(cfg.FPS)
	go func() {
		defer close(s.frames)
		tick := time.NewTicker(interval)
		defer tick.Stop()
		var seq uint64
		for {
			select {
			case <-s.done:
				return
			case ts := <-tick.C:
				seq++
				if !s.push(Frame{Seq: seq, Width: cfg.Width, Height: cfg.Height, TS: ts}) {
					return
				}
			}
		}
	}()
	return s, nil
}
