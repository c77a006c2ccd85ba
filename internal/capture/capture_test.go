package capture

import (
	"context"
	"errors"
	"testing"
	"time"
)

func openSynthetic(t *testing.T, cfg Config) *Stream {
	t.Helper()
	s, err := (&Synthetic{}).Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestSyntheticProducesFrames(t *testing.T) {
	s := openSynthetic(t, Config{FPS: 200})
	defer s.Stop()

	select {
	case f := <-s.Frames():
		if f.Width != 640 || f.Height != 480 {
			t.Fatalf("defaults not applied: %+v", f)
		}
		if f.Seq == 0 {
			t.Fatal("seq should start at 1")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame produced")
	}
}

func TestTrackStopIsIdempotent(t *testing.T) {
	s := openSynthetic(t, Config{FPS: 200})
	tracks := s.Tracks()
	if len(tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(tracks))
	}
	tr := tracks[0]
	tr.Stop()
	tr.Stop() // second stop is a no-op
	if !tr.Stopped() {
		t.Fatal("track should report stopped")
	}
	if got := s.ActiveTracks(); got != 0 {
		t.Fatalf("expected 0 active tracks, got %d", got)
	}
}

func TestFramesClosedAfterLastTrackStops(t *testing.T) {
	s, err := (&Synthetic{TrackCount: 2}).Open(context.Background(), Config{FPS: 200})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	tracks := s.Tracks()
	tracks[0].Stop()
	if got := s.ActiveTracks(); got != 1 {
		t.Fatalf("expected 1 active track, got %d", got)
	}
	// Feed stays open while one track lives.
	select {
	case _, open := <-s.Frames():
		if !open {
			t.Fatal("feed closed with a live track remaining")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame with a live track")
	}

	tracks[1].Stop()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-s.Frames():
			if !open {
				return // closed as expected
			}
		case <-deadline:
			t.Fatal("frame feed not closed after last track stopped")
		}
	}
}

func TestStreamStopStopsEveryTrack(t *testing.T) {
	s, err := (&Synthetic{TrackCount: 3}).Open(context.Background(), Config{FPS: 200})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Stop()
	s.Stop() // idempotent
	for _, tr := range s.Tracks() {
		if !tr.Stopped() {
			t.Fatalf("track %s not stopped", tr.ID())
		}
	}
	if got := s.ActiveTracks(); got != 0 {
		t.Fatalf("expected 0 active tracks, got %d", got)
	}
}

func TestFrameFeedKeepsLatestOnly(t *testing.T) {
	s := openSynthetic(t, Config{FPS: 500})
	defer s.Stop()

	// Let several frames pass undrained, then read: we must observe the
	// latest frame, not the first.
	time.Sleep(50 * time.Millisecond)
	f := <-s.Frames()
	if f.Seq <= 1 {
		t.Fatalf("expected a later frame, got seq %d", f.Seq)
	}
}

func TestOpenFailurePropagates(t *testing.T) {
	boom := errors.New("device busy")
	_, err := (&Synthetic{Err: boom}).Open(context.Background(), Config{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
}

func TestOpenRespectsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (&Synthetic{}).Open(ctx, Config{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestTracksHaveDistinctIDs(t *testing.T) {
	s, err := (&Synthetic{TrackCount: 2}).Open(context.Background(), Config{FPS: 200})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Stop()
	tracks := s.Tracks()
	if tracks[0].ID() == tracks[1].ID() {
		t.Fatal("track ids must be unique")
	}
	if tracks[0].Kind() != "video" {
		t.Fatalf("unexpected kind %q", tracks[0].Kind())
	}
}
