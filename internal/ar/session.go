// Package ar implements the AR surface-placement engine adapters: a camera
// stream plus an XR hit-test context, a per-frame reticle feed, and the
// place/reset operations on the active session.
package ar

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sessiond/internal/capture"
	"sessiond/internal/engine"
	"sessiond/pkg/types"
)

// ErrNoSurface is returned by Place when no placement surface is currently
// detected.
var ErrNoSurface = errors.New("no surface detected")

// Config tunes one AR session adapter.
type Config struct {
	Variant     string
	Description string
	// Runtime provides the XR/hit-test context; nil selects the simulated
	// runtime.
	Runtime XRRuntime
}

// Session is the AR engine adapter. The placement counter is owned by the
// adapter instance and starts at zero on every fresh construction.
type Session struct {
	cfg  Config
	deps engine.Deps
	slot *engine.Slot

	mu           sync.Mutex
	active       bool
	stream       *capture.Stream
	xr           XRContext
	loopDone     chan struct{}
	placements   []engine.Placement
	surface      types.Pose
	surfaceFound bool
}

// New constructs a fresh, inactive AR session adapter.
func New(cfg Config, deps engine.Deps) *Session {
	if cfg.Runtime == nil {
		cfg.Runtime = &simulatedRuntime{warmupFrames: 5, depthAssist: cfg.Variant == VariantDepth}
	}
	return &Session{cfg: cfg, deps: deps, slot: engine.NewSlot()}
}

func (s *Session) Describe() types.EngineInfo {
	return types.EngineInfo{
		Mode:        types.ModeAR,
		Engine:      s.cfg.Variant,
		Description: s.cfg.Description,
	}
}

func (s *Session) Results() <-chan engine.Result { return s.slot.C() }

func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// CaptureTracks reports live capture tracks for status and leak checks.
func (s *Session) CaptureTracks() int {
	s.mu.Lock()
	st := s.stream
	s.mu.Unlock()
	if st == nil {
		return 0
	}
	return st.ActiveTracks()
}

// Placements reports the current placement count.
func (s *Session) Placements() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.placements)
}

// Start acquires the camera and the XR context and begins the hit-test
// loop. On failure every partially acquired resource is released before
// returning.
func (s *Session) Start(ctx context.Context) error {
	stream, err := s.deps.Capture.Open(ctx, s.deps.CaptureConfig)
	if err != nil {
		return err
	}
	xr, err := s.cfg.Runtime.CreateContext(ctx)
	if err != nil {
		stream.Stop()
		return err
	}

	s.mu.Lock()
	s.active = true
	s.stream = stream
	s.xr = xr
	s.loopDone = make(chan struct{})
	s.mu.Unlock()

	go s.loop(stream, xr)
	return nil
}

// loop runs until the frame feed closes (all tracks stopped). Each frame
// updates the reticle state pushed to the shell.
func (s *Session) loop(stream *capture.Stream, xr XRContext) {
	defer close(s.loopDone)
	for f := range stream.Frames() {
		pose, found := xr.HitTest(f)
		s.mu.Lock()
		s.surface = pose
		s.surfaceFound = found
		s.mu.Unlock()
		s.slot.Push(&engine.SurfaceUpdate{Found: found, Pose: pose})
	}
}

// Place instantiates a marker at the current surface pose and increments the
// display counter.
func (s *Session) Place() (engine.Placement, error) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return engine.Placement{}, errors.New("session not active")
	}
	if !s.surfaceFound {
		s.mu.Unlock()
		return engine.Placement{}, ErrNoSurface
	}
	p := engine.Placement{Seq: len(s.placements) + 1, Pose: s.surface}
	s.placements = append(s.placements, p)
	s.mu.Unlock()
	s.slot.Push(&p)
	return p, nil
}

// Reset removes all placed markers and zeroes the counter while leaving the
// session (camera and XR context) untouched.
func (s *Session) Reset() error {
	s.mu.Lock()
	s.placements = nil
	s.mu.Unlock()
	return nil
}

// Stop halts the loop, disposes the XR context, and stops every capture
// track individually. Idempotent; teardown errors are reported but never
// block.
func (s *Session) Stop() error {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return nil
	}
	s.active = false
	stream := s.stream
	xr := s.xr
	loopDone := s.loopDone
	s.mu.Unlock()

	stream.Stop()
	<-loopDone

	var err error
	if xr != nil {
		if derr := xr.Dispose(); derr != nil {
			err = fmt.Errorf("xr dispose: %w", derr)
		}
	}
	s.slot.Close()
	return err
}
