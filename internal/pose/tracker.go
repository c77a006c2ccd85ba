// Package pose implements the pose-tracking engine adapters: two
// interchangeable detectors (MoveNet, BlazePose) over one shared
// capture-and-detect loop.
package pose

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"sessiond/internal/capture"
	"sessiond/internal/engine"
	"sessiond/pkg/types"
)

// Config tunes one tracker instance.
type Config struct {
	Engine      string
	Description string
	// Threshold is the minimum keypoint confidence forwarded to the shell.
	Threshold float64
	// ModelPath is a local file path or http(s) URL for the model; unused in
	// demo mode.
	ModelPath string
	// Demo substitutes the synthetic detector for the real runtime.
	Demo  bool
	Names []string
	// Factory overrides the detector backend (tests). Nil selects tflite or
	// the synthetic detector per Demo.
	Factory DetectorFactory
	// Client used for model fetches; nil means http.DefaultClient.
	Client *http.Client
}

// Tracker is the pose engine adapter. It owns the camera stream and the
// detector for the lifetime of one session.
type Tracker struct {
	cfg  Config
	deps engine.Deps
	slot *engine.Slot

	mu       sync.Mutex
	active   bool
	stream   *capture.Stream
	det      Detector
	loopDone chan struct{}
}

// New constructs a fresh, inactive tracker.
func New(cfg Config, deps engine.Deps) *Tracker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = 0.5
	}
	return &Tracker{cfg: cfg, deps: deps, slot: engine.NewSlot()}
}

func (t *Tracker) Describe() types.EngineInfo {
	return types.EngineInfo{
		Mode:           types.ModePose,
		Engine:         t.cfg.Engine,
		Description:    t.cfg.Description,
		ScoreThreshold: t.cfg.Threshold,
	}
}

func (t *Tracker) Results() <-chan engine.Result { return t.slot.C() }

func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// CaptureTracks reports live capture tracks for status and leak checks.
func (t *Tracker) CaptureTracks() int {
	t.mu.Lock()
	s := t.stream
	t.mu.Unlock()
	if s == nil {
		return 0
	}
	return s.ActiveTracks()
}

// Start acquires the camera, loads the detector, and begins the per-frame
// loop. On any failure every partially acquired resource is released before
// returning.
func (t *Tracker) Start(ctx context.Context) error {
	stream, err := t.deps.Capture.Open(ctx, t.deps.CaptureConfig)
	if err != nil {
		return err
	}

	det, err := t.buildDetector(ctx)
	if err != nil {
		stream.Stop()
		return err
	}

	t.mu.Lock()
	t.active = true
	t.stream = stream
	t.det = det
	t.loopDone = make(chan struct{})
	t.mu.Unlock()

	go t.loop(stream, det)
	return nil
}

func (t *Tracker) buildDetector(ctx context.Context) (Detector, error) {
	factory := t.cfg.Factory
	if factory == nil {
		if t.cfg.Demo {
			factory = newSyntheticDetector
		} else {
			factory = newTFLiteDetector
		}
	}
	cfg := DetectorConfig{Engine: t.cfg.Engine, Names: t.cfg.Names}
	if !t.cfg.Demo && t.cfg.Factory == nil {
		data, err := t.loadModel(ctx)
		if err != nil {
			return nil, err
		}
		cfg.Model = data
	}
	return factory(cfg)
}

func (t *Tracker) loadModel(ctx context.Context) ([]byte, error) {
	p := t.cfg.ModelPath
	if p == "" {
		return nil, engine.ErrAssetLoad("no model configured for engine " + t.cfg.Engine)
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		client := t.cfg.Client
		if client == nil {
			client = http.DefaultClient
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p, nil)
		if err != nil {
			return nil, engine.ErrNetworkUnavailable(err.Error())
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, engine.ErrNetworkUnavailable("model fetch: " + err.Error())
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, engine.ErrNetworkUnavailable(fmt.Sprintf("model fetch: status %d", resp.StatusCode))
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, engine.ErrNetworkUnavailable("model fetch: " + err.Error())
		}
		return data, nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, engine.ErrAssetLoad("model read: " + err.Error())
	}
	return data, nil
}

// loop runs until the frame feed closes (all tracks stopped).
func (t *Tracker) loop(stream *capture.Stream, det Detector) {
	defer close(t.loopDone)
	for f := range stream.Frames() {
		kps, err := det.Detect(f)
		if err != nil {
			t.deps.Log.Warn().Err(err).Str("engine", t.cfg.Engine).Msg("detect failed, skipping frame")
			continue
		}
		out := make([]types.Keypoint, 0, len(kps))
		for _, kp := range kps {
			if kp.Score < t.cfg.Threshold {
				continue
			}
			kp.Highlight = isWrist(kp.Name)
			out = append(out, kp)
		}
		t.slot.Push(&engine.PoseFrame{Engine: t.cfg.Engine, Seq: f.Seq, Keypoints: out})
	}
}

// Stop halts the loop, stops every capture track individually, and releases
// the detector. Idempotent; teardown errors are reported but never block.
func (t *Tracker) Stop() error {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return nil
	}
	t.active = false
	stream := t.stream
	det := t.det
	loopDone := t.loopDone
	t.mu.Unlock()

	stream.Stop()
	<-loopDone

	var err error
	if det != nil {
		if cerr := det.Close(); cerr != nil {
			err = fmt.Errorf("detector close: %w", cerr)
		}
	}
	t.slot.Close()
	return err
}
