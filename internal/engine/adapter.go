// Package engine defines the uniform lifecycle contract every AR and pose
// engine wrapper satisfies, plus the registry the session coordinator uses
// to construct adapters at switch time.
package engine

import (
	"context"

	"github.com/rs/zerolog"

	"sessiond/internal/capture"
	"sessiond/pkg/types"
)

// Adapter wraps one concrete AR or pose-estimation engine behind a uniform
// start/stop/result contract.
//
// Start acquires the camera stream and any GPU/model resources and begins
// producing results. On failure it must release everything it partially
// acquired before returning; the error carries the failure taxonomy of this
// package (IsPermissionDenied, IsUnsupportedDevice, ...).
//
// Stop halts the per-frame loop, releases the detector/context, and stops
// every capture track individually. Stop is idempotent.
//
// Results is a single-slot latest-value feed: a new result replaces an
// undrained predecessor. The channel is closed by Stop, which is the
// cancellation signal for consumers.
type Adapter interface {
	Start(ctx context.Context) error
	Stop() error
	Active() bool
	Results() <-chan Result
	Describe() types.EngineInfo
}

// Resetter is implemented by adapters with resettable per-session UI state
// (the AR placement markers and counter).
type Resetter interface {
	Reset() error
}

// Placer is implemented by adapters that accept a discrete placement tap.
type Placer interface {
	Place() (Placement, error)
}

// TrackCounter reports how many live capture tracks the adapter holds.
type TrackCounter interface {
	CaptureTracks() int
}

// PlacementCounter reports the active session's placement count for status
// display.
type PlacementCounter interface {
	Placements() int
}

// Deps carries the injected collaborators every factory receives.
type Deps struct {
	Capture       capture.Opener
	CaptureConfig capture.Config
	Log           zerolog.Logger
}

// Result is a transient per-frame or per-tap value pushed to the shell.
type Result interface{ isResult() }

// PoseFrame is one set of keypoints from a pose engine, already filtered to
// the engine's confidence threshold, with wrists flagged for highlighting.
type PoseFrame struct {
	Engine    string           `json:"engine"`
	Seq       uint64           `json:"seq"`
	Keypoints []types.Keypoint `json:"keypoints"`
}

// SurfaceUpdate is the AR reticle state: whether a placement surface is
// currently detected and at which pose.
type SurfaceUpdate struct {
	Found bool       `json:"found"`
	Pose  types.Pose `json:"pose"`
}

// Placement is one placed marker in an AR session.
type Placement struct {
	Seq  int        `json:"seq"`
	Pose types.Pose `json:"pose"`
}

func (*PoseFrame) isResult()     {}
func (*SurfaceUpdate) isResult() {}
func (*Placement) isResult()     {}
