package ar

import (
	"context"
	"math"

	"sessiond/internal/capture"
	"sessiond/pkg/types"
)

// XRRuntime creates the rendering/hit-test context an AR session owns. The
// real AR stack is an external collaborator; the daemon only drives its
// lifecycle and consumes its placement poses.
type XRRuntime interface {
	CreateContext(ctx context.Context) (XRContext, error)
}

// XRContext is a live rendering/hit-test context. HitTest reports the
// placement pose for the current frame's center ray and whether a surface
// is detected. Dispose releases the GPU/XR resources; idempotent.
type XRContext interface {
	HitTest(f capture.Frame) (types.Pose, bool)
	Dispose() error
}

// simulatedRuntime stands in for a real AR stack: no surface during a short
// warmup, then a gently drifting horizontal plane. It keeps the full
// session lifecycle exercisable on devices without an XR runtime.
type simulatedRuntime struct {
	warmupFrames uint64
	depthAssist  bool
}

func (r *simulatedRuntime) CreateContext(ctx context.Context) (XRContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &simulatedContext{warmup: r.warmupFrames, depthAssist: r.depthAssist}, nil
}

type simulatedContext struct {
	warmup      uint64
	depthAssist bool
	disposed    bool
}

func (c *simulatedContext) HitTest(f capture.Frame) (types.Pose, bool) {
	if c.disposed || f.Seq < c.warmup {
		return types.Pose{}, false
	}
	t := float64(f.Seq) * 0.05
	p := types.Pose{
		X:  0.1 * math.Sin(t),
		Y:  -0.4,
		Z:  -1.0 + 0.05*math.Cos(t),
		QW: 1,
	}
	if c.depthAssist {
		// Depth-assisted variant refines the hit distance.
		p.Z += 0.02 * math.Sin(t*3)
	}
	return p, true
}

func (c *simulatedContext) Dispose() error {
	c.disposed = true
	return nil
}
