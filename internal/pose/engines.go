package pose

import (
	"sessiond/internal/engine"
	"sessiond/pkg/types"
)

// Engine identifiers.
const (
	EngineMoveNet   = "movenet"
	EngineBlazePose = "blazepose"
)

// Options selects the model sources for the registered engines.
type Options struct {
	MoveNetModel   string
	BlazePoseModel string
	// Demo runs both engines on the synthetic detector.
	Demo bool
}

// Register adds both pose engines to the registry. MoveNet registers first
// and is the mode default.
func Register(reg *engine.Registry, opts Options) {
	reg.Register(types.EngineInfo{
		Mode:           types.ModePose,
		Engine:         EngineMoveNet,
		Description:    "MoveNet single-pose (17 keypoints)",
		ScoreThreshold: 0.5,
	}, func(deps engine.Deps) engine.Adapter {
		return New(Config{
			Engine:      EngineMoveNet,
			Description: "MoveNet single-pose (17 keypoints)",
			Threshold:   0.5,
			ModelPath:   opts.MoveNetModel,
			Demo:        opts.Demo,
			Names:       MoveNetKeypoints,
		}, deps)
	})

	reg.Register(types.EngineInfo{
		Mode:           types.ModePose,
		Engine:         EngineBlazePose,
		Description:    "BlazePose full-body (33 keypoints)",
		ScoreThreshold: 0.3,
	}, func(deps engine.Deps) engine.Adapter {
		return New(Config{
			Engine:      EngineBlazePose,
			Description: "BlazePose full-body (33 keypoints)",
			Threshold:   0.3,
			ModelPath:   opts.BlazePoseModel,
			Demo:        opts.Demo,
			Names:       BlazePoseKeypoints,
		}, deps)
	})
}
