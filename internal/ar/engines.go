package ar

import (
	"sessiond/internal/engine"
	"sessiond/pkg/types"
)

// Engine variant identifiers.
const (
	// VariantSurface is the plane hit-test variant and the mode default.
	VariantSurface = "surface-v1"
	// VariantDepth adds depth-assisted hit refinement.
	VariantDepth = "surface-v2"
)

// Options selects the XR runtime for the registered variants.
type Options struct {
	// Runtime overrides the XR runtime; nil selects the simulated runtime.
	Runtime XRRuntime
}

// Register adds both AR variants to the registry.
func Register(reg *engine.Registry, opts Options) {
	reg.Register(types.EngineInfo{
		Mode:        types.ModeAR,
		Engine:      VariantSurface,
		Description: "Plane hit-test surface placement",
	}, func(deps engine.Deps) engine.Adapter {
		return New(Config{
			Variant:     VariantSurface,
			Description: "Plane hit-test surface placement",
			Runtime:     opts.Runtime,
		}, deps)
	})

	reg.Register(types.EngineInfo{
		Mode:        types.ModeAR,
		Engine:      VariantDepth,
		Description: "Depth-assisted surface placement",
	}, func(deps engine.Deps) engine.Adapter {
		return New(Config{
			Variant:     VariantDepth,
			Description: "Depth-assisted surface placement",
			Runtime:     opts.Runtime,
		}, deps)
	})
}
