package types

// Mode is the top-level application state: no active capability, AR surface
// placement, or skeletal pose tracking. Exactly one mode is current at any
// time; ModeNone is both the initial state and the state after teardown.
type Mode string

const (
	ModeNone Mode = "none"
	ModeAR   Mode = "ar"
	ModePose Mode = "pose"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeNone, ModeAR, ModePose:
		return true
	}
	return false
}

// EngineInfo describes one selectable engine implementation.
type EngineInfo struct {
	// Mode this engine serves.
	// example: pose
	Mode Mode `json:"mode" example:"pose"`
	// Stable engine identifier.
	// example: movenet
	Engine string `json:"engine" example:"movenet"`
	// Human-friendly description.
	// example: MoveNet single-pose (17 keypoints)
	Description string `json:"description,omitempty" example:"MoveNet single-pose (17 keypoints)"`
	// Minimum keypoint confidence rendered by the shell, if applicable.
	// example: 0.5
	ScoreThreshold float64 `json:"score_threshold,omitempty" example:"0.5"`
}

// Keypoint is a named anatomical landmark with position and confidence,
// produced by a pose-estimation engine. Positions are normalized to [0,1]
// in frame coordinates; Z is depth where the engine provides it.
type Keypoint struct {
	// Landmark name.
	// example: left_wrist
	Name string  `json:"name" example:"left_wrist"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z,omitempty"`
	// Confidence score in [0,1].
	// example: 0.87
	Score float64 `json:"score" example:"0.87"`
	// Highlight marks keypoints the shell renders distinctly (wrists).
	Highlight bool `json:"highlight,omitempty"`
}

// Pose is a 3D position plus orientation quaternion for AR placement.
type Pose struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
	QX float64 `json:"qx"`
	QY float64 `json:"qy"`
	QZ float64 `json:"qz"`
	QW float64 `json:"qw"`
}
