package types

// SwitchRequest asks the daemon to change the active mode/engine.
type SwitchRequest struct {
	// Target mode: none, ar, or pose.
	// example: pose
	Mode Mode `json:"mode" example:"pose"`
	// Engine identifier within the mode. Optional for mode=none; when empty
	// for ar/pose the daemon's default engine for that mode is used.
	// example: movenet
	Engine string `json:"engine,omitempty" example:"movenet"`
}

// StatusResponse is the read-only projection returned by GET /status.
type StatusResponse struct {
	// Coordinator lifecycle state (idle, switching_out, switching_in, active).
	// example: active
	State string `json:"state" example:"active"`
	// Current mode.
	// example: pose
	Mode Mode `json:"mode" example:"pose"`
	// Engine of the current session, empty when mode is none.
	// example: movenet
	Engine string `json:"engine,omitempty" example:"movenet"`
	// Identifier of the live session, empty when mode is none.
	// example: 6a1f0d5e-8f2c-4f0b-9c36-3f9d1a2b4c5d
	SessionID string `json:"session_id,omitempty"`
	// Seconds since the current session started.
	// example: 12
	UptimeSec int64 `json:"uptime_sec,omitempty" example:"12"`
	// Number of live capture tracks held by the current session.
	// example: 1
	CaptureTracks int `json:"capture_tracks" example:"1"`
	// Number of objects placed in the current AR session.
	// example: 3
	Placements int `json:"placements" example:"3"`
	// Last switch failure, empty after a successful switch.
	// example: camera permission denied
	Error string `json:"error,omitempty"`
}

// EnginesResponse wraps the list of selectable engines for GET /engines.
type EnginesResponse struct {
	Engines []EngineInfo `json:"engines"`
}

// PlaceResponse reports the placement count after POST /place.
type PlaceResponse struct {
	// Total placements in the current AR session.
	// example: 4
	Placements int `json:"placements" example:"4"`
	// Pose of the newly placed marker.
	Pose Pose `json:"pose"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: switch already in progress
	Error string `json:"error" example:"switch already in progress"`
	// HTTP status code.
	// example: 409
	Code int `json:"code" example:"409"`
}
