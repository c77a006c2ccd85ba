package session

import (
	"time"

	"sessiond/pkg/types"
)

// State is the coordinator lifecycle state. Requests are rejected only in
// the two switching states; the machine is long-lived with no terminal
// state short of process shutdown.
type State string

const (
	StateIdle         State = "idle"
	StateSwitchingOut State = "switching_out"
	StateSwitchingIn  State = "switching_in"
	StateActive       State = "active"
)

// Snapshot is a read-only projection of the coordinator state.
type Snapshot struct {
	State     State
	Mode      types.Mode
	Engine    string
	SessionID string
	StartedAt time.Time
	Err       string
}
