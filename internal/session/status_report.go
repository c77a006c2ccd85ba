package session

import (
	"time"

	"sessiond/internal/engine"
	"sessiond/pkg/types"
)

// Status builds the detailed status response for /status.
func (c *Coordinator) Status() types.StatusResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()
	resp := types.StatusResponse{
		State: string(c.state),
		Mode:  types.ModeNone,
		Error: c.lastErr,
	}
	if c.cur == nil {
		return resp
	}
	resp.Mode = c.sel.Mode
	resp.Engine = c.sel.Engine
	resp.SessionID = c.sessionID
	resp.UptimeSec = int64(time.Since(c.startedAt) / time.Second)
	if tc, ok := c.cur.(engine.TrackCounter); ok {
		resp.CaptureTracks = tc.CaptureTracks()
	}
	if pc, ok := c.cur.(engine.PlacementCounter); ok {
		resp.Placements = pc.Placements()
	}
	return resp
}
