package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"sessiond/internal/engine"
	"sessiond/pkg/types"
)

// Coordinator holds at most one active engine adapter and serializes all
// mode transitions through RequestSwitch. It is owned by the application
// root and injected into the HTTP layer; never a package-level singleton.
type Coordinator struct {
	cfg Config
	log zerolog.Logger
	pub EventPublisher

	// switchCh is the pending-switch guard: one slot, held for the full
	// duration of a switch. A full slot means "busy".
	switchCh chan struct{}

	mu        sync.RWMutex
	state     State
	sel       engine.Selection
	cur       engine.Adapter
	sessionID string
	startedAt time.Time
	lastErr   string
	pumpDone  chan struct{}
}

// CurrentMode returns the mode of the live session, ModeNone when idle.
// Pure read, no side effects.
func (c *Coordinator) CurrentMode() types.Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cur == nil {
		return types.ModeNone
	}
	return c.sel.Mode
}

// Snapshot returns a read-only view of the coordinator state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		State:     c.state,
		Mode:      c.sel.Mode,
		Engine:    c.sel.Engine,
		SessionID: c.sessionID,
		StartedAt: c.startedAt,
		Err:       c.lastErr,
	}
}

// Engines lists the registered engine selections.
func (c *Coordinator) Engines() []types.EngineInfo {
	return c.cfg.Registry.List()
}

// Ready reports whether the coordinator can accept requests. It is true
// from construction on; /readyz distinguishes it from a wedged process.
func (c *Coordinator) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == StateIdle || c.state == StateActive
}

// Close tears down any active session for process shutdown. It waits for a
// pending switch to resolve, bounded by ctx.
func (c *Coordinator) Close(ctx context.Context) error {
	select {
	case c.switchCh <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-c.switchCh }()

	c.mu.Lock()
	cur := c.cur
	sel := c.sel
	pumpDone := c.pumpDone
	c.cur = nil
	c.sel = engine.Selection{Mode: types.ModeNone}
	c.sessionID = ""
	c.state = StateIdle
	c.mu.Unlock()

	if cur != nil {
		if err := cur.Stop(); err != nil {
			c.warnTeardown(sel, err)
		}
		if pumpDone != nil {
			<-pumpDone
		}
	}
	setActiveMode(types.ModeNone)
	return nil
}

func (c *Coordinator) warnTeardown(sel engine.Selection, err error) {
	teardownWarnings.Inc()
	c.log.Warn().Err(err).
		Str("mode", string(sel.Mode)).
		Str("engine", sel.Engine).
		Msg("teardown warning")
}

// pump drains the adapter's result feed into the event publisher until the
// adapter closes it on Stop.
func (c *Coordinator) pump(ad engine.Adapter, sel engine.Selection, sessionID string, done chan struct{}) {
	defer close(done)
	for r := range ad.Results() {
		c.pub.Publish(Event{
			Name:   "result",
			Mode:   sel.Mode,
			Engine: sel.Engine,
			Fields: map[string]any{"session_id": sessionID, "data": r},
		})
	}
}
