package session

import (
	"sessiond/internal/engine"
)

// Reset clears the active session's resettable UI state (AR placement
// markers and counter) while leaving the session itself untouched.
func (c *Coordinator) Reset() error {
	c.mu.RLock()
	cur := c.cur
	sel := c.sel
	c.mu.RUnlock()
	if cur == nil {
		return ErrNoSession()
	}
	r, ok := cur.(engine.Resetter)
	if !ok {
		return ErrUnsupportedOp("reset", string(sel.Mode))
	}
	if err := r.Reset(); err != nil {
		return err
	}
	c.pub.Publish(Event{Name: "reset", Mode: sel.Mode, Engine: sel.Engine})
	return nil
}

// Place forwards a user placement tap to the active AR session.
func (c *Coordinator) Place() (engine.Placement, error) {
	c.mu.RLock()
	cur := c.cur
	sel := c.sel
	c.mu.RUnlock()
	if cur == nil {
		return engine.Placement{}, ErrNoSession()
	}
	p, ok := cur.(engine.Placer)
	if !ok {
		return engine.Placement{}, ErrUnsupportedOp("place", string(sel.Mode))
	}
	placed, err := p.Place()
	if err != nil {
		return engine.Placement{}, err
	}
	c.pub.Publish(Event{Name: "place", Mode: sel.Mode, Engine: sel.Engine,
		Fields: map[string]any{"seq": placed.Seq}})
	return placed, nil
}
