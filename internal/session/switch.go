package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sessiond/internal/engine"
	"sessiond/pkg/types"
)

// RequestSwitch changes the active mode/engine. At most one switch may be
// in flight; a request arriving while one is pending is rejected with a
// busy error and causes zero state change. Teardown of the previous session
// is always fully sequenced (stop, pump drain, settle window) before the
// next adapter is constructed. Re-entering the current mode with any engine
// is a full teardown and rebuild, never an in-place swap.
//
// On start failure the typed engine error is returned, the mode is None,
// and no partial session remains installed.
func (c *Coordinator) RequestSwitch(ctx context.Context, target engine.Selection) error {
	if !target.Mode.Valid() {
		return ErrInvalidMode(string(target.Mode))
	}
	if target.Mode != types.ModeNone {
		var err error
		if target, err = c.cfg.Registry.Resolve(target); err != nil {
			return err
		}
	}

	select {
	case c.switchCh <- struct{}{}:
	default:
		switchesTotal.WithLabelValues("busy").Inc()
		return ErrSwitchBusy()
	}
	defer func() { <-c.switchCh }()

	began := time.Now()
	c.pub.Publish(Event{Name: "switch_start", Mode: target.Mode, Engine: target.Engine})

	c.mu.Lock()
	prev := c.cur
	prevSel := c.sel
	prevPump := c.pumpDone
	if prev != nil {
		c.state = StateSwitchingOut
	} else if target.Mode != types.ModeNone {
		c.state = StateSwitchingIn
	}
	c.mu.Unlock()

	if prev != nil {
		c.pub.Publish(Event{Name: "teardown_start", Mode: prevSel.Mode, Engine: prevSel.Engine})
		if err := prev.Stop(); err != nil {
			c.warnTeardown(prevSel, err)
		}
		if prevPump != nil {
			<-prevPump
		}
		c.mu.Lock()
		c.cur = nil
		c.sel = engine.Selection{Mode: types.ModeNone}
		c.sessionID = ""
		c.pumpDone = nil
		c.mu.Unlock()
		setActiveMode(types.ModeNone)
		c.pub.Publish(Event{Name: "teardown_done", Mode: prevSel.Mode, Engine: prevSel.Engine})

		if d := c.cfg.SettleDelay; d > 0 {
			settleBegan := time.Now()
			select {
			case <-time.After(d):
			case <-ctx.Done():
				c.setIdle(ctx.Err().Error())
				switchesTotal.WithLabelValues("canceled").Inc()
				return ctx.Err()
			}
			settleDuration.Observe(time.Since(settleBegan).Seconds())
			c.pub.Publish(Event{Name: "settle_done", Mode: prevSel.Mode, Engine: prevSel.Engine})
		}
	}

	if target.Mode == types.ModeNone {
		c.setIdle("")
		c.pub.Publish(Event{Name: "switch_done", Mode: types.ModeNone})
		switchesTotal.WithLabelValues("success").Inc()
		switchDuration.Observe(time.Since(began).Seconds())
		return nil
	}

	c.mu.Lock()
	c.state = StateSwitchingIn
	c.mu.Unlock()

	ad, err := c.cfg.Registry.New(target, c.cfg.Deps)
	if err != nil {
		c.failSwitch(target, err)
		return err
	}

	startCtx := ctx
	if d := c.cfg.StartTimeout; d > 0 {
		var cancel context.CancelFunc
		startCtx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	if err := ad.Start(startCtx); err != nil {
		c.failSwitch(target, err)
		return err
	}

	sessionID := uuid.NewString()
	pumpDone := make(chan struct{})
	c.mu.Lock()
	c.cur = ad
	c.sel = target
	c.state = StateActive
	c.sessionID = sessionID
	c.startedAt = time.Now()
	c.lastErr = ""
	c.pumpDone = pumpDone
	c.mu.Unlock()
	setActiveMode(target.Mode)

	go c.pump(ad, target, sessionID, pumpDone)

	c.log.Info().
		Str("mode", string(target.Mode)).
		Str("engine", target.Engine).
		Str("session_id", sessionID).
		Dur("dur", time.Since(began)).
		Msg("session started")
	c.pub.Publish(Event{Name: "switch_done", Mode: target.Mode, Engine: target.Engine,
		Fields: map[string]any{"session_id": sessionID}})
	switchesTotal.WithLabelValues("success").Inc()
	switchDuration.Observe(time.Since(began).Seconds())
	return nil
}

func (c *Coordinator) setIdle(errMsg string) {
	c.mu.Lock()
	c.state = StateIdle
	c.sel = engine.Selection{Mode: types.ModeNone}
	c.cur = nil
	c.sessionID = ""
	c.lastErr = errMsg
	c.mu.Unlock()
	setActiveMode(types.ModeNone)
}

func (c *Coordinator) failSwitch(target engine.Selection, err error) {
	c.setIdle(err.Error())
	c.log.Warn().Err(err).
		Str("mode", string(target.Mode)).
		Str("engine", target.Engine).
		Msg("switch failed")
	c.pub.Publish(Event{Name: "switch_failed", Mode: target.Mode, Engine: target.Engine,
		Fields: map[string]any{"error": err.Error()}})
	switchesTotal.WithLabelValues(failureOutcome(err)).Inc()
}

// failureOutcome buckets a start failure for the switches_total metric.
func failureOutcome(err error) string {
	switch {
	case engine.IsPermissionDenied(err):
		return "permission_denied"
	case engine.IsUnsupportedDevice(err):
		return "unsupported_device"
	case engine.IsNetworkUnavailable(err):
		return "network_unavailable"
	case engine.IsAssetLoad(err):
		return "asset_load"
	default:
		return "acquisition_failure"
	}
}
