package controller

import (
	"context"
	"time"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/session"
	"github.com/abhisek/studygenie/internal/transport"
)

// PollStatus fetches the agent status and replaces the stored one. A
// failed poll leaves the previous value in place and posts no notice.
func (c *Controller) PollStatus(ctx context.Context) (normalize.SystemStatus, error) {
	epoch := c.sessions.Epoch()
	raw, err := c.backend().SystemStatus(ctx)
	if err != nil {
		c.logger.Debug("status poll failed", "error", err)
		c.notifyStatus(StatusUpdate{Status: c.sessions.Current().LastSystemStatus, Err: err})
		return normalize.SystemStatus{}, err
	}

	st := normalize.NormalizeStatus(raw)
	if err := c.settle(transport.OpSystemStatus, epoch, func(tx *session.Tx) error {
		tx.SetSystemStatus(st)
		return nil
	}); err != nil {
		return normalize.SystemStatus{}, err
	}
	c.notifyStatus(StatusUpdate{Status: &st})
	return st, nil
}

// RunStatusPoller polls every interval until ctx is done. A tick only
// polls while someone is signed in and visible reports true. Polls run in
// their own goroutine and may overlap; they are idempotent reads.
func (c *Controller) RunStatusPoller(ctx context.Context, interval time.Duration, visible func() bool) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !c.sessions.Active() || (visible != nil && !visible()) {
				continue
			}
			go c.PollStatus(ctx)
		}
	}
}

// TriggerDemo asks the backend to post demo events and schedules a status
// refresh shortly after so the agents' reactions show up.
func (c *Controller) TriggerDemo(ctx context.Context) error {
	epoch := c.sessions.Epoch()
	c.notices.Info("Triggering autonomous agent behavior...")
	if _, err := c.backend().TriggerDemo(ctx); err != nil {
		c.reportFailure(transport.OpDemo, err)
		return err
	}
	c.notices.Success("Autonomous behavior triggered! Check system status.")

	c.after(c.demoRefresh, func() {
		if c.sessions.Epoch() != epoch {
			return
		}
		_, _ = c.PollStatus(context.WithoutCancel(ctx))
	})
	return nil
}

// CheckHealth pings the backend root.
func (c *Controller) CheckHealth(ctx context.Context) error {
	_, err := c.backend().Health(ctx)
	return err
}
