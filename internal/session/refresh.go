package session

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/julianstephens/habitflow/internal/errors"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/storage"
)

// RefreshAll reloads the habit list and the dashboard statistics
// concurrently. Each result is committed on its own, so one failed fetch does
// not discard the other. The returned error joins both failures; each has
// already been reported to the notifier.
func (c *Controller) RefreshAll(ctx context.Context) error {
	epoch, ok := c.authorized()
	if !ok {
		return ErrNotAuthenticated
	}
	return c.refreshAll(ctx, epoch)
}

func (c *Controller) refreshAll(ctx context.Context, epoch uint64) error {
	c.setLoading(epoch, true)
	defer c.setLoading(epoch, false)

	habitsTicket := c.issueHabits()
	statsTicket := c.issueStats()

	var habitsErr, statsErr error
	var g errgroup.Group
	g.Go(func() error {
		habitsErr = c.loadHabits(ctx, epoch, habitsTicket)
		return nil
	})
	g.Go(func() error {
		statsErr = c.loadDashboard(ctx, epoch, statsTicket)
		return nil
	})
	_ = g.Wait()

	return errors.Join(habitsErr, statsErr)
}

// Refresh is the manual refresh intent
func (c *Controller) Refresh(ctx context.Context) error {
	epoch, ok := c.authorized()
	if !ok {
		return ErrNotAuthenticated
	}
	// a failed fetch has already raised its own notification
	if err := c.refreshAll(ctx, epoch); err != nil {
		return err
	}
	if c.live(epoch) {
		c.info("Dashboard refreshed.")
	}
	return nil
}

// RefreshHabits reloads only the habit list
func (c *Controller) RefreshHabits(ctx context.Context) error {
	epoch, ok := c.authorized()
	if !ok {
		return ErrNotAuthenticated
	}
	return c.loadHabits(ctx, epoch, c.issueHabits())
}

func (c *Controller) loadHabits(ctx context.Context, epoch, ticket uint64) error {
	habits, err := c.api.ListHabits(ctx)
	if err != nil {
		c.mu.Lock()
		if c.epoch == epoch && ticket > c.habitsApplied {
			c.habitsErr = err
		}
		c.mu.Unlock()
		c.reportRefreshError(epoch, "habits", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch || ticket <= c.habitsApplied {
		logger.Debug("Discarding stale habit list", "ticket", ticket)
		return nil
	}
	c.habits = models.CloneHabits(habits)
	c.habitsApplied = ticket
	c.habitsErr = nil
	return nil
}

func (c *Controller) loadDashboard(ctx context.Context, epoch, ticket uint64) error {
	stats, err := c.api.FetchDashboard(ctx)
	if err != nil {
		c.mu.Lock()
		if c.epoch == epoch && ticket > c.statsApplied {
			c.statsErr = err
		}
		c.mu.Unlock()
		c.reportRefreshError(epoch, "dashboard", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch || ticket <= c.statsApplied {
		logger.Debug("Discarding stale dashboard", "ticket", ticket)
		return nil
	}
	c.stats = stats.Clone()
	c.statsApplied = ticket
	c.statsErr = nil
	return nil
}

// reportRefreshError notifies about a failed fetch unless the session it
// belonged to is gone
func (c *Controller) reportRefreshError(epoch uint64, what string, err error) {
	logger.Warn("Refresh failed", "part", what, "error", err)
	if !storage.HasToken(c.creds) || !c.live(epoch) {
		return
	}
	c.fail(err)
}

func (c *Controller) issueHabits() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.habitsIssued++
	return c.habitsIssued
}

func (c *Controller) issueStats() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statsIssued++
	return c.statsIssued
}

func (c *Controller) setLoading(epoch uint64, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	if on {
		c.inflight++
	} else if c.inflight > 0 {
		c.inflight--
	}
}

func message(err error) string {
	return apperrors.Message(err)
}
