package session

import (
	"context"

	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/models"
)

// CreateHabit creates a habit and reloads habits and statistics
func (c *Controller) CreateHabit(ctx context.Context, in models.HabitInput) error {
	return c.write(ctx, "create", "Habit created.", true, func() error {
		_, err := c.api.CreateHabit(ctx, in)
		return err
	})
}

// UpdateHabit edits a habit's title and description. Only the habit list is
// reloaded since statistics do not depend on either field.
func (c *Controller) UpdateHabit(ctx context.Context, id string, in models.HabitInput) error {
	return c.write(ctx, "update", "Habit updated.", false, func() error {
		_, err := c.api.UpdateHabit(ctx, id, in)
		return err
	})
}

// DeleteHabit soft-deletes a habit. Callers confirm with the user first.
func (c *Controller) DeleteHabit(ctx context.Context, id string) error {
	return c.write(ctx, "delete", "Habit deleted.", true, func() error {
		return c.api.DeleteHabit(ctx, id)
	})
}

// CompleteHabit marks a habit done for today
func (c *Controller) CompleteHabit(ctx context.Context, id string) error {
	return c.write(ctx, "complete", "Habit marked as completed for today.", true, func() error {
		_, err := c.api.CompleteHabit(ctx, id)
		return err
	})
}

// write runs a mutation, then the follow-up reload, then the success
// notification. A failed mutation leaves state untouched. Outcomes of a
// session that ended while the call was in flight are dropped.
func (c *Controller) write(ctx context.Context, op, success string, full bool, call func() error) error {
	epoch, ok := c.authorized()
	if !ok {
		return ErrNotAuthenticated
	}

	if err := call(); err != nil {
		logger.Warn("Habit change failed", "op", op, "error", err)
		if c.live(epoch) {
			c.fail(err)
		}
		return err
	}
	if !c.live(epoch) {
		logger.Debug("Session ended during habit change", "op", op)
		return nil
	}

	if full {
		_ = c.refreshAll(ctx, epoch)
	} else {
		_ = c.loadHabits(ctx, epoch, c.issueHabits())
	}

	if c.live(epoch) {
		c.info(success)
	}
	return nil
}
