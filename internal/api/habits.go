package api

import (
	"context"
	"net/http"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
)

type habitsResponse struct {
	Habits []models.Habit `json:"habits"`
}

// ListHabits returns the caller's habits. A missing list decodes as empty.
func (c *Client) ListHabits(ctx context.Context) ([]models.Habit, error) {
	var res habitsResponse
	if err := c.do(ctx, http.MethodGet, constants.EndpointHabits, nil, &res); err != nil {
		return nil, err
	}
	if res.Habits == nil {
		return []models.Habit{}, nil
	}
	return res.Habits, nil
}

// CreateHabit creates a habit
func (c *Client) CreateHabit(ctx context.Context, in models.HabitInput) (models.Habit, error) {
	var h models.Habit
	err := c.do(ctx, http.MethodPost, constants.EndpointHabits, in, &h)
	return h, err
}

// UpdateHabit replaces a habit's title and description
func (c *Client) UpdateHabit(ctx context.Context, id string, in models.HabitInput) (models.Habit, error) {
	var h models.Habit
	err := c.do(ctx, http.MethodPut, habitPath(id), in, &h)
	return h, err
}

// DeleteHabit soft-deletes a habit. No response body is required.
func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, habitPath(id), nil, nil)
}

// CompleteHabit records today's completion of a habit
func (c *Client) CompleteHabit(ctx context.Context, id string) (models.Habit, error) {
	var h models.Habit
	err := c.do(ctx, http.MethodPost, habitPath(id, "complete"), nil, &h)
	return h, err
}
