package habits

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/validation"
)

type HabitCmd struct {
	List     HabitListCmd     `cmd:"" help:"List habits." default:"1"`
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	Edit     HabitEditCmd     `cmd:"" help:"Edit a habit's title or description."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit."`
	Complete HabitCompleteCmd `cmd:"" help:"Mark a habit as completed for today."`
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Habits(context.Background())
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Fprintln(ctx.Out, "No habits yet. Add one with 'habitflow habit add <title>'.")
		return nil
	}

	for _, h := range habits {
		mark := "○"
		if h.CompletedToday {
			mark = "✓"
		}
		fmt.Fprintf(ctx.Out, "%s %s  %s\n", mark, h.ShortID(), h.Title)
		if h.Description != "" {
			fmt.Fprintf(ctx.Out, "           %s\n", h.Description)
		}
	}
	return nil
}

type HabitAddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Description string `help:"Optional description." default:""`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	in, err := validation.HabitInput(c.Title, c.Description)
	if err != nil {
		return err
	}

	bg := context.Background()
	if err := ctx.RequireSession(bg, constants.RouteHabits); err != nil {
		return err
	}
	return ctx.Report(ctx.Session.CreateHabit(bg, in))
}

type HabitEditCmd struct {
	ID          string  `arg:"" help:"Habit id (or the short id shown by 'habit list')."`
	Title       *string `help:"New title."`
	Description *string `help:"New description."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	if c.Title == nil && c.Description == nil {
		return fmt.Errorf("nothing to change: pass --title and/or --description")
	}

	bg := context.Background()
	habits, err := ctx.Habits(bg)
	if err != nil {
		return err
	}
	habit, err := Resolve(habits, c.ID)
	if err != nil {
		return err
	}

	title, description := habit.Title, habit.Description
	if c.Title != nil {
		title = *c.Title
	}
	if c.Description != nil {
		description = *c.Description
	}
	in, err := validation.HabitInput(title, description)
	if err != nil {
		return err
	}

	return ctx.Report(ctx.Session.UpdateHabit(bg, habit.ID, in))
}

type HabitDeleteCmd struct {
	ID  string `arg:"" help:"Habit id (or the short id shown by 'habit list')."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	habits, err := ctx.Habits(bg)
	if err != nil {
		return err
	}
	habit, err := Resolve(habits, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %q?", habit.Title))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(ctx.Out, "Cancelled.")
			return nil
		}
	}

	return ctx.Report(ctx.Session.DeleteHabit(bg, habit.ID))
}

type HabitCompleteCmd struct {
	ID    string `arg:"" help:"Habit id (or the short id shown by 'habit list')."`
	Force bool   `help:"Send the request even if the habit is already completed today."`
}

func (c *HabitCompleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	habits, err := ctx.Habits(bg)
	if err != nil {
		return err
	}
	habit, err := Resolve(habits, c.ID)
	if err != nil {
		return err
	}

	if habit.CompletedToday && !c.Force {
		return fmt.Errorf("%q is already completed today", habit.Title)
	}

	return ctx.Report(ctx.Session.CompleteHabit(bg, habit.ID))
}

// Resolve finds a habit by full id or by a unique id suffix
func Resolve(habits []models.Habit, id string) (models.Habit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Habit{}, fmt.Errorf("habit id is required")
	}
	if h, ok := models.FindHabit(habits, id); ok {
		return h, nil
	}

	var matches []models.Habit
	for _, h := range habits {
		if strings.HasSuffix(h.ID, id) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("habit %q not found", id)
	default:
		return models.Habit{}, fmt.Errorf("habit id %q is ambiguous (%d matches)", id, len(matches))
	}
}
