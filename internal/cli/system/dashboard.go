package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/tui/components/dashboard"
)

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(context.Background(), constants.RouteDashboard); err != nil {
		return err
	}

	snap := ctx.Session.Snapshot()
	if snap.StatsErr != nil {
		return snap.StatsErr
	}
	fmt.Fprintf(ctx.Out, "%s's dashboard\n\n", snap.User.Name)
	fmt.Fprintln(ctx.Out, dashboard.Render(snap.Stats, 0))
	return nil
}

type RefreshCmd struct{}

func (c *RefreshCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if err := ctx.RequireSession(bg, constants.RouteDashboard); err != nil {
		return err
	}
	return ctx.Report(ctx.Session.Refresh(bg))
}
