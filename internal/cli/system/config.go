package system

import (
	"fmt"

	"github.com/julianstephens/habitflow/internal/cli"
)

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Show the resolved configuration." default:"1"`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	fmt.Fprintln(ctx.Out, "Current Configuration:")
	for _, e := range ctx.Config.Entries() {
		fmt.Fprintf(ctx.Out, "  %-20s %-40s (%s)\n", e.Key+":", e.Value, e.Source)
	}
	fmt.Fprintf(ctx.Out, "  %-20s %s\n", "credential_store:", ctx.Creds.Name())
	return nil
}
