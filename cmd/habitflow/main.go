package main

import (
	"io"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/cli/auth"
	"github.com/julianstephens/habitflow/internal/cli/habits"
	"github.com/julianstephens/habitflow/internal/cli/system"
	"github.com/julianstephens/habitflow/internal/config"
	"github.com/julianstephens/habitflow/internal/constants"
	apperrors "github.com/julianstephens/habitflow/internal/errors"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/storage"
)

var CLI struct {
	Version           kong.VersionFlag
	ConfigDir         string `help:"Directory holding config.yaml, logs and the credential database (default ${default_config_dir})." type:"path"`
	APIURL            string `name:"api-url" help:"Base URL of the habit API. Overrides ${api_env}."`
	Debug             bool   `help:"Enable debug logging."`
	CredentialBackend string `help:"Where to keep the bearer token (auto, keyring, sqlite, memory)."`
	EnvFile           string `help:"Dotenv file to load before reading the environment." type:"path" placeholder:".env"`

	Tui       system.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Auth      auth.AuthCmd        `cmd:"" help:"Sign in, sign out and check the current session."`
	Habit     habits.HabitCmd     `cmd:"" help:"Manage habits and daily completions."`
	Dashboard system.DashboardCmd `cmd:"" help:"Show habit statistics and weekly progress."`
	Refresh   system.RefreshCmd   `cmd:"" help:"Reload habits and statistics from the server."`
	Config    system.ConfigCmd    `cmd:"" help:"Inspect the resolved configuration."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracking client: build better habits, one day at a time"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":            constants.Version,
			"default_config_dir": constants.DefaultConfigDir,
			"api_env":            constants.APIURLEnvVar,
		},
	)

	cfg, err := config.Load(config.Overrides{
		ConfigDir:         CLI.ConfigDir,
		APIURL:            CLI.APIURL,
		Debug:             CLI.Debug,
		CredentialBackend: CLI.CredentialBackend,
		EnvFile:           CLI.EnvFile,
	})
	if err != nil {
		apperrors.Fatal(err)
	}

	// the TUI owns the terminal, so debug output only goes to the log file
	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.ConfigDir,
		Quiet:     ctx.Command() == "tui",
	}); err != nil {
		apperrors.Fatal(err)
	}
	logger.Debug("Configuration loaded", "config_dir", cfg.ConfigDir, "api_url", cfg.APIURL, "backend", cfg.CredentialBackend)

	creds, err := storage.Open(cfg.CredentialBackend, cfg.ConfigDir)
	if err != nil {
		apperrors.Fatal(err)
	}
	logger.Debug("Credential store opened", "store", creds.Name())

	err = ctx.Run(cli.NewContext(cfg, creds))
	if c, ok := creds.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil {
			logger.Warn("Failed to close credential store", "error", cerr)
		}
	}
	if err != nil {
		apperrors.Fatal(err)
	}
}
