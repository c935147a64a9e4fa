package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/julianstephens/habitflow/internal/api"
	"github.com/julianstephens/habitflow/internal/config"
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/guard"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/notifier"
	"github.com/julianstephens/habitflow/internal/session"
	"github.com/julianstephens/habitflow/internal/storage"
)

// ErrNotLoggedIn is returned when an authenticated command has no session
var ErrNotLoggedIn = errors.New("Not logged in. Run 'habitflow auth login'.")

// Context is shared by every command
type Context struct {
	Config  *config.Config
	Creds   storage.CredentialStore
	API     *api.Client
	Notes   *notifier.Center
	Session *session.Controller

	Out io.Writer
	Err io.Writer
	In  io.Reader

	// Confirm asks a yes/no question. Prompt reads one value, hiding the
	// input when secret is set.
	Confirm func(title string) (bool, error)
	Prompt  func(label string, secret bool) (string, error)

	restored bool
	reader   *bufio.Reader
}

// NewContext wires the client, notifier and session controller together
func NewContext(cfg *config.Config, creds storage.CredentialStore) *Context {
	client := api.New(cfg.APIURL, creds)
	notes := notifier.New(cfg.NotificationDuration())

	c := &Context{
		Config:  cfg,
		Creds:   creds,
		API:     client,
		Notes:   notes,
		Session: session.New(client, creds, notes),
		Out:     os.Stdout,
		Err:     os.Stderr,
		In:      os.Stdin,
		Confirm: confirm,
	}
	c.Prompt = c.prompt
	return c
}

// Restore runs session startup once per process
func (c *Context) Restore(ctx context.Context) constants.Route {
	if c.restored {
		if c.Session.Snapshot().Authenticated() {
			return constants.RouteDashboard
		}
		return constants.RoutePublic
	}
	c.restored = true
	return c.Session.Startup(ctx)
}

// RequireSession restores the session and checks that route may be shown
func (c *Context) RequireSession(ctx context.Context, route constants.Route) error {
	c.Restore(ctx)
	snap := c.Session.Snapshot()
	if guard.Check(route, snap.User, c.Creds) != route {
		logger.Debug("Route denied", "route", route)
		return ErrNotLoggedIn
	}
	return nil
}

// Habits restores the session, checks the habits route and returns the
// loaded list. A failed habit fetch is returned rather than an empty list.
func (c *Context) Habits(ctx context.Context) ([]models.Habit, error) {
	if err := c.RequireSession(ctx, constants.RouteHabits); err != nil {
		return nil, err
	}
	snap := c.Session.Snapshot()
	if snap.HabitsErr != nil {
		return nil, snap.HabitsErr
	}
	return snap.Habits, nil
}

// Report prints the notification left by the last intent. Errors are
// returned as-is for main to print.
func (c *Context) Report(err error) error {
	if err != nil {
		return err
	}
	n := c.Notes.Current()
	if !n.Visible || n.Message == "" {
		return nil
	}
	w := c.Out
	if n.IsError() {
		w = c.Err
	}
	fmt.Fprintln(w, n.Message)
	return nil
}

// Ask returns value if set, otherwise prompts for it
func (c *Context) Ask(value, label string, secret bool) (string, error) {
	if value != "" {
		return value, nil
	}
	return c.Prompt(label, secret)
}

func (c *Context) prompt(label string, secret bool) (string, error) {
	fmt.Fprintf(c.Err, "%s: ", label)

	if f, ok := c.In.(*os.File); ok && secret && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.Err)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}
		return string(b), nil
	}

	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	line, err := c.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeDracula()).
		Run()
	return ok, err
}
