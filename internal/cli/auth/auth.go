package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/validation"
)

type AuthCmd struct {
	Login    LoginCmd    `cmd:"" help:"Sign in to an existing account."`
	Register RegisterCmd `cmd:"" help:"Create an account and sign in."`
	Logout   LogoutCmd   `cmd:"" help:"Sign out and forget the stored credential."`
	Status   StatusCmd   `cmd:"" help:"Show who is signed in."`
}

type LoginCmd struct {
	Email    string `help:"Account email."`
	Password string `help:"Account password. Prompted for when omitted."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	email, err := ctx.Ask(c.Email, "Email", false)
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if err := validation.Email(email); err != nil {
		return err
	}

	password, err := ctx.Ask(c.Password, "Password", true)
	if err != nil {
		return err
	}
	if err := validation.Password(password); err != nil {
		return err
	}

	_, err = ctx.Session.Login(context.Background(), email, password)
	return ctx.Report(err)
}

type RegisterCmd struct {
	Name     string `help:"Display name."`
	Email    string `help:"Account email."`
	Password string `help:"Account password. Prompted for when omitted."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	name, err := ctx.Ask(c.Name, "Name", false)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if err := validation.Name(name); err != nil {
		return err
	}

	email, err := ctx.Ask(c.Email, "Email", false)
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if err := validation.Email(email); err != nil {
		return err
	}

	password, err := ctx.Ask(c.Password, "Password", true)
	if err != nil {
		return err
	}
	if err := validation.Password(password); err != nil {
		return err
	}

	_, err = ctx.Session.Register(context.Background(), name, email, password)
	return ctx.Report(err)
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	ctx.Session.Logout()
	return ctx.Report(nil)
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	ctx.Restore(context.Background())
	snap := ctx.Session.Snapshot()

	if !snap.Authenticated() {
		fmt.Fprintln(ctx.Out, "Not signed in.")
		fmt.Fprintf(ctx.Out, "Credential store: %s\n", ctx.Creds.Name())
		return nil
	}

	fmt.Fprintf(ctx.Out, "Signed in as %s <%s>\n", snap.User.Name, snap.User.Email)
	fmt.Fprintf(ctx.Out, "Server:           %s\n", ctx.API.BaseURL())
	fmt.Fprintf(ctx.Out, "Credential store: %s\n", ctx.Creds.Name())

	token, _ := ctx.Creds.Get()
	info := storage.Inspect(token)
	switch {
	case !info.IsJWT:
		fmt.Fprintln(ctx.Out, "Token:            opaque")
	case info.ExpiresAt == nil:
		fmt.Fprintln(ctx.Out, "Token expires:    never")
	case info.Expired(time.Now()):
		fmt.Fprintf(ctx.Out, "Token expired:    %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
	default:
		fmt.Fprintf(ctx.Out, "Token expires:    %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
