package session

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitflow/internal/api"
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/logger"
)

// Login signs in an existing account. On failure the error is returned for
// the caller to show next to the form and the session is left as it was.
func (c *Controller) Login(ctx context.Context, email, password string) (constants.Route, error) {
	return c.authenticate(ctx, false, func() (api.AuthResult, error) {
		return c.api.Login(ctx, email, password)
	})
}

// Register creates an account and signs in to it
func (c *Controller) Register(ctx context.Context, name, email, password string) (constants.Route, error) {
	return c.authenticate(ctx, true, func() (api.AuthResult, error) {
		return c.api.Register(ctx, name, email, password)
	})
}

func (c *Controller) authenticate(ctx context.Context, isNew bool, call func() (api.AuthResult, error)) (constants.Route, error) {
	c.mu.Lock()
	prev := c.phase
	c.phase = constants.PhaseAuthenticating
	c.mu.Unlock()

	res, err := call()
	if err != nil {
		c.mu.Lock()
		if c.phase == constants.PhaseAuthenticating {
			c.phase = prev
		}
		c.mu.Unlock()
		logger.Debug("Authentication failed", "new_account", isNew, "error", err)
		return "", err
	}

	c.mu.Lock()
	c.creds.Set(res.Token)
	c.resetLocked()
	user := res.User
	c.user = &user
	c.phase = constants.PhaseAuthenticated
	epoch := c.epoch
	c.mu.Unlock()

	logger.Info("Signed in", "user_id", user.ID, "new_account", isNew)
	if isNew {
		c.info(fmt.Sprintf("Account created. Welcome, %s!", user.Name))
	} else {
		c.info(fmt.Sprintf("Welcome back, %s!", user.Name))
	}

	_ = c.refreshAll(ctx, epoch)
	return constants.RouteDashboard, nil
}

// Logout clears the credential and all session state. It cannot fail.
func (c *Controller) Logout() constants.Route {
	c.mu.Lock()
	c.creds.Set("")
	c.resetLocked()
	c.mu.Unlock()

	logger.Info("Signed out")
	c.info("You have been logged out.")
	return constants.RoutePublic
}
