package api

import (
	"context"
	"net/http"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
)

// AuthResult is returned by login and registration
type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityResponse struct {
	User *models.User `json:"user"`
}

// Register creates an account and returns its identity and credential
func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	return c.authenticate(ctx, constants.EndpointRegister, registerRequest{Name: name, Email: email, Password: password})
}

// Login exchanges email and password for an identity and credential
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	return c.authenticate(ctx, constants.EndpointLogin, loginRequest{Email: email, Password: password})
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, path, body, &res); err != nil {
		return AuthResult{}, err
	}
	if res.Token == "" {
		return AuthResult{}, decodeError("token")
	}
	return res, nil
}

// FetchIdentity returns the user the stored credential belongs to
func (c *Client) FetchIdentity(ctx context.Context) (models.User, error) {
	var res identityResponse
	if err := c.do(ctx, http.MethodGet, constants.EndpointMe, nil, &res); err != nil {
		return models.User{}, err
	}
	if res.User == nil {
		return models.User{}, decodeError("user")
	}
	return *res.User, nil
}
