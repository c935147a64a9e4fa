package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/storage"
)

// Client is the typed request layer over the remote habit API. Every
// operation is a single HTTP call; there are no retries and no timeout beyond
// the transport default, so a hung request blocks its caller.
type Client struct {
	http    *resty.Client
	creds   storage.CredentialStore
	baseURL string
}

// New creates a Client. An empty baseURL means the client's default origin.
// The credential store is read on every request.
func New(baseURL string, creds storage.CredentialStore) *Client {
	base := ResolveBaseURL(baseURL)
	rc := resty.New().
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{}).
		SetRetryCount(0)

	return &Client{
		http:    rc,
		creds:   creds,
		baseURL: base,
	}
}

// ResolveBaseURL applies the "empty means same origin" rule
func ResolveBaseURL(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return constants.DefaultAPIOrigin
	}
	return base
}

// BaseURL returns the resolved endpoint base
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one request and decodes a successful body into out. A body
// that cannot be decoded leaves out untouched; whether that is an error is up
// to the operation.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	requestID := uuid.NewString()
	req := c.http.R().
		SetContext(ctx).
		SetHeader(constants.RequestIDHeader, requestID)
	if token, ok := c.creds.Get(); ok {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		logger.Warn("Request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return transportError(err)
	}

	logger.Debug("Request finished",
		"method", method,
		"path", path,
		"status", resp.StatusCode(),
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if !resp.IsSuccess() {
		rerr := statusError(resp.StatusCode(), resp.Body())
		logger.Warn("Request rejected", "method", method, "path", path, "status", rerr.Status, "message", rerr.Message, "request_id", requestID)
		return rerr
	}

	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			logger.Debug("Ignoring undecodable response body", "path", path, "error", err)
		}
	}
	return nil
}

func habitPath(id string, suffix ...string) string {
	p := constants.EndpointHabits + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}
