// internal/common/http/client.go

// Package http wraps the standard client for calls against the staffing API.
// The submitter issues every upstream request through it; per-call deadlines
// come from the request context, so a zero client timeout means no extra cap.
package http

import (
	"context"
	"net/http"
	"time"
)

// Client is a thin wrapper owning one underlying http.Client.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a client with the given overall timeout. Pass zero to
// bound calls only by their context.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// DoWithContext executes the request under ctx, so callers can cancel or
// deadline-bound individual submissions.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}
