package api

import (
	"context"
	"net/http"

	"github.com/tripdesk/tripdesk/internal/model"
)

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Register creates an admin account. The backend does not log the new
// account in; the caller returns to the login view.
func (c *Client) Register(ctx context.Context, reg model.Registration) error {
	return c.do(ctx, http.MethodPost, "/auth/register", reg, nil)
}
