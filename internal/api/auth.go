package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a bearer token and installs it on the
// session.
func (c *Client) Login(ctx context.Context, req LoginRequest) error {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &out); err != nil {
		return err
	}
	return c.session.SetToken(out.Token)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &out); err != nil {
		return err
	}
	return c.session.SetToken(out.Token)
}

// GetProfile fetches the account profile including saved addresses.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodPut, "/api/auth/update", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout drops the session locally. The backend keeps no server-side session
// for bearer tokens, so there is nothing to revoke remotely.
func (c *Client) Logout() {
	c.session.Invalidate()
}
