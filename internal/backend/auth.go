package backend

import (
	"context"
	"net/http"
)

// Me validates the attached credential and returns the identity.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token and identity.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account; the API auto-authenticates it.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateProfile submits a partial identity update and returns the
// server's representation.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
