package backend

import (
	"context"
	"net/http"
	"net/url"
)

// ListUsers fetches all registered users (admin).
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser patches a user record (admin).
func (c *Client) UpdateUser(ctx context.Context, id string, patch UserPatch) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user record (admin).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, nil)
}
