package client

import (
	"context"
	"net/http"
)

const (
	PathLogin    = "/auth/login"
	PathRegister = "/auth/register"
	PathMe       = "/auth/me"
)

// Login calls POST /auth/login.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Response[AuthResponse], error) {
	if req.Email == "" {
		req.Email = req.Identifier
	}
	return send[AuthResponse](ctx, c, http.MethodPost, PathLogin, req)
}

// Register calls POST /auth/register.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Response[AuthResponse], error) {
	return send[AuthResponse](ctx, c, http.MethodPost, PathRegister, req)
}

// Me calls GET /auth/me. It needs the bearer token decorator.
func (c *Client) Me(ctx context.Context) (*Response[MeResponse], error) {
	return send[MeResponse](ctx, c, http.MethodGet, PathMe, nil)
}
