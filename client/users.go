package client

import (
	"context"
	"net/http"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

const PathUsers = "/users"

// ListUsers lists registered users. Privileged.
func (c *Client) ListUsers(ctx context.Context) (*Response[[]darshan.User], error) {
	return send[[]darshan.User](ctx, c, http.MethodGet, PathUsers, nil)
}
