package client

import (
	"context"
	"net/http"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

const PathTemples = "/temples"

func (c *Client) ListTemples(ctx context.Context) (*Response[[]darshan.Temple], error) {
	return send[[]darshan.Temple](ctx, c, http.MethodGet, PathTemples, nil)
}

func (c *Client) GetTemple(ctx context.Context, id string) (*Response[darshan.Temple], error) {
	path, err := resourcePath(PathTemples, id)
	if err != nil {
		return nil, err
	}
	return send[darshan.Temple](ctx, c, http.MethodGet, path, nil)
}

func (c *Client) CreateTemple(ctx context.Context, temple darshan.Temple) (*Response[darshan.Temple], error) {
	return send[darshan.Temple](ctx, c, http.MethodPost, PathTemples, temple)
}

func (c *Client) UpdateTemple(ctx context.Context, id string, temple darshan.Temple) (*Response[darshan.Temple], error) {
	path, err := resourcePath(PathTemples, id)
	if err != nil {
		return nil, err
	}
	return send[darshan.Temple](ctx, c, http.MethodPut, path, temple)
}

func (c *Client) DeleteTemple(ctx context.Context, id string) (*Response[MessageResponse], error) {
	path, err := resourcePath(PathTemples, id)
	if err != nil {
		return nil, err
	}
	return send[MessageResponse](ctx, c, http.MethodDelete, path, nil)
}
