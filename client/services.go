package client

import (
	"context"
	"net/http"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

const PathServices = "/services"

func (c *Client) ListServices(ctx context.Context) (*Response[[]darshan.Service], error) {
	return send[[]darshan.Service](ctx, c, http.MethodGet, PathServices, nil)
}

func (c *Client) CreateService(ctx context.Context, service darshan.Service) (*Response[darshan.Service], error) {
	return send[darshan.Service](ctx, c, http.MethodPost, PathServices, service)
}

func (c *Client) UpdateService(ctx context.Context, id string, service darshan.Service) (*Response[darshan.Service], error) {
	path, err := resourcePath(PathServices, id)
	if err != nil {
		return nil, err
	}
	return send[darshan.Service](ctx, c, http.MethodPut, path, service)
}

func (c *Client) DeleteService(ctx context.Context, id string) (*Response[MessageResponse], error) {
	path, err := resourcePath(PathServices, id)
	if err != nil {
		return nil, err
	}
	return send[MessageResponse](ctx, c, http.MethodDelete, path, nil)
}
