package client

import (
	"context"
	"net/http"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

const (
	PathSubscriptions   = "/subscriptions"
	PathMySubscriptions = "/subscriptions/my-subscriptions"
)

func (c *Client) CreateSubscription(ctx context.Context, sub darshan.Subscription) (*Response[darshan.Subscription], error) {
	return send[darshan.Subscription](ctx, c, http.MethodPost, PathSubscriptions, sub)
}

func (c *Client) MySubscriptions(ctx context.Context) (*Response[[]darshan.Subscription], error) {
	return send[[]darshan.Subscription](ctx, c, http.MethodGet, PathMySubscriptions, nil)
}
