package client

import (
	"context"
	"net/http"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

const (
	PathTestimonials  = "/content/testimonials"
	PathSeasonalEvent = "/content/seasonalevent"
)

func (c *Client) ListTestimonials(ctx context.Context) (*Response[[]darshan.Testimonial], error) {
	return send[[]darshan.Testimonial](ctx, c, http.MethodGet, PathTestimonials, nil)
}

func (c *Client) CreateTestimonial(ctx context.Context, t darshan.Testimonial) (*Response[darshan.Testimonial], error) {
	return send[darshan.Testimonial](ctx, c, http.MethodPost, PathTestimonials, t)
}

func (c *Client) UpdateTestimonial(ctx context.Context, id string, t darshan.Testimonial) (*Response[darshan.Testimonial], error) {
	path, err := resourcePath(PathTestimonials, id)
	if err != nil {
		return nil, err
	}
	return send[darshan.Testimonial](ctx, c, http.MethodPut, path, t)
}

func (c *Client) DeleteTestimonial(ctx context.Context, id string) (*Response[MessageResponse], error) {
	path, err := resourcePath(PathTestimonials, id)
	if err != nil {
		return nil, err
	}
	return send[MessageResponse](ctx, c, http.MethodDelete, path, nil)
}

func (c *Client) GetSeasonalEvent(ctx context.Context) (*Response[darshan.SeasonalEvent], error) {
	return send[darshan.SeasonalEvent](ctx, c, http.MethodGet, PathSeasonalEvent, nil)
}

func (c *Client) UpdateSeasonalEvent(ctx context.Context, event darshan.SeasonalEvent) (*Response[darshan.SeasonalEvent], error) {
	return send[darshan.SeasonalEvent](ctx, c, http.MethodPut, PathSeasonalEvent, event)
}
