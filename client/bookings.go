package client

import (
	"context"
	"net/http"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

const (
	PathBookings    = "/bookings"
	PathMyBookings  = "/bookings/my-bookings"
	PathAllBookings = "/bookings/all"
)

func (c *Client) CreateBooking(ctx context.Context, booking darshan.Booking) (*Response[darshan.Booking], error) {
	return send[darshan.Booking](ctx, c, http.MethodPost, PathBookings, booking)
}

// MyBookings lists the bookings of the authenticated user.
func (c *Client) MyBookings(ctx context.Context) (*Response[[]darshan.Booking], error) {
	return send[[]darshan.Booking](ctx, c, http.MethodGet, PathMyBookings, nil)
}

// AllBookings lists every booking. Privileged.
func (c *Client) AllBookings(ctx context.Context) (*Response[[]darshan.Booking], error) {
	return send[[]darshan.Booking](ctx, c, http.MethodGet, PathAllBookings, nil)
}
