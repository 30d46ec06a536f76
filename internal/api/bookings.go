package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tripdesk/tripdesk/internal/model"
)

// ListBookings fetches the full booking collection, each with its package
// reference embedded as a summary.
func (c *Client) ListBookings(ctx context.Context) ([]model.Booking, error) {
	var out []model.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBooking creates a booking; the backend defaults status to Pending.
func (c *Client) CreateBooking(ctx context.Context, draft model.BookingDraft) (model.Booking, error) {
	var out model.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", draft, &out); err != nil {
		return model.Booking{}, err
	}
	return out, nil
}

// UpdateBookingStatus patches a booking's status and returns the updated
// booking. The server-confirmed status is authoritative; callers must
// reconcile with the response, not the requested value.
func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status model.BookingStatus) (model.Booking, error) {
	body := struct {
		Status model.BookingStatus `json:"status"`
	}{Status: status}
	var out model.Booking
	if err := c.do(ctx, http.MethodPatch, "/bookings/"+url.PathEscape(id)+"/status", body, &out); err != nil {
		return model.Booking{}, err
	}
	return out, nil
}
