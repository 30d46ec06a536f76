package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tripdesk/tripdesk/internal/model"
)

// ListPackages fetches the full package collection.
func (c *Client) ListPackages(ctx context.Context) ([]model.TravelPackage, error) {
	var out []model.TravelPackage
	if err := c.do(ctx, http.MethodGet, "/packages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPackage fetches a single package by identifier, used by the edit form.
func (c *Client) GetPackage(ctx context.Context, id string) (model.TravelPackage, error) {
	var out model.TravelPackage
	if err := c.do(ctx, http.MethodGet, "/packages/"+url.PathEscape(id), nil, &out); err != nil {
		return model.TravelPackage{}, err
	}
	return out, nil
}

// CreatePackage creates a new package; the backend assigns the identifier.
func (c *Client) CreatePackage(ctx context.Context, draft model.PackageDraft) (model.TravelPackage, error) {
	var out model.TravelPackage
	if err := c.do(ctx, http.MethodPost, "/packages", draft, &out); err != nil {
		return model.TravelPackage{}, err
	}
	return out, nil
}

// UpdatePackage replaces the full record at id.
func (c *Client) UpdatePackage(ctx context.Context, id string, draft model.PackageDraft) (model.TravelPackage, error) {
	var out model.TravelPackage
	if err := c.do(ctx, http.MethodPut, "/packages/"+url.PathEscape(id), draft, &out); err != nil {
		return model.TravelPackage{}, err
	}
	return out, nil
}

// DeletePackage removes the package at id. The backend does not cascade to
// bookings, and neither does the client.
func (c *Client) DeletePackage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/packages/"+url.PathEscape(id), nil, nil)
}
