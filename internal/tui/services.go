package tui

import (
	"context"

	"github.com/tripdesk/tripdesk/internal/model"
)

// The TUI depends on narrow per-resource interfaces so tests can substitute
// a fake backend. *api.Client satisfies all three.

type PackageService interface {
	ListPackages(ctx context.Context) ([]model.TravelPackage, error)
	GetPackage(ctx context.Context, id string) (model.TravelPackage, error)
	CreatePackage(ctx context.Context, draft model.PackageDraft) (model.TravelPackage, error)
	UpdatePackage(ctx context.Context, id string, draft model.PackageDraft) (model.TravelPackage, error)
	DeletePackage(ctx context.Context, id string) error
}

type BookingService interface {
	ListBookings(ctx context.Context) ([]model.Booking, error)
	CreateBooking(ctx context.Context, draft model.BookingDraft) (model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status model.BookingStatus) (model.Booking, error)
}

type AuthService interface {
	Login(ctx context.Context, creds model.Credentials) (string, error)
	Register(ctx context.Context, reg model.Registration) error
}

// Services bundles the backend surface handed to the App.
type Services struct {
	Packages PackageService
	Bookings BookingService
	Auth     AuthService
}
