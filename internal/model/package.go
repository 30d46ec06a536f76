package model

import "strings"

// TravelPackage is a sellable travel offering as returned by the backend.
// The identifier is server-assigned and immutable once created.
type TravelPackage struct {
	ID             string   `json:"_id"`
	Destination    string   `json:"destination"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Price          float64  `json:"price"`
	AvailableDates []string `json:"availableDates"`
	MaxTravelers   int      `json:"maxTravelers,omitempty"`
	PackageType    string   `json:"packageType,omitempty"`
}

// PackageSummary is the embedded shape the backend populates on bookings.
type PackageSummary struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// PackageDraft is the create/update request body: a TravelPackage minus
// its identifier. The same draft serves both form modes; only the dispatch
// (POST vs PUT) differs.
type PackageDraft struct {
	Destination    string   `json:"destination"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Price          float64  `json:"price"`
	AvailableDates []string `json:"availableDates"`
	MaxTravelers   int      `json:"maxTravelers,omitempty"`
	PackageType    string   `json:"packageType,omitempty"`
}

// Validate enforces the required fields: destination, title, and a
// positive price. Everything else is free-form.
func (d PackageDraft) Validate() error {
	var verr ValidationError
	if strings.TrimSpace(d.Destination) == "" {
		verr.add("destination", "destination is required")
	}
	if strings.TrimSpace(d.Title) == "" {
		verr.add("title", "title is required")
	}
	if d.Price <= 0 {
		verr.add("price", "price must be greater than zero")
	}
	return verr.orNil()
}

// Draft copies the mutable fields of a fetched package into a draft for
// the edit form.
func (p TravelPackage) Draft() PackageDraft {
	return PackageDraft{
		Destination:    p.Destination,
		Title:          p.Title,
		Description:    p.Description,
		Price:          p.Price,
		AvailableDates: p.AvailableDates,
		MaxTravelers:   p.MaxTravelers,
		PackageType:    p.PackageType,
	}
}
