package model

import "strings"

// BookingStatus is the booking lifecycle enumeration. The backend defaults
// new bookings to Pending; the client never invents a status on its own.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
)

// Statuses lists the transitions offered by the dashboard, in display order.
var Statuses = []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Booking is a customer reservation as returned by the backend, with the
// referenced package populated as an embedded summary.
type Booking struct {
	ID                string         `json:"_id"`
	CustomerName      string         `json:"customerName"`
	ContactInfo       string         `json:"contactInfo"`
	SelectedPackage   PackageSummary `json:"selectedPackage"`
	NumberOfTravelers int            `json:"numberOfTravelers"`
	Status            BookingStatus  `json:"status"`
}

// BookingDraft is the creation request body. selectedPackage carries the
// package identifier; the backend resolves and embeds the summary on read.
type BookingDraft struct {
	CustomerName      string `json:"customerName"`
	ContactInfo       string `json:"contactInfo"`
	SelectedPackage   string `json:"selectedPackage"`
	NumberOfTravelers int    `json:"numberOfTravelers"`
}

// Validate enforces the booking form's required fields. Referential
// integrity beyond "a package was chosen" is the backend's problem.
func (d BookingDraft) Validate() error {
	var verr ValidationError
	if strings.TrimSpace(d.CustomerName) == "" {
		verr.add("customerName", "customer name is required")
	}
	if strings.TrimSpace(d.ContactInfo) == "" {
		verr.add("contactInfo", "contact info is required")
	}
	if d.SelectedPackage == "" {
		verr.add("selectedPackage", "select a package")
	}
	if d.NumberOfTravelers <= 0 {
		verr.add("numberOfTravelers", "number of travelers must be positive")
	}
	return verr.orNil()
}
