package tui

import "github.com/tripdesk/tripdesk/internal/model"

// Result messages. Every network command resolves to exactly one of these;
// collection and per-resource mutations carry the sequence number they were
// issued with so stale responses can be discarded.

type packagesLoadedMsg struct {
	seq      uint64
	packages []model.TravelPackage
	err      error
}

type bookingsLoadedMsg struct {
	seq      uint64
	bookings []model.Booking
	err      error
}

// packageFetchedMsg resolves the edit form's fetch-by-id. seq is the
// generation of the form instance that issued the fetch.
type packageFetchedMsg struct {
	seq uint64
	pkg model.TravelPackage
	err error
}

type packageSavedMsg struct {
	seq     uint64
	created bool
	err     error
}

type packageDeletedMsg struct {
	id  string
	err error
}

type pickerPackagesMsg struct {
	seq      uint64
	packages []model.TravelPackage
	err      error
}

type bookingSavedMsg struct {
	seq uint64
	err error
}

type bookingStatusMsg struct {
	id      string
	seq     uint64
	booking model.Booking
	err     error
}

type loginResultMsg struct {
	token string
	err   error
}

type registerResultMsg struct {
	err error
}

type logoutMsg struct {
	err error
}
