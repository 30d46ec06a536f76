package tui

import "github.com/tripdesk/tripdesk/internal/model"

// Reconciliation: after a confirmed server-side mutation, bring the local
// collection in line with what a fresh fetch would return, without
// refetching. Unaffected elements keep their order and field values.

// removePackage returns the collection with exactly the element whose
// identifier equals id filtered out. Bookings referencing the deleted
// package are untouched; the client does not cascade.
func removePackage(packages []model.TravelPackage, id string) []model.TravelPackage {
	out := make([]model.TravelPackage, 0, len(packages))
	for _, p := range packages {
		if p.ID == id {
			continue
		}
		out = append(out, p)
	}
	return out
}

// applyBookingStatus replaces, in place in order, the single booking whose
// identifier matches updated.ID with a copy carrying the server-confirmed
// status. The response status is authoritative, not the value the user
// picked. With no match the collection is returned unchanged.
func applyBookingStatus(bookings []model.Booking, updated model.Booking) []model.Booking {
	out := make([]model.Booking, len(bookings))
	copy(out, bookings)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i].Status = updated.Status
			break
		}
	}
	return out
}
