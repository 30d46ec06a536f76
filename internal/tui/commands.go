package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tripdesk/tripdesk/internal/model"
)

// Network commands. Each runs on its own goroutine and resolves to a typed
// message; the Update loop owns all state, so commands never mutate the App.

func (a *App) loadPackagesCmd() tea.Cmd {
	seq := a.nextSeq(scopePackages)
	return func() tea.Msg {
		packages, err := a.services.Packages.ListPackages(a.ctx)
		return packagesLoadedMsg{seq: seq, packages: packages, err: err}
	}
}

func (a *App) loadBookingsCmd() tea.Cmd {
	seq := a.nextSeq(scopeBookings)
	return func() tea.Msg {
		bookings, err := a.services.Bookings.ListBookings(a.ctx)
		return bookingsLoadedMsg{seq: seq, bookings: bookings, err: err}
	}
}

// fetchPackageCmd carries the generation of the form instance issuing the
// fetch; a response for a closed or replaced form never lands in the
// current one.
func (a *App) fetchPackageCmd(id string) tea.Cmd {
	seq := a.latest[scopePackageForm]
	return func() tea.Msg {
		pkg, err := a.services.Packages.GetPackage(a.ctx, id)
		return packageFetchedMsg{seq: seq, pkg: pkg, err: err}
	}
}

// savePackageCmd dispatches create vs update purely on identifier presence.
func (a *App) savePackageCmd(id string, draft model.PackageDraft) tea.Cmd {
	seq := a.latest[scopePackageForm]
	return func() tea.Msg {
		if id == "" {
			_, err := a.services.Packages.CreatePackage(a.ctx, draft)
			return packageSavedMsg{seq: seq, created: true, err: err}
		}
		_, err := a.services.Packages.UpdatePackage(a.ctx, id, draft)
		return packageSavedMsg{seq: seq, created: false, err: err}
	}
}

func (a *App) deletePackageCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := a.services.Packages.DeletePackage(a.ctx, id)
		return packageDeletedMsg{id: id, err: err}
	}
}

func (a *App) loadPickerPackagesCmd() tea.Cmd {
	seq := a.latest[scopeBookingForm]
	return func() tea.Msg {
		packages, err := a.services.Packages.ListPackages(a.ctx)
		return pickerPackagesMsg{seq: seq, packages: packages, err: err}
	}
}

func (a *App) createBookingCmd(draft model.BookingDraft) tea.Cmd {
	seq := a.latest[scopeBookingForm]
	return func() tea.Msg {
		_, err := a.services.Bookings.CreateBooking(a.ctx, draft)
		return bookingSavedMsg{seq: seq, err: err}
	}
}

func (a *App) updateBookingStatusCmd(id string, status model.BookingStatus) tea.Cmd {
	seq := a.nextSeq(scopeBookingStatus + id)
	return func() tea.Msg {
		booking, err := a.services.Bookings.UpdateBookingStatus(a.ctx, id, status)
		return bookingStatusMsg{id: id, seq: seq, booking: booking, err: err}
	}
}

// loginCmd exchanges credentials for a token and persists it; only after
// both succeed does the session count as authenticated.
func (a *App) loginCmd(creds model.Credentials) tea.Cmd {
	return func() tea.Msg {
		token, err := a.services.Auth.Login(a.ctx, creds)
		if err != nil {
			return loginResultMsg{err: err}
		}
		if err := a.session.Login(token); err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{token: token}
	}
}

func (a *App) registerCmd(reg model.Registration) tea.Cmd {
	return func() tea.Msg {
		err := a.services.Auth.Register(a.ctx, reg)
		return registerResultMsg{err: err}
	}
}

func (a *App) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return logoutMsg{err: a.session.Logout()}
	}
}
