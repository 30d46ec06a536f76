// Package tui is the terminal front end: views, forms, and the
// reconciliation of locally-held collections against confirmed backend
// mutations. All persistence lives behind the Services interfaces.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tripdesk/tripdesk/internal/api"
	"github.com/tripdesk/tripdesk/internal/model"
	"github.com/tripdesk/tripdesk/internal/session"
)

type view string

const (
	viewLogin       view = "login"
	viewRegister    view = "register"
	viewDashboard   view = "dashboard"
	viewPackages    view = "packages"
	viewPackageForm view = "packageForm"
	viewBookingForm view = "bookingForm"
)

// protected reports whether a view requires an authenticated session.
// Navigation to a protected view is always evaluated against the shared
// session manager, never a per-view snapshot.
func protected(v view) bool {
	switch v {
	case viewLogin, viewRegister:
		return false
	}
	return true
}

type modalState string

const (
	modalNone          modalState = ""
	modalConfirmDelete modalState = "confirmDelete"
	modalStatusPicker  modalState = "statusPicker"
)

const (
	paneDashPackages = 0
	paneDashBookings = 1
)

// Sequence scopes. Responses tagged with a stale sequence for their scope
// are dropped, so an older in-flight request can never overwrite the
// outcome of a newer one.
const (
	scopePackages      = "packages.load"
	scopeBookings      = "bookings.load"
	scopeBookingStatus = "booking.status."
	scopePackageForm   = "package.form"
	scopeBookingForm   = "booking.form"
)

// App ties together views.
type App struct {
	ctx        context.Context
	services   Services
	session    *session.Manager
	log        *slog.Logger
	keys       keyMap
	currency   string
	dateFormat string

	view      view
	width     int
	height    int
	status    string
	statusErr bool

	packages  []model.TravelPackage
	bookings  []model.Booking
	pkgCursor int
	bkCursor  int
	dashFocus int

	modal           modalState
	pendingDeleteID string
	statusCursor    int

	pkgForm      packageForm
	bookingForm  bookingForm
	loginForm    loginForm
	registerForm registerForm

	seq    uint64
	latest map[string]uint64
}

func New(ctx context.Context, services Services, sess *session.Manager, currency, dateFormat string, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	a := &App{
		ctx:        ctx,
		services:   services,
		session:    sess,
		log:        log,
		keys:       newKeyMap(),
		currency:   currency,
		dateFormat: dateFormat,
		latest:     map[string]uint64{},
	}
	if sess.Authenticated() {
		a.view = viewDashboard
	} else {
		a.view = viewLogin
		a.loginForm = newLoginForm()
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.view == viewDashboard {
		return tea.Batch(a.loadPackagesCmd(), a.loadBookingsCmd())
	}
	return textinput.Blink
}

func (a *App) nextSeq(scope string) uint64 {
	a.seq++
	a.latest[scope] = a.seq
	return a.seq
}

func (a *App) fresh(scope string, seq uint64) bool {
	return a.latest[scope] == seq
}

func (a *App) setStatus(text string) {
	a.status = text
	a.statusErr = false
}

func (a *App) setError(text string) {
	a.status = text
	a.statusErr = true
}

// navigate is the single routing entry point; the route guard lives here.
func (a *App) navigate(v view) tea.Cmd {
	if protected(v) && !a.session.Authenticated() {
		a.view = viewLogin
		a.loginForm = newLoginForm()
		a.setError("Please log in to continue")
		return textinput.Blink
	}
	a.view = v
	a.modal = modalNone
	// Leaving a form abandons its instance; bump the form generations so
	// in-flight fetch and save results for the old instance are dropped.
	a.nextSeq(scopePackageForm)
	a.nextSeq(scopeBookingForm)
	switch v {
	case viewDashboard:
		a.dashFocus = paneDashPackages
		return tea.Batch(a.loadPackagesCmd(), a.loadBookingsCmd())
	case viewPackages:
		return a.loadPackagesCmd()
	case viewBookingForm:
		a.bookingForm = newBookingForm()
		return tea.Batch(textinput.Blink, a.loadPickerPackagesCmd())
	case viewLogin:
		a.loginForm = newLoginForm()
		return textinput.Blink
	case viewRegister:
		a.registerForm = newRegisterForm()
		return textinput.Blink
	}
	return nil
}

// openPackageForm routes to the shared create/edit form; a non-empty id
// selects edit mode and triggers the fetch-by-id.
func (a *App) openPackageForm(id string) tea.Cmd {
	if !a.session.Authenticated() {
		return a.navigate(viewPackageForm)
	}
	a.view = viewPackageForm
	a.modal = modalNone
	a.nextSeq(scopePackageForm)
	a.pkgForm = newPackageForm(id)
	if id != "" {
		return tea.Batch(textinput.Blink, a.fetchPackageCmd(id))
	}
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case packagesLoadedMsg:
		if !a.fresh(scopePackages, msg.seq) {
			return a, nil
		}
		if msg.err != nil {
			a.log.Warn("load packages failed", "err", msg.err)
			a.setError("Failed to load packages")
			return a, nil
		}
		a.packages = msg.packages
		if a.pkgCursor >= len(a.packages) {
			a.pkgCursor = 0
		}
		return a, nil

	case bookingsLoadedMsg:
		if !a.fresh(scopeBookings, msg.seq) {
			return a, nil
		}
		if msg.err != nil {
			a.log.Warn("load bookings failed", "err", msg.err)
			a.setError("Failed to load bookings")
			return a, nil
		}
		a.bookings = msg.bookings
		if a.bkCursor >= len(a.bookings) {
			a.bkCursor = 0
		}
		return a, nil

	case packageFetchedMsg:
		if !a.fresh(scopePackageForm, msg.seq) {
			return a, nil
		}
		if msg.err != nil {
			a.log.Warn("fetch package failed", "err", msg.err)
			a.pkgForm.loading = false
			a.pkgForm.errText = "Failed to load package data"
			return a, nil
		}
		a.pkgForm.setPackage(msg.pkg)
		return a, nil

	case packageSavedMsg:
		if !a.fresh(scopePackageForm, msg.seq) {
			return a, nil
		}
		a.pkgForm.submitting = false
		if msg.err != nil {
			a.log.Warn("save package failed", "err", msg.err)
			a.pkgForm.errText = "Failed to save package. Please try again."
			return a, nil
		}
		if msg.created {
			a.pkgForm.reset()
			a.setStatus("Package created")
			return a, textinput.Blink
		}
		a.setStatus("Package updated")
		return a, a.navigate(viewDashboard)

	case packageDeletedMsg:
		if msg.err != nil {
			a.log.Warn("delete package failed", "id", msg.id, "err", msg.err)
			a.setError("Failed to delete package")
			return a, nil
		}
		a.packages = removePackage(a.packages, msg.id)
		if a.pkgCursor >= len(a.packages) && a.pkgCursor > 0 {
			a.pkgCursor = len(a.packages) - 1
		}
		a.setStatus("Package deleted successfully")
		return a, nil

	case pickerPackagesMsg:
		if !a.fresh(scopeBookingForm, msg.seq) {
			return a, nil
		}
		if msg.err != nil {
			a.log.Warn("load picker packages failed", "err", msg.err)
			a.bookingForm.picker.loading = false
			a.bookingForm.errText = "Failed to load packages"
			return a, nil
		}
		a.bookingForm.picker.setPackages(msg.packages)
		return a, nil

	case bookingSavedMsg:
		if !a.fresh(scopeBookingForm, msg.seq) {
			return a, nil
		}
		a.bookingForm.submitting = false
		if msg.err != nil {
			a.log.Warn("create booking failed", "err", msg.err)
			a.bookingForm.errText = "Failed to create booking. Please try again."
			return a, nil
		}
		a.bookingForm.reset()
		a.setStatus("Booking created successfully")
		return a, a.navigate(viewDashboard)

	case bookingStatusMsg:
		if !a.fresh(scopeBookingStatus+msg.id, msg.seq) {
			return a, nil
		}
		if msg.err != nil {
			a.log.Warn("update booking status failed", "id", msg.id, "err", msg.err)
			a.setError("Failed to update booking status")
			return a, nil
		}
		a.bookings = applyBookingStatus(a.bookings, msg.booking)
		a.setStatus("Booking status updated")
		return a, nil

	case loginResultMsg:
		a.loginForm.submitting = false
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				a.loginForm.errText = "Invalid credentials"
			} else {
				a.log.Warn("login failed", "err", msg.err)
				a.loginForm.errText = "Login failed. Please try again."
			}
			return a, nil
		}
		a.setStatus("Logged in successfully")
		return a, a.navigate(viewDashboard)

	case registerResultMsg:
		a.registerForm.submitting = false
		if msg.err != nil {
			a.log.Warn("register failed", "err", msg.err)
			a.registerForm.errText = "Registration failed. Please try again."
			return a, nil
		}
		a.setStatus("Account created, please log in")
		return a, a.navigate(viewLogin)

	case logoutMsg:
		if msg.err != nil {
			a.log.Warn("logout failed", "err", msg.err)
			a.setError("Failed to log out")
			return a, nil
		}
		a.packages = nil
		a.bookings = nil
		a.setStatus("Logged out successfully")
		return a, a.navigate(viewLogin)
	}

	// Cursor blink and other component messages flow to the active form.
	return a, a.updateActiveForm(msg)
}

func (a *App) updateActiveForm(msg tea.Msg) tea.Cmd {
	switch a.view {
	case viewPackageForm:
		return a.pkgForm.updateFocused(msg)
	case viewBookingForm:
		return a.bookingForm.updateFocused(msg)
	case viewLogin:
		return a.loginForm.updateFocused(msg)
	case viewRegister:
		return a.registerForm.updateFocused(msg)
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal != modalNone {
		return a.handleModalKey(msg)
	}
	switch a.view {
	case viewDashboard:
		return a.handleDashboardKey(msg)
	case viewPackages:
		return a.handlePackagesKey(msg)
	case viewPackageForm:
		return a.handlePackageFormKey(msg)
	case viewBookingForm:
		return a.handleBookingFormKey(msg)
	case viewLogin:
		return a.handleLoginKey(msg)
	case viewRegister:
		return a.handleRegisterKey(msg)
	}
	return a, nil
}

func (a *App) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "a":
		return a, a.openPackageForm("")
	case "v":
		return a, a.navigate(viewPackages)
	case "b":
		return a, a.navigate(viewBookingForm)
	case "o":
		return a, a.logoutCmd()
	case "tab":
		a.dashFocus = (a.dashFocus + 1) % 2
	case "up", "k":
		if a.dashFocus == paneDashPackages && a.pkgCursor > 0 {
			a.pkgCursor--
		}
		if a.dashFocus == paneDashBookings && a.bkCursor > 0 {
			a.bkCursor--
		}
	case "down", "j":
		if a.dashFocus == paneDashPackages && a.pkgCursor < len(a.packages)-1 {
			a.pkgCursor++
		}
		if a.dashFocus == paneDashBookings && a.bkCursor < len(a.bookings)-1 {
			a.bkCursor++
		}
	case "e":
		if a.dashFocus == paneDashPackages && len(a.packages) > 0 {
			return a, a.openPackageForm(a.packages[a.pkgCursor].ID)
		}
	case "d", "delete":
		if a.dashFocus == paneDashPackages && len(a.packages) > 0 {
			a.modal = modalConfirmDelete
			a.pendingDeleteID = a.packages[a.pkgCursor].ID
		}
	case "s":
		if a.dashFocus == paneDashBookings && len(a.bookings) > 0 {
			a.modal = modalStatusPicker
			a.statusCursor = statusIndex(a.bookings[a.bkCursor].Status)
		}
	}
	return a, nil
}

func (a *App) handlePackagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "g":
		return a, a.navigate(viewDashboard)
	case "a":
		return a, a.openPackageForm("")
	case "up", "k":
		if a.pkgCursor > 0 {
			a.pkgCursor--
		}
	case "down", "j":
		if a.pkgCursor < len(a.packages)-1 {
			a.pkgCursor++
		}
	case "e", "enter":
		if len(a.packages) > 0 {
			return a, a.openPackageForm(a.packages[a.pkgCursor].ID)
		}
	case "d", "delete":
		if len(a.packages) > 0 {
			a.modal = modalConfirmDelete
			a.pendingDeleteID = a.packages[a.pkgCursor].ID
		}
	}
	return a, nil
}

func (a *App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmDelete:
		switch msg.String() {
		case "y", "Y", "enter":
			id := a.pendingDeleteID
			a.modal = modalNone
			a.pendingDeleteID = ""
			return a, a.deletePackageCmd(id)
		case "n", "N", "esc":
			a.modal = modalNone
			a.pendingDeleteID = ""
		}
	case modalStatusPicker:
		switch msg.String() {
		case "esc":
			a.modal = modalNone
		case "up", "k":
			if a.statusCursor > 0 {
				a.statusCursor--
			}
		case "down", "j":
			if a.statusCursor < len(model.Statuses)-1 {
				a.statusCursor++
			}
		case "enter":
			a.modal = modalNone
			if len(a.bookings) == 0 {
				return a, nil
			}
			booking := a.bookings[a.bkCursor]
			status := model.Statuses[a.statusCursor]
			if booking.Status == status {
				return a, nil
			}
			return a, a.updateBookingStatusCmd(booking.ID, status)
		}
	}
	return a, nil
}

func (a *App) handlePackageFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.pkgForm
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		return a, a.navigate(viewDashboard)
	case "tab", "down":
		f.focusField(f.focus + 1)
		return a, nil
	case "shift+tab", "up":
		f.focusField(f.focus - 1)
		return a, nil
	case "enter":
		return a, a.submitPackageForm()
	}
	return a, f.updateFocused(msg)
}

func (a *App) submitPackageForm() tea.Cmd {
	f := &a.pkgForm
	if f.submitting || f.loading {
		return nil
	}
	f.errText = ""
	draft, err := f.draft()
	if err != nil {
		f.errText = err.Error()
		return nil
	}
	f.submitting = true
	return a.savePackageCmd(f.id, draft)
}

func (a *App) handleBookingFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.bookingForm
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		return a, a.navigate(viewDashboard)
	case "tab":
		f.focusSlot(f.focus + 1)
		return a, nil
	case "shift+tab":
		f.focusSlot(f.focus - 1)
		return a, nil
	case "up":
		if f.focus == bfPicker {
			f.picker.moveCursor(-1)
		} else {
			f.focusSlot(f.focus - 1)
		}
		return a, nil
	case "down":
		if f.focus == bfPicker {
			f.picker.moveCursor(1)
		} else {
			f.focusSlot(f.focus + 1)
		}
		return a, nil
	case "enter":
		if f.focus == bfPicker {
			if f.picker.choose() {
				f.errText = ""
			}
			return a, nil
		}
		return a, a.submitBookingForm()
	case "ctrl+s":
		return a, a.submitBookingForm()
	}
	return a, f.updateFocused(msg)
}

func (a *App) submitBookingForm() tea.Cmd {
	f := &a.bookingForm
	if f.submitting {
		return nil
	}
	f.errText = ""
	draft, err := f.draft()
	if err != nil {
		f.errText = err.Error()
		return nil
	}
	f.submitting = true
	return a.createBookingCmd(draft)
}

func (a *App) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.loginForm
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+n":
		return a, a.navigate(viewRegister)
	case "tab", "down":
		f.focusField(f.focus + 1)
		return a, nil
	case "shift+tab", "up":
		f.focusField(f.focus - 1)
		return a, nil
	case "enter":
		if f.submitting {
			return a, nil
		}
		f.errText = ""
		creds, err := f.credentials()
		if err != nil {
			f.errText = err.Error()
			return a, nil
		}
		f.submitting = true
		return a, a.loginCmd(creds)
	}
	return a, f.updateFocused(msg)
}

func (a *App) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.registerForm
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		return a, a.navigate(viewLogin)
	case "tab", "down":
		f.focusField(f.focus + 1)
		return a, nil
	case "shift+tab", "up":
		f.focusField(f.focus - 1)
		return a, nil
	case "enter":
		if f.submitting {
			return a, nil
		}
		f.errText = ""
		reg, err := f.registration()
		if err != nil {
			f.errText = err.Error()
			return a, nil
		}
		f.submitting = true
		return a, a.registerCmd(reg)
	}
	return a, f.updateFocused(msg)
}

func statusIndex(s model.BookingStatus) int {
	for i, candidate := range model.Statuses {
		if candidate == s {
			return i
		}
	}
	return 0
}
