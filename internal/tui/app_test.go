package tui

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/tripdesk/internal/api"
	"github.com/tripdesk/tripdesk/internal/model"
	"github.com/tripdesk/tripdesk/internal/session"
)

// fakeBackend satisfies all three service interfaces with canned results
// and call counters.
type fakeBackend struct {
	packages []model.TravelPackage
	bookings []model.Booking

	listPackagesCalls int
	createCalls       int
	updateCalls       int
	deleteCalls       int
	bookingCalls      int
	statusCalls       int
	loginCalls        int
	registerCalls     int

	listErr   error
	createErr error
	deleteErr error
	statusErr error
	loginErr  error

	loginToken   string
	statusResult model.Booking
}

func (f *fakeBackend) ListPackages(context.Context) ([]model.TravelPackage, error) {
	f.listPackagesCalls++
	return f.packages, f.listErr
}

func (f *fakeBackend) GetPackage(_ context.Context, id string) (model.TravelPackage, error) {
	for _, p := range f.packages {
		if p.ID == id {
			return p, nil
		}
	}
	return model.TravelPackage{}, &api.APIError{Status: 404, Message: "package not found"}
}

func (f *fakeBackend) CreatePackage(_ context.Context, draft model.PackageDraft) (model.TravelPackage, error) {
	f.createCalls++
	return model.TravelPackage{ID: "new", Title: draft.Title}, f.createErr
}

func (f *fakeBackend) UpdatePackage(_ context.Context, id string, draft model.PackageDraft) (model.TravelPackage, error) {
	f.updateCalls++
	return model.TravelPackage{ID: id, Title: draft.Title}, nil
}

func (f *fakeBackend) DeletePackage(context.Context, string) error {
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeBackend) ListBookings(context.Context) ([]model.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBackend) CreateBooking(_ context.Context, draft model.BookingDraft) (model.Booking, error) {
	f.bookingCalls++
	return model.Booking{ID: "b-new", CustomerName: draft.CustomerName, Status: model.StatusPending}, nil
}

func (f *fakeBackend) UpdateBookingStatus(_ context.Context, id string, status model.BookingStatus) (model.Booking, error) {
	f.statusCalls++
	if f.statusErr != nil {
		return model.Booking{}, f.statusErr
	}
	if f.statusResult.ID != "" {
		return f.statusResult, nil
	}
	return model.Booking{ID: id, Status: status}, nil
}

func (f *fakeBackend) Login(context.Context, model.Credentials) (string, error) {
	f.loginCalls++
	return f.loginToken, f.loginErr
}

func (f *fakeBackend) Register(context.Context, model.Registration) error {
	f.registerCalls++
	return nil
}

func newTestApp(t *testing.T, fake *fakeBackend, loggedIn bool) (*App, *session.Manager) {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	if loggedIn {
		require.NoError(t, store.Save("tok-test"))
	}
	sess, err := session.NewManager(store)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	services := Services{Packages: fake, Bookings: fake, Auth: fake}
	return New(context.Background(), services, sess, "$", "02/01/2006", log), sess
}

func applyCmd(t *testing.T, a *App, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	_, next := a.Update(cmd())
	return next
}

func TestInitialViewFollowsSession(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, &fakeBackend{}, false)
	require.Equal(t, viewLogin, a.view)

	a, _ = newTestApp(t, &fakeBackend{}, true)
	require.Equal(t, viewDashboard, a.view)
}

func TestRouteGuardRedirectsToLogin(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, &fakeBackend{}, false)
	cmd := a.navigate(viewPackages)
	require.NotNil(t, cmd)
	require.Equal(t, viewLogin, a.view)
	require.Equal(t, "Please log in to continue", a.status)
	require.True(t, a.statusErr)
}

func TestLoginSuccessPersistsTokenAndNavigates(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{loginToken: "tok-abc"}
	a, sess := newTestApp(t, fake, false)

	a.loginForm.email.SetValue("ada@example.com")
	a.loginForm.password.SetValue("hunter2")

	_, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, a.loginForm.submitting)

	applyCmd(t, a, cmd)
	require.Equal(t, 1, fake.loginCalls)
	require.Equal(t, "tok-abc", sess.Token())
	require.Equal(t, viewDashboard, a.view)
}

func TestLoginRejectedShowsInvalidCredentials(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{loginErr: &api.APIError{Status: 401, Message: "invalid credentials"}}
	a, sess := newTestApp(t, fake, false)

	a.loginForm.email.SetValue("ada@example.com")
	a.loginForm.password.SetValue("wrong")

	_, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	applyCmd(t, a, cmd)

	require.Equal(t, viewLogin, a.view)
	require.Equal(t, "Invalid credentials", a.loginForm.errText)
	require.False(t, a.loginForm.submitting)
	require.False(t, sess.Authenticated())
}

func TestLoginValidationBlocksRequest(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	a, _ := newTestApp(t, fake, false)

	_, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Zero(t, fake.loginCalls)
	require.NotEmpty(t, a.loginForm.errText)
}

func TestRegisterSuccessReturnsToLogin(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	a, _ := newTestApp(t, fake, false)
	a.navigate(viewRegister)

	a.registerForm.name.SetValue("Ada")
	a.registerForm.email.SetValue("ada@example.com")
	a.registerForm.password.SetValue("hunter2")

	_, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	applyCmd(t, a, cmd)

	require.Equal(t, 1, fake.registerCalls)
	require.Equal(t, viewLogin, a.view)
	require.Equal(t, "Account created, please log in", a.status)
}

func TestLogoutClearsStateAndSession(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	a, sess := newTestApp(t, fake, true)
	a.packages = []model.TravelPackage{pkg("a", "Alps")}
	a.bookings = []model.Booking{{ID: "b1"}}

	_, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	applyCmd(t, a, cmd)

	require.False(t, sess.Authenticated())
	require.Equal(t, viewLogin, a.view)
	require.Nil(t, a.packages)
	require.Nil(t, a.bookings)
}

func TestPackagesLoadReplacesCollection(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, &fakeBackend{}, true)
	a.packages = []model.TravelPackage{pkg("stale", "Old")}

	seq := a.nextSeq(scopePackages)
	a.Update(packagesLoadedMsg{seq: seq, packages: pickerFixture()})

	require.Len(t, a.packages, 3)
	require.Equal(t, "1", a.packages[0].ID)
}

func TestStalePackagesLoadIgnored(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, &fakeBackend{}, true)

	first := a.nextSeq(scopePackages)
	second := a.nextSeq(scopePackages)

	a.Update(packagesLoadedMsg{seq: second, packages: pickerFixture()})
	a.Update(packagesLoadedMsg{seq: first, packages: []model.TravelPackage{pkg("old", "Old")}})

	require.Len(t, a.packages, 3, "older in-flight response must not win")
}

func TestPackagesLoadFailureNotifies(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, &fakeBackend{}, true)
	seq := a.nextSeq(scopePackages)
	a.Update(packagesLoadedMsg{seq: seq, err: &api.APIError{Status: 500, Message: "boom"}})

	require.Equal(t, "Failed to load packages", a.status)
	require.True(t, a.statusErr)
}

func TestCreatePackageDispatchesExactlyOneCreate(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	a, _ := newTestApp(t, fake, true)
	a.openPackageForm("")
	a.pkgForm = filledPackageForm()

	cmd := a.submitPackageForm()
	applyCmd(t, a, cmd)

	require.Equal(t, 1, fake.createCalls)
	require.Zero(t, fake.updateCalls)
	require.Equal(t, "Package created", a.status)
	require.Equal(t, viewPackageForm, a.view, "stays on the form for batch entry")
	require.Empty(t, a.pkgForm.inputs[pfTitle].Value(), "form cleared after create")
}

func TestEditPackageDispatchesExactlyOneUpdate(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{packages: pickerFixture()}
	a, _ := newTestApp(t, fake, true)
	a.openPackageForm("1")
	a.pkgForm.setPackage(fake.packages[0])
	a.pkgForm.inputs[pfPrice].SetValue("999")

	cmd := a.submitPackageForm()
	applyCmd(t, a, cmd)

	require.Equal(t, 1, fake.updateCalls)
	require.Zero(t, fake.createCalls)
	require.Equal(t, viewDashboard, a.view, "edit returns to the dashboard")
}

func TestStaleEditFetchNeverFillsAnotherForm(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{packages: pickerFixture()}
	a, _ := newTestApp(t, fake, true)

	a.openPackageForm("1")
	stale := a.fetchPackageCmd("1")() // in flight when the form is abandoned

	a.openPackageForm("2")
	a.Update(stale)
	require.True(t, a.pkgForm.loading, "abandoned fetch must not populate the new form")
	require.Empty(t, a.pkgForm.inputs[pfTitle].Value())

	a.Update(a.fetchPackageCmd("2")())
	require.False(t, a.pkgForm.loading)
	require.Equal(t, "Bali Retreat", a.pkgForm.inputs[pfTitle].Value())
}

func TestStaleEditFetchAfterEscapeIgnored(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{packages: pickerFixture()}
	a, _ := newTestApp(t, fake, true)

	a.openPackageForm("1")
	stale := a.fetchPackageCmd("1")()
	a.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, viewDashboard, a.view)

	a.Update(stale)
	require.True(t, a.pkgForm.loading, "closed form keeps its pre-fetch state")
}

func TestStaleSaveResultAfterEscapeIgnored(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	a, _ := newTestApp(t, fake, true)
	a.openPackageForm("")
	a.pkgForm = filledPackageForm()

	cmd := a.submitPackageForm()
	require.NotNil(t, cmd)
	a.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, viewDashboard, a.view)

	_, next := a.Update(cmd())
	require.Nil(t, next, "no re-navigation after the form was closed")
	require.Equal(t, viewDashboard, a.view)
	require.Empty(t, a.status, "no status flip for an abandoned form")
}

func TestStaleBookingSaveResultIgnored(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{packages: pickerFixture()}
	a, _ := newTestApp(t, fake, true)
	a.navigate(viewBookingForm)
	a.bookingForm.picker.setPackages(fake.packages)
	a.bookingForm.inputs[bfCustomerName].SetValue("Ada")
	a.bookingForm.inputs[bfContactInfo].SetValue("ada@example.com")
	a.bookingForm.inputs[bfTravelers].SetValue("2")
	require.True(t, a.bookingForm.picker.choose())

	cmd := a.submitBookingForm()
	require.NotNil(t, cmd)
	a.handleKey(tea.KeyMsg{Type: tea.KeyEsc})

	_, next := a.Update(cmd())
	require.Nil(t, next)
	require.Empty(t, a.status)
}

func TestStalePickerLoadIgnored(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{packages: pickerFixture()}
	a, _ := newTestApp(t, fake, true)

	a.navigate(viewBookingForm)
	stale := a.loadPickerPackagesCmd()()

	a.navigate(viewDashboard)
	a.navigate(viewBookingForm)

	a.Update(stale)
	require.True(t, a.bookingForm.picker.loading, "only the active form's load may land")

	a.Update(a.loadPickerPackagesCmd()())
	require.False(t, a.bookingForm.picker.loading)
	require.Len(t, a.bookingForm.picker.matches, 3)
}

func TestPackageFormValidationBlocksRequest(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	a, _ := newTestApp(t, fake, true)
	a.openPackageForm("")

	cmd := a.submitPackageForm()
	require.Nil(t, cmd)
	require.Zero(t, fake.createCalls)
	require.NotEmpty(t, a.pkgForm.errText)
}

func TestDeletePackageRemovesRowOnSuccess(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	a, _ := newTestApp(t, fake, true)
	a.packages = pickerFixture()
	a.pkgCursor = 1

	_, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	require.Nil(t, cmd)
	require.Equal(t, modalConfirmDelete, a.modal)
	require.Equal(t, "2", a.pendingDeleteID)

	_, cmd = a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	applyCmd(t, a, cmd)

	require.Equal(t, 1, fake.deleteCalls)
	require.Len(t, a.packages, 2)
	require.Equal(t, "Package deleted successfully", a.status)
}

func TestDeletePackageKeepsRowOnFailure(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{deleteErr: &api.APIError{Status: 500, Message: "boom"}}
	a, _ := newTestApp(t, fake, true)
	a.packages = pickerFixture()

	_, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	_, cmd = a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	applyCmd(t, a, cmd)

	require.Len(t, a.packages, 3, "collection untouched when the server rejects")
	require.Equal(t, "Failed to delete package", a.status)
	require.True(t, a.statusErr)
}

func TestDeclineDeleteSendsNothing(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	a, _ := newTestApp(t, fake, true)
	a.packages = pickerFixture()

	a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	require.Equal(t, modalNone, a.modal)
	require.Empty(t, a.pendingDeleteID)
	require.Zero(t, fake.deleteCalls)
}

func TestBookingStatusAppliesServerValue(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{statusResult: model.Booking{ID: "b1", Status: model.StatusCancelled}}
	a, _ := newTestApp(t, fake, true)
	a.bookings = []model.Booking{{ID: "b1", Status: model.StatusPending}}
	a.dashFocus = paneDashBookings

	a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	require.Equal(t, modalStatusPicker, a.modal)

	a.handleKey(tea.KeyMsg{Type: tea.KeyDown}) // Confirmed
	_, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	applyCmd(t, a, cmd)

	require.Equal(t, 1, fake.statusCalls)
	require.Equal(t, model.StatusCancelled, a.bookings[0].Status, "response status wins over the picked one")
}

func TestStatusPickerNoopOnSameStatus(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	a, _ := newTestApp(t, fake, true)
	a.bookings = []model.Booking{{ID: "b1", Status: model.StatusPending}}
	a.dashFocus = paneDashBookings

	a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	_, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Nil(t, cmd)
	require.Zero(t, fake.statusCalls)
}

func TestStaleBookingStatusDropped(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, &fakeBackend{}, true)
	a.bookings = []model.Booking{{ID: "b1", Status: model.StatusPending}}

	first := a.nextSeq(scopeBookingStatus + "b1")
	second := a.nextSeq(scopeBookingStatus + "b1")

	a.Update(bookingStatusMsg{id: "b1", seq: second, booking: model.Booking{ID: "b1", Status: model.StatusCancelled}})
	a.Update(bookingStatusMsg{id: "b1", seq: first, booking: model.Booking{ID: "b1", Status: model.StatusConfirmed}})

	require.Equal(t, model.StatusCancelled, a.bookings[0].Status)
}

func TestBookingStatusSequencesArePerBooking(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, &fakeBackend{}, true)
	a.bookings = []model.Booking{
		{ID: "b1", Status: model.StatusPending},
		{ID: "b2", Status: model.StatusPending},
	}

	s1 := a.nextSeq(scopeBookingStatus + "b1")
	s2 := a.nextSeq(scopeBookingStatus + "b2")

	a.Update(bookingStatusMsg{id: "b1", seq: s1, booking: model.Booking{ID: "b1", Status: model.StatusConfirmed}})
	a.Update(bookingStatusMsg{id: "b2", seq: s2, booking: model.Booking{ID: "b2", Status: model.StatusCancelled}})

	require.Equal(t, model.StatusConfirmed, a.bookings[0].Status)
	require.Equal(t, model.StatusCancelled, a.bookings[1].Status)
}

func TestCreateBookingFlow(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{packages: pickerFixture()}
	a, _ := newTestApp(t, fake, true)
	a.navigate(viewBookingForm)
	a.bookingForm.picker.setPackages(fake.packages)

	a.bookingForm.inputs[bfCustomerName].SetValue("Ada")
	a.bookingForm.inputs[bfContactInfo].SetValue("ada@example.com")
	a.bookingForm.inputs[bfTravelers].SetValue("2")
	require.True(t, a.bookingForm.picker.choose())

	cmd := a.submitBookingForm()
	applyCmd(t, a, cmd)

	require.Equal(t, 1, fake.bookingCalls)
	require.Equal(t, viewDashboard, a.view)
	require.Equal(t, "Booking created successfully", a.status)
}

func TestBookingFormValidationBlocksRequest(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	a, _ := newTestApp(t, fake, true)
	a.navigate(viewBookingForm)

	cmd := a.submitBookingForm()
	require.Nil(t, cmd)
	require.Zero(t, fake.bookingCalls)
	require.NotEmpty(t, a.bookingForm.errText)
}
