package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tripdesk/tripdesk/internal/model"
)

func newInput(placeholder string) textinput.Model {
	inp := textinput.New()
	inp.Placeholder = placeholder
	inp.Prompt = "> "
	inp.CharLimit = 256
	return inp
}

// ---------------------------------------------------------------------------
// Package form (create and edit share one form; the identifier decides)
// ---------------------------------------------------------------------------

const (
	pfDestination = iota
	pfTitle
	pfDescription
	pfPrice
	pfDates
	pfMaxTravelers
	pfType
	pfFieldCount
)

var packageFieldLabels = [pfFieldCount]string{
	"Destination", "Title", "Description", "Price", "Available Dates", "Max Travelers", "Package Type",
}

type packageForm struct {
	id         string // empty in create mode
	inputs     [pfFieldCount]textinput.Model
	focus      int
	errText    string
	loading    bool // edit-mode fetch in flight
	submitting bool
}

func newPackageForm(id string) packageForm {
	f := packageForm{id: id}
	f.inputs[pfDestination] = newInput("Enter destination")
	f.inputs[pfTitle] = newInput("Enter title")
	f.inputs[pfDescription] = newInput("Enter description")
	f.inputs[pfPrice] = newInput("Enter price")
	f.inputs[pfDates] = newInput("Enter available dates (comma-separated)")
	f.inputs[pfMaxTravelers] = newInput("Enter max travelers")
	f.inputs[pfType] = newInput("Enter package type")
	f.inputs[0].Focus()
	f.loading = id != ""
	return f
}

func (f *packageForm) editMode() bool { return f.id != "" }

// setPackage populates the fields from a fetched record (edit mode).
func (f *packageForm) setPackage(p model.TravelPackage) {
	f.inputs[pfDestination].SetValue(p.Destination)
	f.inputs[pfTitle].SetValue(p.Title)
	f.inputs[pfDescription].SetValue(p.Description)
	f.inputs[pfPrice].SetValue(strconv.FormatFloat(p.Price, 'f', -1, 64))
	f.inputs[pfDates].SetValue(strings.Join(p.AvailableDates, ", "))
	if p.MaxTravelers > 0 {
		f.inputs[pfMaxTravelers].SetValue(strconv.Itoa(p.MaxTravelers))
	}
	f.inputs[pfType].SetValue(p.PackageType)
	f.loading = false
}

// draft parses the field values and runs required-field validation. A
// non-nil error means nothing may be sent.
func (f *packageForm) draft() (model.PackageDraft, error) {
	var verr model.ValidationError
	d := model.PackageDraft{
		Destination:    strings.TrimSpace(f.inputs[pfDestination].Value()),
		Title:          strings.TrimSpace(f.inputs[pfTitle].Value()),
		Description:    strings.TrimSpace(f.inputs[pfDescription].Value()),
		PackageType:    strings.TrimSpace(f.inputs[pfType].Value()),
		AvailableDates: splitDates(f.inputs[pfDates].Value()),
	}
	if raw := strings.TrimSpace(f.inputs[pfPrice].Value()); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			verr.Fields = append(verr.Fields, model.FieldError{Field: "price", Message: "price must be a number"})
		}
		d.Price = price
	}
	if raw := strings.TrimSpace(f.inputs[pfMaxTravelers].Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.Fields = append(verr.Fields, model.FieldError{Field: "maxTravelers", Message: "max travelers must be a whole number"})
		}
		d.MaxTravelers = n
	}
	if len(verr.Fields) > 0 {
		return d, &verr
	}
	if err := d.Validate(); err != nil {
		return d, err
	}
	return d, nil
}

func (f *packageForm) reset() {
	*f = newPackageForm("")
}

func (f *packageForm) focusField(i int) {
	if i < 0 {
		i = pfFieldCount - 1
	}
	if i >= pfFieldCount {
		i = 0
	}
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *packageForm) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func splitDates(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Booking form
// ---------------------------------------------------------------------------

const (
	bfCustomerName = iota
	bfContactInfo
	bfTravelers
	bfPicker
	bfSlotCount
)

type bookingForm struct {
	inputs     [3]textinput.Model
	picker     packagePicker
	focus      int
	errText    string
	submitting bool
}

func newBookingForm() bookingForm {
	f := bookingForm{picker: newPackagePicker()}
	f.inputs[bfCustomerName] = newInput("Enter customer name")
	f.inputs[bfContactInfo] = newInput("Enter contact info")
	f.inputs[bfTravelers] = newInput("Enter number of travelers")
	f.inputs[0].Focus()
	return f
}

func (f *bookingForm) draft() (model.BookingDraft, error) {
	var verr model.ValidationError
	d := model.BookingDraft{
		CustomerName:    strings.TrimSpace(f.inputs[bfCustomerName].Value()),
		ContactInfo:     strings.TrimSpace(f.inputs[bfContactInfo].Value()),
		SelectedPackage: f.picker.selectedID,
	}
	if raw := strings.TrimSpace(f.inputs[bfTravelers].Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.Fields = append(verr.Fields, model.FieldError{Field: "numberOfTravelers", Message: "number of travelers must be a whole number"})
		}
		d.NumberOfTravelers = n
	}
	if len(verr.Fields) > 0 {
		return d, &verr
	}
	if err := d.Validate(); err != nil {
		return d, err
	}
	return d, nil
}

func (f *bookingForm) reset() {
	packages := f.picker.packages
	*f = newBookingForm()
	f.picker.setPackages(packages)
}

func (f *bookingForm) focusSlot(i int) {
	if i < 0 {
		i = bfSlotCount - 1
	}
	if i >= bfSlotCount {
		i = 0
	}
	if f.focus < bfPicker {
		f.inputs[f.focus].Blur()
	} else {
		f.picker.filter.Blur()
	}
	f.focus = i
	if f.focus < bfPicker {
		f.inputs[f.focus].Focus()
	} else {
		f.picker.filter.Focus()
	}
}

func (f *bookingForm) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus < bfPicker {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return cmd
	}
	f.picker.filter, cmd = f.picker.filter.Update(msg)
	f.picker.refresh()
	return cmd
}

// ---------------------------------------------------------------------------
// Login and register forms
// ---------------------------------------------------------------------------

type loginForm struct {
	email      textinput.Model
	password   textinput.Model
	focus      int
	errText    string
	submitting bool
}

func newLoginForm() loginForm {
	f := loginForm{email: newInput("Email"), password: newInput("Password")}
	f.password.EchoMode = textinput.EchoPassword
	f.email.Focus()
	return f
}

func (f *loginForm) credentials() (model.Credentials, error) {
	c := model.Credentials{
		Email:    strings.TrimSpace(f.email.Value()),
		Password: f.password.Value(),
	}
	return c, c.Validate()
}

func (f *loginForm) focusField(i int) {
	if i < 0 {
		i = 1
	}
	if i > 1 {
		i = 0
	}
	f.email.Blur()
	f.password.Blur()
	f.focus = i
	if i == 0 {
		f.email.Focus()
	} else {
		f.password.Focus()
	}
}

func (f *loginForm) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == 0 {
		f.email, cmd = f.email.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return cmd
}

type registerForm struct {
	name       textinput.Model
	email      textinput.Model
	password   textinput.Model
	focus      int
	errText    string
	submitting bool
}

func newRegisterForm() registerForm {
	f := registerForm{
		name:     newInput("Name"),
		email:    newInput("Email"),
		password: newInput("Password"),
	}
	f.password.EchoMode = textinput.EchoPassword
	f.name.Focus()
	return f
}

func (f *registerForm) registration() (model.Registration, error) {
	r := model.Registration{
		Name:     strings.TrimSpace(f.name.Value()),
		Email:    strings.TrimSpace(f.email.Value()),
		Password: f.password.Value(),
	}
	return r, r.Validate()
}

func (f *registerForm) fields() []*textinput.Model {
	return []*textinput.Model{&f.name, &f.email, &f.password}
}

func (f *registerForm) focusField(i int) {
	fields := f.fields()
	if i < 0 {
		i = len(fields) - 1
	}
	if i >= len(fields) {
		i = 0
	}
	for _, inp := range fields {
		inp.Blur()
	}
	f.focus = i
	fields[i].Focus()
}

func (f *registerForm) updateFocused(msg tea.Msg) tea.Cmd {
	fields := f.fields()
	var cmd tea.Cmd
	*fields[f.focus], cmd = fields[f.focus].Update(msg)
	return cmd
}
