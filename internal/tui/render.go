package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/tripdesk/tripdesk/internal/model"
)

func (a *App) View() string {
	var body string
	switch a.view {
	case viewLogin:
		body = a.renderLogin()
	case viewRegister:
		body = a.renderRegister()
	case viewPackages:
		body = a.renderPackages()
	case viewPackageForm:
		body = a.renderPackageForm()
	case viewBookingForm:
		body = a.renderBookingForm()
	default:
		body = a.renderDashboard()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	if a.status != "" {
		body += "\n\n" + statusRender(a.status, a.statusErr)
	}
	return body
}

func (a *App) renderDashboard() string {
	title := titleStyle.Render("Admin Dashboard")

	pkgHeader := "Travel Packages"
	bkHeader := "Bookings"
	if a.dashFocus == paneDashPackages {
		pkgHeader = "▸ " + pkgHeader
	} else {
		bkHeader = "▸ " + bkHeader
	}

	out := title + "\n\n" + headerStyle.Render(pkgHeader) + "\n"
	out += a.renderPackageRows(a.dashFocus == paneDashPackages)
	out += "\n" + headerStyle.Render(bkHeader) + "\n"
	out += a.renderBookingRows(a.dashFocus == paneDashBookings)
	out += "\n" + a.footer(
		a.keys.AddPackage, a.keys.Packages, a.keys.AddBooking,
		a.keys.SwitchPane, a.keys.Edit, a.keys.Delete, a.keys.Status,
		a.keys.Logout, a.keys.Quit,
	)
	return out
}

func (a *App) renderPackageRows(focused bool) string {
	header := fmt.Sprintf("  %-16s %-24s %10s  %-28s %6s",
		"Destination", "Title", "Price", "Available Dates", "Max")
	lines := []string{mutedStyle.Render(header)}
	if len(a.packages) == 0 {
		lines = append(lines, "  No packages found.")
		return strings.Join(lines, "\n") + "\n"
	}
	for i, p := range a.packages {
		marker := "  "
		if focused && i == a.pkgCursor {
			marker = "▶ "
		}
		lines = append(lines, fmt.Sprintf("%s%-16s %-24s %s%9.2f  %-28s %6s",
			marker,
			truncate(p.Destination, 16),
			truncate(p.Title, 24),
			a.currency,
			p.Price,
			truncate(a.formatDates(p.AvailableDates), 28),
			maxTravelersLabel(p.MaxTravelers),
		))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (a *App) renderBookingRows(focused bool) string {
	header := fmt.Sprintf("  %-20s %-20s %-24s %9s  %-9s",
		"Customer Name", "Contact Info", "Package", "Travelers", "Status")
	lines := []string{mutedStyle.Render(header)}
	if len(a.bookings) == 0 {
		lines = append(lines, "  No bookings found.")
		return strings.Join(lines, "\n") + "\n"
	}
	for i, b := range a.bookings {
		marker := "  "
		if focused && i == a.bkCursor {
			marker = "▶ "
		}
		lines = append(lines, fmt.Sprintf("%s%-20s %-20s %-24s %9d  %-9s",
			marker,
			truncate(b.CustomerName, 20),
			truncate(b.ContactInfo, 20),
			truncate(b.SelectedPackage.Title, 24),
			b.NumberOfTravelers,
			b.Status,
		))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (a *App) renderPackages() string {
	title := titleStyle.Render("Travel Packages")
	out := title + "\n\n"
	if len(a.packages) == 0 {
		out += "No packages found.\n"
	}
	for i, p := range a.packages {
		head := headerStyle.Render(p.Title) + "  " + mutedStyle.Render(p.Destination)
		body := head + "\n"
		if p.Description != "" {
			body += p.Description + "\n"
		}
		badges := []string{fmt.Sprintf("Price: %s%.2f", a.currency, p.Price)}
		if p.MaxTravelers > 0 {
			badges = append(badges, fmt.Sprintf("Max Travelers: %d", p.MaxTravelers))
		}
		if p.PackageType != "" {
			badges = append(badges, p.PackageType)
		}
		body += mutedStyle.Render(strings.Join(badges, "  |  ")) + "\n"
		if len(p.AvailableDates) > 0 {
			body += "Available Dates: " + a.formatDates(p.AvailableDates) + "\n"
		}
		card := cardStyle.Render(strings.TrimRight(body, "\n"))
		if i == a.pkgCursor {
			card = lipgloss.NewStyle().Bold(true).Render("▶") + "\n" + card
		}
		out += card + "\n"
	}
	out += "\n" + a.footer(a.keys.Up, a.keys.Down, a.keys.Edit, a.keys.Delete, a.keys.AddPackage, a.keys.Back, a.keys.Quit)
	return out
}

func (a *App) renderPackageForm() string {
	f := &a.pkgForm
	heading := "Add Package"
	if f.editMode() {
		heading = "Edit Package"
	}
	out := titleStyle.Render(heading) + "\n\n"
	if f.loading {
		out += "Loading...\n"
	}
	if f.errText != "" {
		out += errorStyle.Render(f.errText) + "\n"
	}
	for i := range f.inputs {
		out += headerStyle.Render(packageFieldLabels[i]) + "\n" + f.inputs[i].View() + "\n"
	}
	submitLabel := "[enter] Submit"
	if f.submitting {
		submitLabel = "Submitting..."
	}
	out += "\n" + mutedStyle.Render(submitLabel+"  [tab] Next field  [esc] Cancel")
	return out
}

func (a *App) renderBookingForm() string {
	f := &a.bookingForm
	out := titleStyle.Render("Add Booking") + "\n\n"
	if f.errText != "" {
		out += errorStyle.Render(f.errText) + "\n"
	}
	labels := [3]string{"Customer Name", "Contact Information", "Number of Travelers"}
	for i := range f.inputs {
		out += headerStyle.Render(labels[i]) + "\n" + f.inputs[i].View() + "\n"
	}

	out += headerStyle.Render("Travel Package") + "\n"
	selected := "Select a package"
	if f.picker.selectedTitle != "" {
		selected = f.picker.selectedTitle
	}
	out += "Selected: " + selected + "\n"
	out += f.picker.filter.View() + "\n"
	switch {
	case f.picker.loading:
		out += mutedStyle.Render("Loading packages...") + "\n"
	case len(f.picker.matches) == 0:
		out += mutedStyle.Render("No packages found.") + "\n"
	default:
		for i, pkg := range f.picker.matches {
			marker := "  "
			if f.focus == bfPicker && i == f.picker.cursor {
				marker = "▶ "
			}
			out += fmt.Sprintf("%s%s (%s)\n", marker, pkg.Title, pkg.Destination)
		}
	}

	submitLabel := "[enter] Add Booking"
	if f.submitting {
		submitLabel = "Submitting..."
	}
	out += "\n" + mutedStyle.Render(submitLabel+"  [tab] Next field  [esc] Cancel")
	return out
}

func (a *App) renderLogin() string {
	out := titleStyle.Render("Admin Login") + "\n\n"
	if a.loginForm.errText != "" {
		out += errorStyle.Render(a.loginForm.errText) + "\n"
	}
	out += "Email\n" + a.loginForm.email.View() + "\n"
	out += "Password\n" + a.loginForm.password.View() + "\n"
	label := "[enter] Login"
	if a.loginForm.submitting {
		label = "Logging in..."
	}
	out += "\n" + mutedStyle.Render(label+"  [tab] Next field  [ctrl+n] Register")
	return out
}

func (a *App) renderRegister() string {
	out := titleStyle.Render("Register") + "\n\n"
	if a.registerForm.errText != "" {
		out += errorStyle.Render(a.registerForm.errText) + "\n"
	}
	out += "Name\n" + a.registerForm.name.View() + "\n"
	out += "Email\n" + a.registerForm.email.View() + "\n"
	out += "Password\n" + a.registerForm.password.View() + "\n"
	label := "[enter] Register"
	if a.registerForm.submitting {
		label = "Registering..."
	}
	out += "\n" + mutedStyle.Render(label+"  [esc] Back to login")
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalConfirmDelete:
		return modalStyle.Render("Are you sure you want to delete this package?\n[y] Yes  [n] No")
	case modalStatusPicker:
		out := headerStyle.Render("Set booking status") + "\n"
		for i, s := range model.Statuses {
			marker := "  "
			if i == a.statusCursor {
				marker = "▶ "
			}
			out += marker + string(s) + "\n"
		}
		out += "[enter] Apply  [esc] Cancel"
		return modalStyle.Render(out)
	}
	return ""
}

func (a *App) footer(bindings ...key.Binding) string {
	return mutedStyle.Render(renderHelp(bindings))
}

// formatDates joins dates for display, rendering ISO dates in the
// configured layout. The backend stores dates as free-form strings, so
// anything that does not parse is shown verbatim.
func (a *App) formatDates(dates []string) string {
	out := make([]string, len(dates))
	for i, d := range dates {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			out[i] = t.Format(a.dateFormat)
		} else {
			out[i] = d
		}
	}
	return strings.Join(out, ", ")
}

func maxTravelersLabel(n int) string {
	if n <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
