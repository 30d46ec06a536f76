package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/tripdesk/tripdesk/internal/model"
)

// packagePicker is the booking form's package selection control. It only
// offers currently-known packages, fetched when the form opens; the filter
// input narrows by substring and ranks matches by edit distance to the
// query so near-misses still surface first.
type packagePicker struct {
	filter        textinput.Model
	packages      []model.TravelPackage
	matches       []model.TravelPackage
	cursor        int
	selectedID    string
	selectedTitle string
	loading       bool
}

func newPackagePicker() packagePicker {
	inp := newInput("filter packages")
	return packagePicker{filter: inp, loading: true}
}

func (p *packagePicker) setPackages(packages []model.TravelPackage) {
	p.packages = packages
	p.loading = false
	p.refresh()
}

func (p *packagePicker) refresh() {
	query := strings.ToLower(strings.TrimSpace(p.filter.Value()))
	matches := make([]model.TravelPackage, 0, len(p.packages))
	for _, pkg := range p.packages {
		if query == "" || strings.Contains(strings.ToLower(pkg.Title), query) || strings.Contains(strings.ToLower(pkg.Destination), query) {
			matches = append(matches, pkg)
		}
	}
	if query != "" {
		sort.SliceStable(matches, func(i, j int) bool {
			di := levenshtein.ComputeDistance(query, strings.ToLower(matches[i].Title))
			dj := levenshtein.ComputeDistance(query, strings.ToLower(matches[j].Title))
			return di < dj
		})
	}
	p.matches = matches
	if p.cursor >= len(p.matches) {
		p.cursor = 0
	}
}

func (p *packagePicker) moveCursor(delta int) {
	next := p.cursor + delta
	if next < 0 || next >= len(p.matches) {
		return
	}
	p.cursor = next
}

// choose records the highlighted package as the form's selection.
func (p *packagePicker) choose() bool {
	if p.cursor >= len(p.matches) {
		return false
	}
	pkg := p.matches[p.cursor]
	p.selectedID = pkg.ID
	p.selectedTitle = pkg.Title
	return true
}
