package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tripdesk/tripdesk/internal/model"
)

func pickerFixture() []model.TravelPackage {
	return []model.TravelPackage{
		{ID: "1", Title: "Autumn in Kyoto", Destination: "Japan"},
		{ID: "2", Title: "Bali Retreat", Destination: "Indonesia"},
		{ID: "3", Title: "Kyiv City Break", Destination: "Ukraine"},
	}
}

func TestPickerEmptyQueryShowsAll(t *testing.T) {
	t.Parallel()

	p := newPackagePicker()
	p.setPackages(pickerFixture())
	require.False(t, p.loading)
	require.Len(t, p.matches, 3)
}

func TestPickerSubstringFilter(t *testing.T) {
	t.Parallel()

	p := newPackagePicker()
	p.setPackages(pickerFixture())

	p.filter.SetValue("kyoto")
	p.refresh()
	require.Len(t, p.matches, 1)
	require.Equal(t, "1", p.matches[0].ID)

	// destination matches too
	p.filter.SetValue("indonesia")
	p.refresh()
	require.Len(t, p.matches, 1)
	require.Equal(t, "2", p.matches[0].ID)
}

func TestPickerRanksByEditDistance(t *testing.T) {
	t.Parallel()

	p := newPackagePicker()
	p.setPackages([]model.TravelPackage{
		{ID: "long", Title: "Kyoto Temples and Gardens Extended Tour"},
		{ID: "short", Title: "Kyoto"},
	})

	p.filter.SetValue("kyoto")
	p.refresh()

	require.Len(t, p.matches, 2)
	require.Equal(t, "short", p.matches[0].ID, "closer title ranks first")
}

func TestPickerCursorClampsOnRefresh(t *testing.T) {
	t.Parallel()

	p := newPackagePicker()
	p.setPackages(pickerFixture())
	p.moveCursor(1)
	p.moveCursor(1)
	require.Equal(t, 2, p.cursor)

	// narrowing the match set resets an out-of-range cursor
	p.filter.SetValue("bali")
	p.refresh()
	require.Equal(t, 0, p.cursor)

	// moves past either end are ignored
	p.moveCursor(-1)
	require.Equal(t, 0, p.cursor)
	p.moveCursor(5)
	require.Equal(t, 0, p.cursor)
}

func TestPickerChoose(t *testing.T) {
	t.Parallel()

	p := newPackagePicker()
	p.setPackages(pickerFixture())
	p.moveCursor(1)

	require.True(t, p.choose())
	require.Equal(t, "2", p.selectedID)
	require.Equal(t, "Bali Retreat", p.selectedTitle)
}

func TestPickerChooseWithNoMatches(t *testing.T) {
	t.Parallel()

	p := newPackagePicker()
	p.setPackages(nil)
	require.False(t, p.choose())
	require.Empty(t, p.selectedID)
}
