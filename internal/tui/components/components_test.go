package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuickFilterNoPatternReturnsAll(t *testing.T) {
	var q QuickFilter
	q.SetSource([]string{"Dune", "Heat", "Alien"})

	assert.False(t, q.Active())
	assert.Equal(t, []int{0, 1, 2}, q.Indexes())
	assert.Equal(t, 3, q.Len())
}

func TestQuickFilterNarrowsAndRestores(t *testing.T) {
	var q QuickFilter
	q.SetSource([]string{"Dune", "Heat", "Dune: Part Two", "Alien"})

	q.SetPattern("dune")
	require.Equal(t, 2, q.Len())
	for _, idx := range q.Indexes() {
		assert.Contains(t, []int{0, 2}, idx)
	}

	// Clearing the pattern restores the full list in source order
	q.SetPattern("")
	assert.Equal(t, []int{0, 1, 2, 3}, q.Indexes())
}

func TestQuickFilterSurvivesSourceSwap(t *testing.T) {
	var q QuickFilter
	q.SetSource([]string{"Dune"})
	q.SetPattern("du")
	require.Equal(t, 1, q.Len())

	q.SetSource([]string{"Heat", "Dunkirk"})
	assert.Equal(t, []int{1}, q.Indexes())
}

func TestSearchBoxQueryChanged(t *testing.T) {
	s := NewSearchBox("...")
	s.Focus()

	assert.False(t, s.QueryChanged())

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.True(t, s.QueryChanged())
	assert.False(t, s.QueryChanged(), "a second check without an edit reports no change")
}

func TestSearchBoxSetValueQuietDoesNot(t *testing.T) {
	s := NewSearchBox("...")
	s.SetValueQuiet("dune")
	assert.Equal(t, "dune", s.Query())
	assert.False(t, s.QueryChanged())
}

func TestSearchBoxClear(t *testing.T) {
	s := NewSearchBox("...")
	s.SetValueQuiet("dune")
	s.Clear()
	assert.Empty(t, s.Query())
	assert.False(t, s.QueryChanged())
}
