package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelius/marquee/internal/adapter"
	"github.com/avelius/marquee/internal/api"
	"github.com/avelius/marquee/internal/domain"
	"github.com/avelius/marquee/internal/service"
)

// testCatalog builds a catalog service that must never be reached: commands
// returned by Update are not executed in these tests.
func testCatalog() *service.CatalogService {
	client := api.NewClient("http://127.0.0.1:1", adapter.NullLogger())
	return service.NewCatalogService(client, adapter.NullLogger())
}

func testHome() homeModel {
	m := newHomeModel(testCatalog(), adapter.NullLogger(), 6)
	m.searchBox.Focus()
	return m
}

func typeRunes(t *testing.T, m homeModel, text string) homeModel {
	t.Helper()
	for _, r := range text {
		var cmd tea.Cmd
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		require.NotNil(t, cmd, "an edit should always schedule work")
	}
	return m
}

func keyPress(m homeModel, keyType tea.KeyType) (homeModel, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: keyType})
}

func sampleSuggestions(names ...string) []domain.Suggestion {
	out := make([]domain.Suggestion, len(names))
	for i, n := range names {
		out[i] = domain.Suggestion{TitleID: n, Name: n}
	}
	return out
}

func TestEachKeystrokeSupersedesTheLast(t *testing.T) {
	m := testHome()
	m = typeRunes(t, m, "du")
	require.Equal(t, 2, m.suggestSeq)

	// The tick armed by the first keystroke arrives late: dropped
	m, cmd := m.Update(SuggestDebounceMsg{Seq: 1})
	assert.Nil(t, cmd)

	// The current generation's tick triggers the fetch
	m, cmd = m.Update(SuggestDebounceMsg{Seq: 2})
	assert.NotNil(t, cmd)
	_ = m
}

func TestStaleSuggestionsDiscarded(t *testing.T) {
	m := testHome()
	m = typeRunes(t, m, "du")

	// A response for the superseded one-letter query arrives after the
	// second keystroke: both the generation and the query disagree
	m, _ = m.Update(SuggestionsMsg{Seq: 1, Query: "d", Items: sampleSuggestions("Dune")})
	assert.False(t, m.showSuggestions)
	assert.Empty(t, m.suggestions)

	m, _ = m.Update(SuggestionsMsg{Seq: 2, Query: "du", Items: sampleSuggestions("Dune", "Dunkirk")})
	assert.True(t, m.showSuggestions)
	assert.Len(t, m.suggestions, 2)
}

func TestSuggestionsWithWrongQueryDiscarded(t *testing.T) {
	m := testHome()
	m = typeRunes(t, m, "du")

	// Right generation, wrong query text: still stale
	m, _ = m.Update(SuggestionsMsg{Seq: 2, Query: "d", Items: sampleSuggestions("Dune")})
	assert.False(t, m.showSuggestions)
}

func TestEmptyQueryIsTerminal(t *testing.T) {
	m := testHome()
	m = typeRunes(t, m, "d")
	m, _ = m.Update(SuggestionsMsg{Seq: 1, Query: "d", Items: sampleSuggestions("Dune")})
	require.True(t, m.showSuggestions)

	m, _ = keyPress(m, tea.KeyBackspace)
	assert.False(t, m.showSuggestions)
	assert.Empty(t, m.suggestions)

	// Even a current-generation tick does nothing on an empty query
	m, cmd := m.Update(SuggestDebounceMsg{Seq: m.suggestSeq})
	assert.Nil(t, cmd)
}

func TestEmptySuggestionResponseShowsNothing(t *testing.T) {
	m := testHome()
	m = typeRunes(t, m, "zzz")

	m, _ = m.Update(SuggestionsMsg{Seq: m.suggestSeq, Query: "zzz", Items: nil})
	assert.False(t, m.showSuggestions)
}

func TestCommitClosesDropdownAndGuardsSuggestions(t *testing.T) {
	m := testHome()
	m = typeRunes(t, m, "dune")
	m, _ = m.Update(SuggestionsMsg{Seq: m.suggestSeq, Query: "dune", Items: sampleSuggestions("Dune")})
	require.True(t, m.showSuggestions)

	m, cmd := keyPress(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.False(t, m.showSuggestions)
	assert.True(t, m.hasSearched)
	assert.True(t, m.searching)
	assert.Equal(t, "dune", m.searchQuery)

	// While committed results for this query are showing, a current tick
	// must not reopen the dropdown
	m, cmd = m.Update(SuggestDebounceMsg{Seq: m.suggestSeq})
	assert.Nil(t, cmd)
}

func TestStaleSearchResultsDiscarded(t *testing.T) {
	m := testHome()
	m = typeRunes(t, m, "dune")
	m, _ = keyPress(m, tea.KeyEnter)
	require.Equal(t, 1, m.resultSeq)

	m, _ = m.Update(SearchResultsMsg{Seq: 0, Query: "dun", Items: sampleSuggestions("Dunkirk")})
	assert.True(t, m.searching)
	assert.Empty(t, m.results)

	m, _ = m.Update(SearchResultsMsg{Seq: 1, Query: "dune", Items: sampleSuggestions("Dune")})
	assert.False(t, m.searching)
	require.Len(t, m.results, 1)
	assert.Equal(t, "Dune", m.results[0].Name)
}

func TestRestoreSearchKeepsTypeAheadAlive(t *testing.T) {
	m := testHome()
	m = typeRunes(t, m, "dune")
	m, _ = keyPress(m, tea.KeyEnter)
	require.True(t, m.hasSearched)

	// Coming back from a detail view re-enters the committed search
	cmd := m.RestoreSearch("dune")
	require.NotNil(t, cmd)
	assert.True(t, m.searching)
	assert.Equal(t, "dune", m.searchQuery)
	assert.Equal(t, "dune", m.searchBox.Query())

	// The restore registers no edit, and a current-generation tick still
	// hits the committed-results guard: the dropdown stays shut
	m, cmd = m.Update(SuggestDebounceMsg{Seq: m.suggestSeq})
	assert.Nil(t, cmd)
	assert.False(t, m.showSuggestions)

	// The first real keystroke after the restore arms a fresh debounce
	// whose tick fetches, since "dunes" is no longer the committed query
	m = typeRunes(t, m, "s")
	m, fetchCmd := m.Update(SuggestDebounceMsg{Seq: m.suggestSeq})
	assert.NotNil(t, fetchCmd)
}

func TestResetSearchClearsEverything(t *testing.T) {
	m := testHome()
	m = typeRunes(t, m, "dune")
	m, _ = m.Update(SuggestionsMsg{Seq: m.suggestSeq, Query: "dune", Items: sampleSuggestions("Dune")})
	m, _ = keyPress(m, tea.KeyEnter)
	m, _ = m.Update(SearchResultsMsg{Seq: m.resultSeq, Query: "dune", Items: sampleSuggestions("Dune")})

	oldSuggestSeq := m.suggestSeq
	oldResultSeq := m.resultSeq
	m.ResetSearch()

	assert.Empty(t, m.searchBox.Query())
	assert.False(t, m.hasSearched)
	assert.Empty(t, m.results)
	assert.Empty(t, m.suggestions)
	assert.False(t, m.showSuggestions)

	// In-flight work from before the reset can never land
	assert.Greater(t, m.suggestSeq, oldSuggestSeq)
	assert.Greater(t, m.resultSeq, oldResultSeq)
}

func TestSelectingSuggestionCarriesSearchContext(t *testing.T) {
	m := testHome()
	m = typeRunes(t, m, "dune")
	m, _ = m.Update(SuggestionsMsg{Seq: m.suggestSeq, Query: "dune", Items: sampleSuggestions("Dune", "Dunkirk")})
	require.True(t, m.showSuggestions)

	m, _ = keyPress(m, tea.KeyDown)
	require.Equal(t, 0, m.suggestCursor)

	m, cmd := keyPress(m, tea.KeyEnter)
	require.NotNil(t, cmd)

	msg := cmd()
	open, ok := msg.(OpenDetailMsg)
	require.True(t, ok)
	assert.Equal(t, "Dune", open.TitleID)
	assert.True(t, open.Ctx.IsSearch())
	assert.Equal(t, "dune", open.Ctx.Query)
}
