package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelius/marquee/internal/adapter"
	"github.com/avelius/marquee/internal/api"
	"github.com/avelius/marquee/internal/domain"
)

func newTestCatalog(t *testing.T, handler http.Handler) *CatalogService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL, adapter.NullLogger())
	return NewCatalogService(client, adapter.NullLogger())
}

func suggestionsBody(names ...string) string {
	body := `{"success":true,"data":[`
	for i, name := range names {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"title_id":"t%d","name":%q}`, i+1, name)
	}
	return body + `]}`
}

func TestSuggestTruncatesToFive(t *testing.T) {
	svc := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(suggestionsBody("a", "b", "c", "d", "e", "f", "g")))
	}))

	got, err := svc.Suggest(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, got, MaxSuggestions)
	// Server order is preserved, the tail is dropped
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "e", got[4].Name)
}

func TestSuggestShortListUntouched(t *testing.T) {
	svc := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(suggestionsBody("only", "two")))
	}))

	got, err := svc.Suggest(context.Background(), "o")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearchRanksExactAndPrefixFirst(t *testing.T) {
	svc := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(suggestionsBody(
			"The Dune Chronicles", // contains
			"Dunkirk",             // fuzzy only
			"Dune: Part Two",      // prefix
			"Dune",                // exact
		)))
	}))

	got, err := svc.Search(context.Background(), "dune")
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "Dune", got[0].Name)
	assert.Equal(t, "Dune: Part Two", got[1].Name)
	assert.Equal(t, "The Dune Chronicles", got[2].Name)
	assert.Equal(t, "Dunkirk", got[3].Name)
}

func TestRankResultsStableAmongEqualScores(t *testing.T) {
	items := []domain.Suggestion{
		{TitleID: "t1", Name: "Alien Covenant"},
		{TitleID: "t2", Name: "Alien Resurrection"},
		{TitleID: "t3", Name: "Alien Romulus"},
	}

	// All three are prefix matches; server order must survive the sort
	ranked := rankResults(items, "alien")
	assert.Equal(t, "t1", ranked[0].TitleID)
	assert.Equal(t, "t2", ranked[1].TitleID)
	assert.Equal(t, "t3", ranked[2].TitleID)
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name  string
		title string
		query string
		want  int
	}{
		{"exact", "dune", "dune", 0},
		{"prefix", "dune: part two", "dune", 10},
		{"contains", "the dune chronicles", "dune", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchScore(tt.title, tt.query))
		})
	}

	// Fuzzy distance lands beyond every containment tier
	assert.GreaterOrEqual(t, matchScore("dunkirk", "dune"), 100)
}

func TestRankResultsEmpty(t *testing.T) {
	assert.Empty(t, rankResults(nil, "dune"))
}
