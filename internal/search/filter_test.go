package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelius/marquee/internal/domain"
)

func TestSelectionToggleAddsAndRemoves(t *testing.T) {
	s := NewSelection()

	s.ToggleGenre("g1")
	s.ToggleGenre("g2")
	assert.True(t, s.HasGenre("g1"))
	assert.True(t, s.HasGenre("g2"))
	assert.Equal(t, []string{"g1", "g2"}, s.GenreIDs)

	// Toggling again removes; the rest of the set is untouched
	s.ToggleGenre("g1")
	assert.False(t, s.HasGenre("g1"))
	assert.Equal(t, []string{"g2"}, s.GenreIDs)
}

func TestSelectionToggleIsIdempotentInPairs(t *testing.T) {
	s := NewSelection()
	s.ToggleType("movie")
	s.ToggleStatus("ended")

	before := s.BuildRequest(1)

	s.ToggleYear("1999")
	s.ToggleYear("1999")

	after := s.BuildRequest(1)
	assert.Equal(t, before, after)
}

func TestSelectionDefaultSort(t *testing.T) {
	s := NewSelection()
	assert.Equal(t, domain.SortReleased, s.SortBy)

	s.SetSort(domain.SortRating)
	assert.Equal(t, domain.SortRating, s.SortBy)

	// Empty falls back to the default
	s.SetSort("")
	assert.Equal(t, domain.SortReleased, s.SortBy)
}

func TestBuildRequestOmitsEmptyFacets(t *testing.T) {
	s := NewSelection()
	s.ToggleGenre("g7")

	req := s.BuildRequest(3)
	data, err := json.Marshal(req)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))

	// Selected facets are present, empty ones are absent entirely
	assert.Contains(t, fields, "genreIds")
	assert.NotContains(t, fields, "typeIds")
	assert.NotContains(t, fields, "statusIds")
	assert.NotContains(t, fields, "year")

	assert.Contains(t, fields, "sortBy")
	assert.Contains(t, fields, "page")
	assert.Contains(t, fields, "limit")
}

func TestBuildRequestYearNarrowing(t *testing.T) {
	s := NewSelection()
	s.ToggleYear("2001")
	s.ToggleYear("2010")

	// Only the first selected year goes to the server
	req := s.BuildRequest(1)
	require.NotNil(t, req.Year)
	assert.Equal(t, 2001, *req.Year)

	// Removing the first promotes the next
	s.ToggleYear("2001")
	req = s.BuildRequest(1)
	require.NotNil(t, req.Year)
	assert.Equal(t, 2010, *req.Year)
}

func TestBuildRequestPageAndLimit(t *testing.T) {
	s := NewSelection()
	req := s.BuildRequest(4)
	assert.Equal(t, 4, req.Page)
	assert.Equal(t, ItemsPerPage, req.Limit)
	assert.Equal(t, domain.SortReleased, req.SortBy)
}

func TestBuildRequestCopiesSlices(t *testing.T) {
	s := NewSelection()
	s.ToggleGenre("g1")

	req := s.BuildRequest(1)
	s.ToggleGenre("g2")

	// The earlier request must not observe later selection edits
	assert.Equal(t, []string{"g1"}, req.GenreIDs)
}

func TestBuildRequestIgnoresMalformedYear(t *testing.T) {
	s := NewSelection()
	s.YearIDs = []string{"not-a-year"}
	req := s.BuildRequest(1)
	assert.Nil(t, req.Year)
}
