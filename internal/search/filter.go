// Package search holds the pure logic of the catalog's search and filter
// engines: facet selection, filter request construction, and the windowed
// pagination computation. It has no UI or transport dependencies.
package search

import (
	"strconv"

	"github.com/avelius/marquee/internal/api"
	"github.com/avelius/marquee/internal/domain"
)

// ItemsPerPage is the fixed filter-search page size (5 columns x 5 rows).
const ItemsPerPage = 25

// Selection is the multi-select facet state of the filter view. Each facet
// holds unique ids; toggling an id twice restores the original set.
type Selection struct {
	GenreIDs  []string
	TypeIDs   []string
	StatusIDs []string
	YearIDs   []string
	SortBy    string
}

// NewSelection returns an empty selection with the default sort order
func NewSelection() Selection {
	return Selection{SortBy: domain.SortReleased}
}

// ToggleGenre adds or removes a genre id
func (s *Selection) ToggleGenre(id string) { s.GenreIDs = toggleID(s.GenreIDs, id) }

// ToggleType adds or removes a type id
func (s *Selection) ToggleType(id string) { s.TypeIDs = toggleID(s.TypeIDs, id) }

// ToggleStatus adds or removes a status id
func (s *Selection) ToggleStatus(id string) { s.StatusIDs = toggleID(s.StatusIDs, id) }

// ToggleYear adds or removes a year id
func (s *Selection) ToggleYear(id string) { s.YearIDs = toggleID(s.YearIDs, id) }

// SetSort sets the sort key, falling back to the default when empty
func (s *Selection) SetSort(key string) {
	if key == "" {
		key = domain.SortReleased
	}
	s.SortBy = key
}

// HasGenre reports whether a genre id is selected
func (s Selection) HasGenre(id string) bool { return containsID(s.GenreIDs, id) }

// HasType reports whether a type id is selected
func (s Selection) HasType(id string) bool { return containsID(s.TypeIDs, id) }

// HasStatus reports whether a status id is selected
func (s Selection) HasStatus(id string) bool { return containsID(s.StatusIDs, id) }

// HasYear reports whether a year id is selected
func (s Selection) HasYear(id string) bool { return containsID(s.YearIDs, id) }

// BuildRequest constructs the filter payload for one page. Empty facets are
// omitted rather than sent as empty lists ("no constraint", not "match
// nothing"). The year facet is multi-select in the UI but the endpoint only
// accepts a single year, so the first selected year is sent; the extra
// selections are intentionally not forwarded, matching the server contract.
func (s Selection) BuildRequest(page int) api.FilterRequest {
	req := api.FilterRequest{
		SortBy: s.SortBy,
		Page:   page,
		Limit:  ItemsPerPage,
	}
	if req.SortBy == "" {
		req.SortBy = domain.SortReleased
	}
	if len(s.GenreIDs) > 0 {
		req.GenreIDs = append([]string(nil), s.GenreIDs...)
	}
	if len(s.TypeIDs) > 0 {
		req.TypeIDs = append([]string(nil), s.TypeIDs...)
	}
	if len(s.StatusIDs) > 0 {
		req.StatusIDs = append([]string(nil), s.StatusIDs...)
	}
	if len(s.YearIDs) > 0 {
		if year, err := strconv.Atoi(s.YearIDs[0]); err == nil {
			req.Year = &year
		}
	}
	return req
}

func toggleID(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
