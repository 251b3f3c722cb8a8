package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/avelius/marquee/internal/domain"
)

// FilterRequest is the payload for the faceted filter endpoint. Facet arrays
// are omitted entirely when empty: an absent field means "no constraint on
// this facet", while an empty list would mean "match nothing".
type FilterRequest struct {
	GenreIDs  []string `json:"genreIds,omitempty"`
	TypeIDs   []string `json:"typeIds,omitempty"`
	StatusIDs []string `json:"statusIds,omitempty"`
	Year      *int     `json:"year,omitempty"`
	SortBy    string   `json:"sortBy"`
	Page      int      `json:"page"`
	Limit     int      `json:"limit"`
}

// FilterResult is a page of faceted filter results plus the total match count
type FilterResult struct {
	Titles []domain.FilteredTitle
	Count  int
}

// Trending returns the trending titles shelf
func (c *Client) Trending(ctx context.Context, limit int) ([]domain.TitleSummary, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	env, err := c.do(ctx, http.MethodGet, "/titles/trending", query, nil)
	if err != nil {
		return nil, err
	}

	var titles []domain.TitleSummary
	if err := decodeData(env, &titles); err != nil {
		return nil, err
	}
	return titles, nil
}

// TopRated returns the top-rated titles shelf
func (c *Client) TopRated(ctx context.Context, limit int) ([]domain.TitleSummary, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	env, err := c.do(ctx, http.MethodGet, "/titles/top-rated", query, nil)
	if err != nil {
		return nil, err
	}

	var titles []domain.TitleSummary
	if err := decodeData(env, &titles); err != nil {
		return nil, err
	}
	return titles, nil
}

// SearchTitles performs a type-ahead title search. The server may return more
// entries than the dropdown shows; truncation is the caller's concern.
func (c *Client) SearchTitles(ctx context.Context, q string) ([]domain.Suggestion, error) {
	query := url.Values{"q": {q}}
	env, err := c.do(ctx, http.MethodGet, "/titles/search", query, nil)
	if err != nil {
		return nil, err
	}

	var suggestions []domain.Suggestion
	if err := decodeData(env, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// FilterOptions returns the read-only facet catalog
func (c *Client) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	env, err := c.do(ctx, http.MethodGet, "/titles/filter-options", nil, nil)
	if err != nil {
		return nil, err
	}

	var options domain.FilterOptions
	if err := decodeData(env, &options); err != nil {
		return nil, err
	}
	return &options, nil
}

// Filter runs a faceted filter search
func (c *Client) Filter(ctx context.Context, req FilterRequest) (*FilterResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/titles/filter", nil, req)
	if err != nil {
		return nil, err
	}

	var titles []domain.FilteredTitle
	if err := decodeData(env, &titles); err != nil {
		return nil, err
	}
	return &FilterResult{Titles: titles, Count: env.Count}, nil
}

// TitleDetail returns the full detail record for a title
func (c *Client) TitleDetail(ctx context.Context, titleID string) (*domain.TitleDetail, error) {
	env, err := c.do(ctx, http.MethodGet, "/titles/"+titleID+"/detail", nil, nil)
	if err != nil {
		return nil, err
	}

	var detail domain.TitleDetail
	if err := decodeData(env, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
