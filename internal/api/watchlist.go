package api

import (
	"context"
	"net/http"

	"github.com/avelius/marquee/internal/domain"
)

type watchlistPayload struct {
	TitleID string `json:"title_id"`
}

type watchlistStatus struct {
	InWatchlist bool `json:"in_watchlist"`
}

// Watchlist returns the user's saved titles
func (c *Client) Watchlist(ctx context.Context) ([]domain.WatchlistEntry, error) {
	env, err := c.do(ctx, http.MethodGet, "/watchlist", nil, nil)
	if err != nil {
		return nil, err
	}

	var entries []domain.WatchlistEntry
	if err := decodeData(env, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// WatchlistStatus reports whether a title is on the user's watchlist
func (c *Client) WatchlistStatus(ctx context.Context, titleID string) (bool, error) {
	env, err := c.do(ctx, http.MethodGet, "/watchlist/status/"+titleID, nil, nil)
	if err != nil {
		return false, err
	}

	var status watchlistStatus
	if err := decodeData(env, &status); err != nil {
		return false, err
	}
	return status.InWatchlist, nil
}

// AddToWatchlist saves a title to the user's watchlist
func (c *Client) AddToWatchlist(ctx context.Context, titleID string) error {
	_, err := c.do(ctx, http.MethodPost, "/watchlist", nil, watchlistPayload{TitleID: titleID})
	return err
}

// RemoveFromWatchlist removes a title from the user's watchlist
func (c *Client) RemoveFromWatchlist(ctx context.Context, titleID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/watchlist/"+titleID, nil, nil)
	return err
}
