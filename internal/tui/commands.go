package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelius/marquee/internal/api"
	"github.com/avelius/marquee/internal/service"
)

// Command factories for async operations

const (
	// SuggestDebounce is the quiet period before a type-ahead fetch fires
	SuggestDebounce = 300 * time.Millisecond

	shelfTimeout  = 30 * time.Second
	searchTimeout = 30 * time.Second
	detailTimeout = 15 * time.Second
)

// SuggestDebounceCmd schedules the debounce tick for input generation seq
func SuggestDebounceCmd(seq int) tea.Cmd {
	return tea.Tick(SuggestDebounce, func(time.Time) tea.Msg {
		return SuggestDebounceMsg{Seq: seq}
	})
}

// FetchSuggestionsCmd fetches type-ahead suggestions. Failures are swallowed:
// suggestions are best-effort and never surface an error.
func FetchSuggestionsCmd(svc *service.CatalogService, logger *slog.Logger, query string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		items, err := svc.Suggest(ctx, query)
		if err != nil {
			logger.Debug("suggestion fetch failed", "query", query, "error", err)
			return SuggestionsMsg{Seq: seq, Query: query}
		}
		return SuggestionsMsg{Seq: seq, Query: query, Items: items}
	}
}

// SearchCmd runs a committed title search
func SearchCmd(svc *service.CatalogService, query string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		items, err := svc.Search(ctx, query)
		return SearchResultsMsg{Seq: seq, Query: query, Items: items, Err: err}
	}
}

// LoadTrendingCmd loads the trending shelf
func LoadTrendingCmd(svc *service.CatalogService, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		titles, err := svc.Trending(ctx, limit)
		return TrendingLoadedMsg{Titles: titles, Err: err}
	}
}

// LoadTopRatedCmd loads the top-rated shelf
func LoadTopRatedCmd(svc *service.CatalogService, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		titles, err := svc.TopRated(ctx, limit)
		return TopRatedLoadedMsg{Titles: titles, Err: err}
	}
}

// LoadFilterOptionsCmd fetches the facet catalog (best-effort)
func LoadFilterOptionsCmd(svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		options, err := svc.FilterOptions(ctx)
		return FilterOptionsMsg{Options: options, Err: err}
	}
}

// FilterCmd runs one page of a faceted filter search
func FilterCmd(svc *service.CatalogService, req api.FilterRequest, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		result, err := svc.Filter(ctx, req)
		if err != nil {
			return FilterResultsMsg{Seq: seq, Page: req.Page, Err: err}
		}
		return FilterResultsMsg{Seq: seq, Page: req.Page, Titles: result.Titles, Count: result.Count}
	}
}

// LoadDetailCmd fetches a title's detail record with a hard 15s timeout
func LoadDetailCmd(svc *service.CatalogService, titleID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()

		detail, err := svc.Detail(ctx, titleID)
		return DetailLoadedMsg{TitleID: titleID, Detail: detail, Err: err}
	}
}

// LoadReviewsCmd fetches the reviews for a title
func LoadReviewsCmd(svc *service.CatalogService, titleID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		reviews, err := svc.Reviews(ctx, titleID)
		return ReviewsLoadedMsg{TitleID: titleID, Reviews: reviews, Err: err}
	}
}

// SaveReviewCmd posts a review for a title
func SaveReviewCmd(svc *service.CatalogService, titleID string, rating float64, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		_, err := svc.AddReview(ctx, titleID, rating, text)
		return ReviewSavedMsg{TitleID: titleID, Err: err}
	}
}

// DeleteReviewCmd removes one of the user's reviews
func DeleteReviewCmd(svc *service.CatalogService, titleID, reviewID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		err := svc.DeleteReview(ctx, reviewID)
		return ReviewDeletedMsg{TitleID: titleID, Err: err}
	}
}

// WatchlistStatusCmd checks membership for a title. Best-effort: a failure
// is logged and the button falls back to its default state.
func WatchlistStatusCmd(svc *service.CatalogService, logger *slog.Logger, titleID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		saved, err := svc.WatchlistStatus(ctx, titleID)
		if err != nil {
			logger.Debug("watchlist status check failed", "titleID", titleID, "error", err)
			return WatchlistStatusMsg{TitleID: titleID}
		}
		return WatchlistStatusMsg{TitleID: titleID, InWatchlist: saved, Known: true}
	}
}

// SetWatchlistedCmd adds or removes a title from the watchlist
func SetWatchlistedCmd(svc *service.CatalogService, titleID string, saved bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		err := svc.SetWatchlisted(ctx, titleID, saved)
		return WatchlistUpdatedMsg{TitleID: titleID, Saved: saved, Err: err}
	}
}

// LoadWatchlistCmd fetches the user's watchlist
func LoadWatchlistCmd(svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		entries, err := svc.Watchlist(ctx)
		return WatchlistLoadedMsg{Entries: entries, Err: err}
	}
}

// LoginCmd authenticates and installs the session
func LoginCmd(svc *service.SessionService, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		user, err := svc.Login(ctx, email, password)
		return SessionMsg{User: user, Err: err}
	}
}

// RegisterCmd creates an account and installs the session
func RegisterCmd(svc *service.SessionService, fullName, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		user, err := svc.Register(ctx, fullName, email, password)
		return SessionMsg{User: user, Err: err}
	}
}

// RevalidateCmd checks the cached session against the profile endpoint
func RevalidateCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		user, err := svc.Revalidate(ctx)
		return SessionMsg{User: user, Err: err}
	}
}

// LogoutCmd tears the session down
func LogoutCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shelfTimeout)
		defer cancel()

		err := svc.Logout(ctx)
		return LoggedOutMsg{Err: err}
	}
}

// ClearStatusCmd clears the status line after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
