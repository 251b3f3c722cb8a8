package tui

import (
	"github.com/avelius/marquee/internal/domain"
)

// Message types for the TUI

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// TrendingLoadedMsg signals the trending shelf has loaded
type TrendingLoadedMsg struct {
	Titles []domain.TitleSummary
	Err    error
}

// TopRatedLoadedMsg signals the top-rated shelf has loaded
type TopRatedLoadedMsg struct {
	Titles []domain.TitleSummary
	Err    error
}

// SuggestDebounceMsg fires when a suggestion debounce timer elapses. Seq is
// compared against the current input generation; a timer from a superseded
// keystroke is dropped (last-keystroke-wins).
type SuggestDebounceMsg struct {
	Seq int
}

// SuggestionsMsg carries a type-ahead response tagged with the generation
// and query it was issued for, so stale completions can be discarded.
// Fetch failures are swallowed upstream; Items is simply nil.
type SuggestionsMsg struct {
	Seq   int
	Query string
	Items []domain.Suggestion
}

// SearchResultsMsg carries a committed search response. Seq-tagged so an
// out-of-order completion never overwrites a newer one's results.
type SearchResultsMsg struct {
	Seq   int
	Query string
	Items []domain.Suggestion
	Err   error
}

// FilterOptionsMsg carries the facet catalog (best-effort; Err is logged
// and the facet panel stays disabled on failure)
type FilterOptionsMsg struct {
	Options *domain.FilterOptions
	Err     error
}

// FilterResultsMsg carries one page of faceted filter results
type FilterResultsMsg struct {
	Seq    int
	Page   int
	Titles []domain.FilteredTitle
	Count  int
	Err    error
}

// DetailLoadedMsg carries a title detail response, keyed by the id it was
// requested for so a response for a superseded title is ignored
type DetailLoadedMsg struct {
	TitleID string
	Detail  *domain.TitleDetail
	Err     error
}

// ReviewsLoadedMsg carries the reviews for a title
type ReviewsLoadedMsg struct {
	TitleID string
	Reviews []domain.Review
	Err     error
}

// ReviewSavedMsg signals a review create completed
type ReviewSavedMsg struct {
	TitleID string
	Err     error
}

// ReviewDeletedMsg signals a review delete completed
type ReviewDeletedMsg struct {
	TitleID string
	Err     error
}

// WatchlistStatusMsg carries best-effort watchlist membership for a title
type WatchlistStatusMsg struct {
	TitleID     string
	InWatchlist bool
	Known       bool
}

// WatchlistUpdatedMsg signals an add/remove completed
type WatchlistUpdatedMsg struct {
	TitleID string
	Saved   bool
	Err     error
}

// WatchlistLoadedMsg carries the user's watchlist
type WatchlistLoadedMsg struct {
	Entries []domain.WatchlistEntry
	Err     error
}

// SessionMsg signals a login/register/revalidate completed
type SessionMsg struct {
	User *domain.User
	Err  error
}

// LoggedOutMsg signals logout completed
type LoggedOutMsg struct {
	Err error
}

// OpenDetailMsg requests navigation to a title detail view, carrying the
// origin context consumed by the navigation bridge on return
type OpenDetailMsg struct {
	TitleID string
	Ctx     NavContext
}

// GoBackMsg is emitted by the detail view's Back control
type GoBackMsg struct {
	Ctx NavContext
}

// GoHomeMsg requests plain navigation to the home view (the logo click
// analog): any prior search state is cleared
type GoHomeMsg struct{}
