package tui

// FromSearch marks a navigation that originated from a committed search or
// a type-ahead suggestion. The detail view's Back control inspects it to
// decide between a search-restoring return and a plain pop.
const FromSearch = "search"

// NavContext is the payload attached to a route transition. It is read
// exactly once by the destination view and then cleared, so a stale context
// can never replay on a later visit.
type NavContext struct {
	From  string
	Query string
}

// IsSearch reports whether the context restores a committed search
func (c NavContext) IsSearch() bool {
	return c.From == FromSearch
}

// ViewID identifies a top-level view
type ViewID int

const (
	ViewLogin ViewID = iota
	ViewHome
	ViewFilter
	ViewDetail
	ViewWatchlist
	ViewDashboard
)
