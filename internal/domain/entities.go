package domain

// TitleSummary is the lightweight title record returned by the trending and
// top-rated shelves.
type TitleSummary struct {
	TitleID     string  `json:"title_id"`
	Name        string  `json:"name"`
	StartYear   int     `json:"start_year"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	GenreName   string  `json:"genre_name"`
}

// Suggestion is an unconfirmed type-ahead result, distinct from a committed
// search result.
type Suggestion struct {
	TitleID     string  `json:"title_id"`
	Name        string  `json:"name"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
}

// FilteredTitle is a full title row from a faceted filter search.
type FilteredTitle struct {
	TitleID        string   `json:"title_id"`
	Name           string   `json:"name"`
	NumberSeasons  *int     `json:"number_of_seasons"`
	NumberEpisodes *int     `json:"number_of_episodes"`
	Overview       *string  `json:"overview"`
	OriginalName   *string  `json:"original_name"`
	Popularity     *int     `json:"popularity"`
	Tagline        *string  `json:"tagline"`
	RuntimeMinutes *int     `json:"runtime_minutes"`
	TypeID         *string  `json:"type_id"`
	StatusID       *string  `json:"status_id"`
	VoteCount      *int     `json:"vote_count"`
	VoteAverage    *float64 `json:"vote_average"`
	StartYear      *int     `json:"start_year"`
	EndYear        *int     `json:"end_year"`
}

// GenreOption is one selectable genre facet value.
type GenreOption struct {
	GenreTypeID string `json:"genre_type_id"`
	GenreName   string `json:"genre_name"`
}

// TypeOption is one selectable title-type facet value (movie, series, ...).
type TypeOption struct {
	TypeID   string `json:"type_id"`
	TypeName string `json:"type_name"`
}

// StatusOption is one selectable release-status facet value.
type StatusOption struct {
	StatusID   string `json:"status_id"`
	StatusName string `json:"status_name"`
}

// FilterOptions is the read-only facet catalog, fetched once per filter view.
type FilterOptions struct {
	Genres   []GenreOption  `json:"genres"`
	Types    []TypeOption   `json:"types"`
	Statuses []StatusOption `json:"statuses"`
	Years    []int          `json:"years"`
}

// Sort keys accepted by the filter endpoint.
const (
	SortReleased   = "released"
	SortPopularity = "popularity"
	SortName       = "name"
	SortRating     = "rating"
)

// SortOption pairs a sort key with its display label.
type SortOption struct {
	ID    string
	Label string
}

// SortOptions returns the sort orderings offered by the filter view,
// in display order. The first entry is the default.
func SortOptions() []SortOption {
	return []SortOption{
		{ID: SortReleased, Label: "Release Date"},
		{ID: SortPopularity, Label: "Most Viewed"},
		{ID: SortName, Label: "Name"},
		{ID: SortRating, Label: "IMDb Rating"},
	}
}

// TitleDetail is the aggregate record backing the detail view.
type TitleDetail struct {
	Detail      TitleRecord    `json:"detail"`
	Genres      []string       `json:"genres"`
	Languages   []string       `json:"languages"`
	Countries   []string       `json:"countries"`
	Companies   []string       `json:"companies"`
	Networks    []string       `json:"networks"`
	AirDates    []AirDate      `json:"air_dates"`
	CastAndCrew []CastCrewRole `json:"cast_and_crew"`
}

// TitleRecord is the primary row of a title detail.
type TitleRecord struct {
	TitleID        string   `json:"title_id"`
	Name           string   `json:"name"`
	OriginalName   *string  `json:"original_name"`
	Overview       *string  `json:"overview"`
	Tagline        *string  `json:"tagline"`
	StartYear      *int     `json:"start_year"`
	EndYear        *int     `json:"end_year"`
	RuntimeMinutes *int     `json:"runtime_minutes"`
	NumberSeasons  *int     `json:"number_of_seasons"`
	NumberEpisodes *int     `json:"number_of_episodes"`
	VoteAverage    *float64 `json:"vote_average"`
	VoteCount      *int     `json:"vote_count"`
}

// AirDate is a dated broadcast entry for series titles.
type AirDate struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// CastCrewRole is one credited person on a title.
type CastCrewRole struct {
	PersonID  string `json:"person_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Character string `json:"character"`
}

// User roles. Executive and production accounts see additional dashboard
// entries; authorization itself is enforced server-side.
const (
	RoleUser       = "user"
	RoleExecutive  = "executive"
	RoleProduction = "production"
)

// User is the authenticated account record. A copy is cached locally purely
// for fast rendering; the profile endpoint remains the source of truth.
type User struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsStaff reports whether the user sees the dashboard views.
func (u User) IsStaff() bool {
	return u.Role == RoleExecutive || u.Role == RoleProduction
}

// Review is a user review on a title.
type Review struct {
	ReviewID  string  `json:"review_id"`
	TitleID   string  `json:"title_id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name"`
	Rating    float64 `json:"rating"`
	Text      string  `json:"text"`
	CreatedAt string  `json:"created_at"`
}

// WatchlistEntry is one saved title on the user's watchlist.
type WatchlistEntry struct {
	TitleID     string  `json:"title_id"`
	Name        string  `json:"name"`
	StartYear   int     `json:"start_year"`
	VoteAverage float64 `json:"vote_average"`
	GenreName   string  `json:"genre_name"`
	AddedAt     string  `json:"added_at"`
}
