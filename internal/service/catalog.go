package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/avelius/marquee/internal/api"
	"github.com/avelius/marquee/internal/domain"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MaxSuggestions caps the type-ahead dropdown. The server may return more;
// the client truncates.
const MaxSuggestions = 5

// CatalogService handles all title catalog operations
type CatalogService struct {
	client *api.Client
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(client *api.Client, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{client: client, logger: logger}
}

// Trending returns the trending shelf
func (s *CatalogService) Trending(ctx context.Context, limit int) ([]domain.TitleSummary, error) {
	return s.client.Trending(ctx, limit)
}

// TopRated returns the top-rated shelf
func (s *CatalogService) TopRated(ctx context.Context, limit int) ([]domain.TitleSummary, error) {
	return s.client.TopRated(ctx, limit)
}

// Suggest returns up to MaxSuggestions type-ahead entries in server order
func (s *CatalogService) Suggest(ctx context.Context, query string) ([]domain.Suggestion, error) {
	results, err := s.client.SearchTitles(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) > MaxSuggestions {
		results = results[:MaxSuggestions]
	}
	return results, nil
}

// Search runs a committed title search and re-ranks the results locally so
// exact and prefix matches surface above fuzzy ones.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Suggestion, error) {
	results, err := s.client.SearchTitles(ctx, query)
	if err != nil {
		return nil, err
	}
	ranked := rankResults(results, query)
	s.logger.Debug("search complete", "query", query, "results", len(ranked))
	return ranked, nil
}

// FilterOptions returns the facet catalog
func (s *CatalogService) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	return s.client.FilterOptions(ctx)
}

// Filter runs a faceted filter search
func (s *CatalogService) Filter(ctx context.Context, req api.FilterRequest) (*api.FilterResult, error) {
	return s.client.Filter(ctx, req)
}

// Detail returns the full record for a title
func (s *CatalogService) Detail(ctx context.Context, titleID string) (*domain.TitleDetail, error) {
	return s.client.TitleDetail(ctx, titleID)
}

// Reviews returns all reviews on a title
func (s *CatalogService) Reviews(ctx context.Context, titleID string) ([]domain.Review, error) {
	return s.client.TitleReviews(ctx, titleID)
}

// AddReview posts a review
func (s *CatalogService) AddReview(ctx context.Context, titleID string, rating float64, text string) (*domain.Review, error) {
	return s.client.CreateReview(ctx, titleID, rating, text)
}

// DeleteReview removes one of the user's reviews
func (s *CatalogService) DeleteReview(ctx context.Context, reviewID string) error {
	return s.client.DeleteReview(ctx, reviewID)
}

// Watchlist returns the user's saved titles
func (s *CatalogService) Watchlist(ctx context.Context) ([]domain.WatchlistEntry, error) {
	return s.client.Watchlist(ctx)
}

// WatchlistStatus reports membership for a title
func (s *CatalogService) WatchlistStatus(ctx context.Context, titleID string) (bool, error) {
	return s.client.WatchlistStatus(ctx, titleID)
}

// SetWatchlisted adds or removes a title from the watchlist
func (s *CatalogService) SetWatchlisted(ctx context.Context, titleID string, saved bool) error {
	if saved {
		return s.client.AddToWatchlist(ctx, titleID)
	}
	return s.client.RemoveFromWatchlist(ctx, titleID)
}

// rankResults applies fuzzy ranking to committed search results
func rankResults(items []domain.Suggestion, query string) []domain.Suggestion {
	if len(items) == 0 {
		return items
	}

	query = strings.ToLower(query)

	type rankedItem struct {
		item  domain.Suggestion
		score int
	}

	ranked := make([]rankedItem, 0, len(items))
	for _, item := range items {
		name := strings.ToLower(item.Name)
		ranked = append(ranked, rankedItem{item: item, score: matchScore(name, query)})
	}

	// Stable: preserve server order among equal scores
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.Suggestion, len(ranked))
	for i, r := range ranked {
		results[i] = r.item
	}
	return results
}

// matchScore calculates a match score for ranking. Lower is better.
func matchScore(name, query string) int {
	if name == query {
		return 0
	}
	if strings.HasPrefix(name, query) {
		return 10
	}
	if strings.Contains(name, query) {
		return 50
	}
	return 100 + fuzzy.LevenshteinDistance(query, name)
}
