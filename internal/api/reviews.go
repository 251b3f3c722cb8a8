package api

import (
	"context"
	"net/http"

	"github.com/avelius/marquee/internal/domain"
)

type createReviewPayload struct {
	TitleID string  `json:"title_id"`
	Rating  float64 `json:"rating"`
	Text    string  `json:"text"`
}

// TitleReviews returns all reviews for a title
func (c *Client) TitleReviews(ctx context.Context, titleID string) ([]domain.Review, error) {
	env, err := c.do(ctx, http.MethodGet, "/reviews/title/"+titleID, nil, nil)
	if err != nil {
		return nil, err
	}

	var reviews []domain.Review
	if err := decodeData(env, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview posts a review for a title
func (c *Client) CreateReview(ctx context.Context, titleID string, rating float64, text string) (*domain.Review, error) {
	payload := createReviewPayload{TitleID: titleID, Rating: rating, Text: text}
	env, err := c.do(ctx, http.MethodPost, "/reviews", nil, payload)
	if err != nil {
		return nil, err
	}

	var review domain.Review
	if err := decodeData(env, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes one of the user's own reviews
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/reviews/"+reviewID, nil, nil)
	return err
}
