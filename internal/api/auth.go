package api

import (
	"context"
	"net/http"

	"github.com/avelius/marquee/internal/domain"
)

type registerPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. On success the server also establishes a
// session cookie, captured by the client's jar.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	payload := registerPayload{FullName: fullName, Email: email, Password: password}
	env, err := c.do(ctx, http.MethodPost, "/auth/register", nil, payload)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := decodeData(env, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and establishes a session cookie
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	payload := loginPayload{Email: email, Password: password}
	env, err := c.do(ctx, http.MethodPost, "/auth/login", nil, payload)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := decodeData(env, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile returns the authenticated user's record. This is the source of
// truth for authorization; the locally cached user is display-only.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := decodeData(env, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the session server-side
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}
