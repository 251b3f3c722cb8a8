package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"github.com/avelius/marquee/internal/api"
	"github.com/avelius/marquee/internal/domain"
	"github.com/avelius/marquee/internal/store"
)

// SessionService owns the shared authentication state: the current user,
// login/logout, and revalidation of the cached record against the profile
// endpoint. Mutations swap the cached record atomically so no view ever
// observes a half-set session.
type SessionService struct {
	client *api.Client
	store  *store.SessionStore
	logger *slog.Logger

	mu      sync.RWMutex
	current *domain.User
}

// NewSessionService creates the session service and wires the client's
// global 401 handler to it.
func NewSessionService(client *api.Client, st *store.SessionStore, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SessionService{
		client: client,
		store:  st,
		logger: logger,
	}

	// Seed from the local cache for fast first render. Revalidate decides
	// whether the session is actually still good.
	if cached, err := st.LoadUser(); err == nil && cached != nil {
		s.current = cached
	}

	client.SetUnauthorizedHook(s.hasSession, s.clearLocal)
	return s
}

// CurrentUser returns the cached authenticated user, or nil
func (s *SessionService) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// hasSession reports whether a session is currently believed active
func (s *SessionService) hasSession() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Login authenticates and atomically installs the new session
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.setUser(user)
	s.logger.Info("logged in", "email", user.Email, "role", user.Role)
	return user, nil
}

// Register creates an account and installs the resulting session
func (s *SessionService) Register(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	user, err := s.client.Register(ctx, fullName, email, password)
	if err != nil {
		return nil, err
	}
	s.setUser(user)
	s.logger.Info("registered", "email", user.Email)
	return user, nil
}

// Logout invalidates the session server-side and clears local state. Local
// state is cleared even if the server call fails.
func (s *SessionService) Logout(ctx context.Context) error {
	err := s.client.Logout(ctx)
	if err != nil {
		s.logger.Warn("server logout failed", "error", err)
	}
	s.clearLocal()
	return err
}

// Revalidate checks the cached session against the profile endpoint. Returns
// the fresh user record, or nil if no session is active.
func (s *SessionService) Revalidate(ctx context.Context) (*domain.User, error) {
	user, err := s.client.Profile(ctx)
	if err != nil {
		if err == domain.ErrUnauthorized {
			// The 401 hook has already cleared local state when a
			// session was believed active.
			return nil, nil
		}
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

func (s *SessionService) setUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SaveUser(user); err != nil {
		s.logger.Warn("failed to cache user record", "error", err)
	}
	s.current = user
}

func (s *SessionService) clearLocal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.ClearUser(); err != nil {
		s.logger.Warn("failed to clear cached user record", "error", err)
	}
	s.current = nil
}

// Form validation, performed client-side before any network dispatch.

const (
	minNameLen     = 3
	minPasswordLen = 8
)

// ValidateFullName checks the display-name field
func ValidateFullName(name string) string {
	if len(strings.TrimSpace(name)) < minNameLen {
		return "Name must be at least 3 characters"
	}
	return ""
}

// ValidateEmail checks the email field's basic shape
func ValidateEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return "Enter a valid email address"
	}
	if !strings.Contains(email[at+1:], ".") {
		return "Enter a valid email address"
	}
	return ""
}

// ValidatePassword checks length and composition (letter + digit)
func ValidatePassword(password string) string {
	if len(password) < minPasswordLen {
		return "Password must be at least 8 characters"
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "Password must contain a letter and a number"
	}
	return ""
}
