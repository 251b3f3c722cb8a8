package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelius/marquee/internal/adapter"
	"github.com/avelius/marquee/internal/domain"
)

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestSearchTitlesDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/titles/search", r.URL.Path)
		assert.Equal(t, "dune", r.URL.Query().Get("q"))
		respond(w, http.StatusOK, `{"success":true,"data":[
			{"title_id":"t1","name":"Dune","overview":"Sand.","vote_average":8.1},
			{"title_id":"t2","name":"Dune: Part Two","overview":"More sand.","vote_average":8.6}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, adapter.NullLogger())
	got, err := c.SearchTitles(context.Background(), "dune")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].TitleID)
	assert.Equal(t, "Dune: Part Two", got[1].Name)
}

func TestTrendingPassesLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/titles/trending", r.URL.Path)
		assert.Equal(t, "6", r.URL.Query().Get("limit"))
		respond(w, http.StatusOK, `{"success":true,"data":[]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, adapter.NullLogger())
	_, err := c.Trending(context.Background(), 6)
	require.NoError(t, err)
}

func TestFilterPayloadOmitsEmptyFacets(t *testing.T) {
	var payload map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		respond(w, http.StatusOK, `{"success":true,"data":[{"title_id":"t1","name":"Heat"}],"count":37}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, adapter.NullLogger())
	year := 1995
	result, err := c.Filter(context.Background(), FilterRequest{
		GenreIDs: []string{"g1"},
		Year:     &year,
		SortBy:   domain.SortReleased,
		Page:     1,
		Limit:    25,
	})
	require.NoError(t, err)

	assert.Contains(t, payload, "genreIds")
	assert.Contains(t, payload, "year")
	assert.NotContains(t, payload, "typeIds")
	assert.NotContains(t, payload, "statusIds")

	assert.Equal(t, 37, result.Count)
	require.Len(t, result.Titles, 1)
	assert.Equal(t, "Heat", result.Titles[0].Name)
}

func TestCookieSessionPersistsAcrossRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
			respond(w, http.StatusOK, `{"success":true,"data":{"user_id":"u1","full_name":"Ada","email":"ada@example.com","role":"user"}}`)
		case "/api/auth/profile":
			cookie, err := r.Cookie("session")
			if err != nil || cookie.Value != "abc123" {
				respond(w, http.StatusUnauthorized, `{"success":false,"message":"unauthorized"}`)
				return
			}
			respond(w, http.StatusOK, `{"success":true,"data":{"user_id":"u1","full_name":"Ada","email":"ada@example.com","role":"user"}}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, adapter.NullLogger())
	_, err := c.Login(context.Background(), "ada@example.com", "secret123")
	require.NoError(t, err)

	user, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FullName)
}

func TestUnauthorizedHookGating(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusUnauthorized, `{"success":false,"message":"unauthorized"}`)
	}))
	defer srv.Close()

	tests := []struct {
		name          string
		sessionActive bool
		wantFired     bool
	}{
		{"no session believed active, hook stays quiet", false, false},
		{"active session, hook fires", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(srv.URL, adapter.NullLogger())
			fired := false
			c.SetUnauthorizedHook(func() bool { return tt.sessionActive }, func() { fired = true })

			_, err := c.Profile(context.Background())
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.Equal(t, tt.wantFired, fired)
		})
	}
}

func TestErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/titles/missing/detail":
			respond(w, http.StatusNotFound, `{"success":false,"message":"not found"}`)
		case "/api/reviews":
			respond(w, http.StatusBadRequest, `{"success":false,"message":"rating out of range"}`)
		default:
			respond(w, http.StatusInternalServerError, `{"success":false}`)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, adapter.NullLogger())

	_, err := c.TitleDetail(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTitleNotFound)

	_, err = c.CreateReview(context.Background(), "t1", 99, "nope")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Contains(t, err.Error(), "rating out of range")

	_, err = c.Trending(context.Background(), 6)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrBadRequest))
}

func TestServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewClient(srv.URL, adapter.NullLogger())
	_, err := c.Trending(context.Background(), 6)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}
