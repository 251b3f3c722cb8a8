package domain

import "errors"

// Sentinel errors for catalog operations
var (
	// ErrTitleNotFound indicates the requested title does not exist
	ErrTitleNotFound = errors.New("title not found")

	// ErrServerOffline indicates the catalog server is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrUnauthorized indicates the session cookie is missing or expired
	ErrUnauthorized = errors.New("session is invalid or expired")

	// ErrBadRequest indicates the server rejected the request payload
	ErrBadRequest = errors.New("request rejected by server")
)
