package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrRemoteUnavailable indicates the catalog service failed (transport or non-success status)
	ErrRemoteUnavailable = errors.New("catalog service unavailable")

	// ErrEmptyQuery indicates a search was requested with blank text
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrItemNotFound indicates the requested catalog item does not exist
	ErrItemNotFound = errors.New("catalog item not found")

	// ErrInvalidCredentials indicates a login attempt with a blank username or password
	ErrInvalidCredentials = errors.New("username and password are required")
)
