package domain

import "errors"

var (
	// ErrMissingAPIKey is returned when no search provider credential is configured
	ErrMissingAPIKey = errors.New("missing search provider API key")

	// ErrProviderFailure is returned when the upstream search provider request fails
	ErrProviderFailure = errors.New("search provider request failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrPageFetchFailed is returned when a candidate page could not be fetched.
	// Absorbed inside enrichment; it never surfaces to the caller.
	ErrPageFetchFailed = errors.New("page fetch failed")

	// ErrChatFailure is returned when the chat completion request fails
	ErrChatFailure = errors.New("chat completion request failed")
)
