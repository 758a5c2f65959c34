package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingResume indicates no resume text could be resolved from the
	// request or the resume store
	ErrMissingResume = errors.New("no resume available")

	// ErrEmbeddingUnavailable indicates no embedding backend is configured
	// or reachable. Matching cannot proceed without vectors.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationUnavailable indicates no text-generation backend is
	// configured or reachable. Callers degrade to heuristic fallbacks.
	ErrGenerationUnavailable = errors.New("text generation unavailable")

	// ErrDimensionMismatch indicates two vectors of different dimensions
	// were compared. This signals a configuration inconsistency (mixed
	// embedding backends mid-session) and must never be coerced.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrProviderUnavailable indicates the external job-search provider
	// request failed. Always non-fatal to matching.
	ErrProviderUnavailable = errors.New("job provider unavailable")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials indicates wrong username/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionNotFound indicates the session does not exist
	ErrSessionNotFound = errors.New("session not found")
)
