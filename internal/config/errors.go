package config

import "errors"

// Configuration validation errors returned by Config.Validate().
// Package-level sentinel errors let callers use errors.Is() while still
// carrying a human-readable message.
var (
	// ErrInvalidBaseURL is returned when the base URL does not parse or
	// lacks a scheme or host.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http(s) URL")

	// ErrNoMongoURL is returned when the MongoDB connection string is empty.
	ErrNoMongoURL = errors.New("no mongo URL: set KANCPARSER_MONGO_URL or the mongoURL config key")

	// ErrNoCollection is returned when the database or collection name is empty.
	ErrNoCollection = errors.New("no target collection: database and collection must be set")

	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDelay is returned when a pacing delay is negative.
	// Use 0 to disable pacing.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidRetryCount is returned when the retry count is negative.
	ErrInvalidRetryCount = errors.New("invalid retry count: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the body size cap is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")
)
