package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a document already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or incomplete content,
	// such as an inline FAQ item missing its question or answer.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingConfig indicates required configuration (project id,
	// API token) is absent. Fatal at startup, before any store access.
	ErrMissingConfig = errors.New("missing configuration")

	// ErrStoreUnavailable indicates the content store cannot be
	// reached at all. Fatal when the startup probe fails.
	ErrStoreUnavailable = errors.New("content store unavailable")
)
