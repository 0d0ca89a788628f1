package store

import "errors"

// Sentinel errors returned by the stores. Handlers map these to HTTP codes.
var (
	// ErrNotFound covers both a missing record and a record owned by
	// someone else, so callers can never tell the two apart.
	ErrNotFound = errors.New("record not found or access denied")

	// ErrConflict is returned when a username is already taken.
	ErrConflict = errors.New("username already exists")

	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNameRequired is returned when a contact is created or updated
	// without a name.
	ErrNameRequired = errors.New("name is a required field")

	// ErrCredentialsRequired is returned on registration with an empty
	// username or password.
	ErrCredentialsRequired = errors.New("username and password are required")
)
