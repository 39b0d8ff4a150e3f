package services

import "errors"

// Sentinel errors for the request-facing failure taxonomy. Handlers map these
// to HTTP statuses with errors.Is.
var (
	// ErrDuplicateUsername is returned when a signup reuses an existing username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials is returned on any failed login. An unknown
	// username and a wrong password produce the same error so callers cannot
	// enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned when a record does not exist or is not owned by
	// the caller. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
)
