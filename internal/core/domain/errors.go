package domain

import "errors"

var (
	// ErrInvalidCredentials covers every authentication failure: unknown
	// username, wrong password. Which field was wrong is never disclosed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated means the request carried no usable token: missing,
	// malformed, expired, or badly signed.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the token is valid but its roles do not intersect
	// the operation's required set.
	ErrForbidden = errors.New("forbidden")

	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
	ErrUserExists   = errors.New("user already exists")
	ErrRoleExists   = errors.New("role already exists")

	// ErrIDMismatch is returned when the target id of an edit does not match
	// the id embedded in the payload. No mutation happens.
	ErrIDMismatch = errors.New("path and payload id mismatch")

	// ErrTooManyAttempts is returned when the login attempt limiter trips.
	ErrTooManyAttempts = errors.New("too many login attempts")

	// ErrIdentityInconsistent signals that an identity verified moments ago
	// could not be fetched back from the store. Treated as a server fault.
	ErrIdentityInconsistent = errors.New("identity store inconsistency")
)
