package ports

import "context"

// AuthResult is the response exposed after a successful login. The password
// is never echoed back.
type AuthResult struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// AuthService authenticates credentials and mints tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

// TokenIssuer mints signed, time-bounded credentials for an authenticated
// identity. The issued token carries a snapshot of the roles at issuance
// time; later role changes do not affect it.
type TokenIssuer interface {
	Issue(id, username string, roles []string) (string, error)
}

// LoginLimiter throttles repeated failed logins per username. A nil limiter
// disables throttling.
type LoginLimiter interface {
	// TooMany reports whether the username has exhausted its attempt budget.
	TooMany(ctx context.Context, username string) (bool, error)
	// Failure records one failed attempt.
	Failure(ctx context.Context, username string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, username string) error
}
