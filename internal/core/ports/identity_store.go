package ports

import (
	"context"

	"github.com/platformsec/identity-service/internal/core/domain"
)

// NewUserInput carries everything needed to provision a user. The plaintext
// password is hashed inside the store adapter and never persisted.
type NewUserInput struct {
	Username string
	Password string
	Email    string
	FullName string
	Roles    []string
}

// ProfileUpdate carries the editable identity attributes. ID must match the
// update target; the service layer enforces that before any store call.
type ProfileUpdate struct {
	ID       string
	Username string
	Email    string
	FullName string
}

// IdentityStore is the single source of truth for identities. It enforces its
// own concurrency control (unique-username constraint included); the core
// treats every call as atomic.
type IdentityStore interface {
	// VerifyCredentials reports whether the username/password pair is valid.
	// An unknown username is reported as invalid, not as an error.
	VerifyCredentials(ctx context.Context, username, password string) (bool, error)

	// ResolveID returns the canonical identity id for a username.
	ResolveID(ctx context.Context, username string) (string, error)

	GetIdentity(ctx context.Context, id string) (*domain.Identity, error)
	GetIdentityByUsername(ctx context.Context, username string) (*domain.Identity, error)

	// CreateUser provisions a new identity and returns its id. A duplicate
	// username yields domain.ErrUserExists.
	CreateUser(ctx context.Context, input NewUserInput) (string, error)

	// DeleteUser removes an identity and returns the affected count. A
	// missing id yields domain.ErrUserNotFound, never a silent zero.
	DeleteUser(ctx context.Context, id string) (int64, error)

	ListUsers(ctx context.Context) ([]domain.UserSummary, error)
	ListIdentities(ctx context.Context) ([]domain.Identity, error)

	// SetRoles replaces the identity's role set and returns the affected
	// count. Replace, not union: an empty slice clears all roles.
	SetRoles(ctx context.Context, username string, roles []string) (int64, error)

	// UpdateProfile applies the editable attributes and returns the affected
	// count. A missing id yields domain.ErrUserNotFound.
	UpdateProfile(ctx context.Context, update ProfileUpdate) (int64, error)
}

// RoleStore persists the role catalogue. Names are unique.
type RoleStore interface {
	Create(ctx context.Context, name string) (string, error)
	List(ctx context.Context) ([]domain.Role, error)
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	Delete(ctx context.Context, id string) (int64, error)
	Rename(ctx context.Context, id, name string) (int64, error)
}
