package ports

import (
	"context"

	"github.com/platformsec/identity-service/internal/core/domain"
)

// UserService exposes user administration. Every mutation takes the acting
// username as resolved from a verified token, never from the request body.
type UserService interface {
	CreateUser(ctx context.Context, actor string, input NewUserInput) (string, error)
	DeleteUser(ctx context.Context, actor, id string) (int64, error)
	ListUsers(ctx context.Context) ([]domain.UserSummary, error)
	ListUserDetails(ctx context.Context) ([]domain.Identity, error)
	GetUser(ctx context.Context, id string) (*domain.Identity, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.Identity, error)

	// SetRoles replaces the user's role set (empty slice clears it) and
	// returns the affected count.
	SetRoles(ctx context.Context, actor, username string, roles []string) (int64, error)

	// UpdateProfile applies the update when targetID equals update.ID,
	// otherwise fails with domain.ErrIDMismatch before touching the store.
	UpdateProfile(ctx context.Context, actor, targetID string, update ProfileUpdate) (int64, error)
}

// RoleUpdate is the payload for renaming a role.
type RoleUpdate struct {
	ID   string
	Name string
}

// RoleService exposes role administration with the same actor rules as
// UserService.
type RoleService interface {
	Create(ctx context.Context, actor, name string) (string, error)
	List(ctx context.Context) ([]domain.Role, error)
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	Delete(ctx context.Context, actor, id string) (int64, error)
	Rename(ctx context.Context, actor, targetID string, update RoleUpdate) (int64, error)
}
