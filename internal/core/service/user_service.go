package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/platformsec/identity-service/internal/core/domain"
	"github.com/platformsec/identity-service/internal/core/ports"
)

// UserService implements user administration on top of the identity store.
// Access control happens at the transport boundary; by the time a call lands
// here the actor has already passed the administrative role gate.
type UserService struct {
	store  ports.IdentityStore
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewUserService(store ports.IdentityStore, audit ports.AuditSink, logger zerolog.Logger) *UserService {
	return &UserService{store: store, audit: audit, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, actor string, input ports.NewUserInput) (string, error) {
	id, err := s.store.CreateUser(ctx, input)
	if err != nil {
		return "", err
	}

	s.recordAudit(actor, domain.AuditUserCreated, input.Username)
	s.logger.Info().Str("username", input.Username).Str("actor", actor).Msg("user created")
	return id, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actor, id string) (int64, error) {
	count, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return 0, err
	}

	s.recordAudit(actor, domain.AuditUserDeleted, id)
	s.logger.Info().Str("user_id", id).Str("actor", actor).Msg("user deleted")
	return count, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	return s.store.ListUsers(ctx)
}

func (s *UserService) ListUserDetails(ctx context.Context) ([]domain.Identity, error) {
	return s.store.ListIdentities(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.Identity, error) {
	return s.store.GetIdentity(ctx, id)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	return s.store.GetIdentityByUsername(ctx, username)
}

// SetRoles replaces the user's role set. An empty slice clears every role;
// already-issued tokens keep the snapshot they were minted with.
func (s *UserService) SetRoles(ctx context.Context, actor, username string, roles []string) (int64, error) {
	if roles == nil {
		roles = []string{}
	}

	count, err := s.store.SetRoles(ctx, username, roles)
	if err != nil {
		return 0, err
	}

	s.recordAudit(actor, domain.AuditRolesAssigned, username)
	s.logger.Info().Str("username", username).Strs("roles", roles).Str("actor", actor).Msg("roles replaced")
	return count, nil
}

// UpdateProfile applies the edit only when the target id equals the id
// embedded in the payload. A mismatch fails before any store call.
func (s *UserService) UpdateProfile(ctx context.Context, actor, targetID string, update ports.ProfileUpdate) (int64, error) {
	if targetID != update.ID {
		return 0, domain.ErrIDMismatch
	}

	count, err := s.store.UpdateProfile(ctx, update)
	if err != nil {
		return 0, err
	}

	s.recordAudit(actor, domain.AuditProfileUpdated, update.ID)
	return count, nil
}

func (s *UserService) recordAudit(actor, action, target string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Actor:      actor,
		Action:     action,
		Target:     target,
		OccurredAt: time.Now().UTC(),
	})
}
