package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/platformsec/identity-service/internal/core/domain"
	"github.com/platformsec/identity-service/internal/core/ports"
)

// RoleService implements role catalogue administration.
type RoleService struct {
	store  ports.RoleStore
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewRoleService(store ports.RoleStore, audit ports.AuditSink, logger zerolog.Logger) *RoleService {
	return &RoleService{store: store, audit: audit, logger: logger}
}

func (s *RoleService) Create(ctx context.Context, actor, name string) (string, error) {
	id, err := s.store.Create(ctx, name)
	if err != nil {
		return "", err
	}

	s.recordAudit(actor, domain.AuditRoleCreated, name)
	s.logger.Info().Str("role", name).Str("actor", actor).Msg("role created")
	return id, nil
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.store.List(ctx)
}

func (s *RoleService) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	return s.store.GetByID(ctx, id)
}

func (s *RoleService) Delete(ctx context.Context, actor, id string) (int64, error) {
	count, err := s.store.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	s.recordAudit(actor, domain.AuditRoleDeleted, id)
	s.logger.Info().Str("role_id", id).Str("actor", actor).Msg("role deleted")
	return count, nil
}

// Rename applies the edit only when the target id equals the payload id,
// mirroring the profile-edit precondition.
func (s *RoleService) Rename(ctx context.Context, actor, targetID string, update ports.RoleUpdate) (int64, error) {
	if targetID != update.ID {
		return 0, domain.ErrIDMismatch
	}

	count, err := s.store.Rename(ctx, update.ID, update.Name)
	if err != nil {
		return 0, err
	}

	s.recordAudit(actor, domain.AuditRoleRenamed, update.ID)
	return count, nil
}

func (s *RoleService) recordAudit(actor, action, target string) {
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
