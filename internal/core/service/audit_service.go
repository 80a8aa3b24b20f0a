package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/platformsec/identity-service/internal/core/domain"
	"github.com/platformsec/identity-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService persisting events to the given
// repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit event.
func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Debug().
		Str("actor", event.Actor).
		Str("action", event.Action).
		Msg("audit event persisted")

	return nil
}

func (s *auditService) ListRecent(ctx context.Context, limit int64) ([]domain.AuditEvent, error) {
	return s.repo.ListRecent(ctx, limit)
}
