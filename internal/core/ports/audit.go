package ports

import (
	"context"

	"github.com/platformsec/identity-service/internal/core/domain"
)

// AuditRepository persists the security audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	ListRecent(ctx context.Context, limit int64) ([]domain.AuditEvent, error)
}

// AuditSink accepts audit events for asynchronous persistence. Record must
// not block the calling request; ordering is guaranteed per actor only. A
// nil sink disables auditing.
type AuditSink interface {
	Record(event domain.AuditEvent)
}

// AuditService processes queued audit events and serves queries.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
	ListRecent(ctx context.Context, limit int64) ([]domain.AuditEvent, error)
}
