package domain

import "time"

// Audit actions recorded by the core. Stored as-is in the trail.
const (
	AuditLoginSucceeded = "login_succeeded"
	AuditLoginFailed    = "login_failed"
	AuditUserCreated    = "user_created"
	AuditUserDeleted    = "user_deleted"
	AuditRolesAssigned  = "roles_assigned"
	AuditProfileUpdated = "profile_updated"
	AuditRoleCreated    = "role_created"
	AuditRoleDeleted    = "role_deleted"
	AuditRoleRenamed    = "role_renamed"
)

// AuditEvent is a single entry in the security audit trail. Events for the
// same actor are persisted in the order they were recorded.
type AuditEvent struct {
	ID         string    `json:"id,omitempty"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	Target     string    `json:"target,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
