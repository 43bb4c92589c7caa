package domain

import "time"

// AuditAction identifies the kind of mutation recorded in the trail.
type AuditAction string

const (
	AuditUserCreated   AuditAction = "user_created"
	AuditRolesAssigned AuditAction = "roles_assigned"
	AuditMemberAdded   AuditAction = "member_added"
	AuditMemberRemoved AuditAction = "member_removed"
	AuditSoftDeleted   AuditAction = "soft_deleted"
)

// AuditEvent is an append-only record of a membership or lifecycle
// mutation. Events are written asynchronously and never block or fail
// the originating operation.
type AuditEvent struct {
	ID         string      `json:"id"`
	Action     AuditAction `json:"action"`
	EntityKind string      `json:"entity_kind"`
	EntityID   string      `json:"entity_id"`
	Actor      string      `json:"actor,omitempty"`
	Detail     string      `json:"detail,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}
