package ports

import (
	"context"

	"github.com/i2i/project-management/internal/core/domain"
)

// AuditRecorder accepts audit events for asynchronous persistence.
// Record must be non-blocking from the caller's perspective and must
// never propagate failures back into the originating operation.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditRepository appends audit events to durable storage.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
