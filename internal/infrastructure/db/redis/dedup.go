package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/i2i/project-management/internal/core/domain"
)

const dedupTTL = time.Hour

// AuditDedup suppresses replayed audit events backed by Redis.
// Key format: audit:<entity_kind>:<entity_id>:<action>:<unix_millis>
type AuditDedup struct {
	client *redis.Client
}

func NewAuditDedup(client *redis.Client) *AuditDedup {
	return &AuditDedup{client: client}
}

// Seen reports whether this exact event has already been recorded.
func (d *AuditDedup) Seen(ctx context.Context, event domain.AuditEvent) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(event)).Result()
	if err != nil {
		return false, fmt.Errorf("audit dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the event as seen; the marker expires after dedupTTL.
func (d *AuditDedup) Mark(ctx context.Context, event domain.AuditEvent) error {
	return d.client.Set(ctx, d.key(event), "1", dedupTTL).Err()
}

func (d *AuditDedup) key(event domain.AuditEvent) string {
	return fmt.Sprintf("audit:%s:%s:%s:%d",
		event.EntityKind, event.EntityID, event.Action, event.Timestamp.UnixMilli())
}
