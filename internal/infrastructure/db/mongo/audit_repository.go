package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/i2i/project-management/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository appends audit events. The collection is append-only;
// events are never updated or deleted.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID         string `bson:"_id"`
	Action     string `bson:"action"`
	EntityKind string `bson:"entity_kind"`
	EntityID   string `bson:"entity_id"`
	Actor      string `bson:"actor,omitempty"`
	Detail     string `bson:"detail,omitempty"`
	Timestamp  int64  `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	_, err := r.coll.InsertOne(ctx, auditDoc{
		ID:         event.ID,
		Action:     string(event.Action),
		EntityKind: event.EntityKind,
		EntityID:   event.EntityID,
		Actor:      event.Actor,
		Detail:     event.Detail,
		Timestamp:  event.Timestamp.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
