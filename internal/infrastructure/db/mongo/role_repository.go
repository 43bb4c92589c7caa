package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/i2i/project-management/internal/core/domain"
)

const rolesCollection = "roles"

// RoleRepository is the MongoDB-backed role store.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(rolesCollection)}
}

type roleDoc struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description,omitempty"`
	IsDeleted   bool   `bson:"is_deleted"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func toRoleDoc(r *domain.Role) roleDoc {
	return roleDoc{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsDeleted:   r.IsDeleted,
		CreatedAt:   r.CreatedAt.UnixMilli(),
		UpdatedAt:   r.UpdatedAt.UnixMilli(),
	}
}

func (d roleDoc) toDomain() *domain.Role {
	return &domain.Role{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsDeleted:   d.IsDeleted,
		CreatedAt:   milliToTime(d.CreatedAt),
		UpdatedAt:   milliToTime(d.UpdatedAt),
	}
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	if _, err := r.coll.InsertOne(ctx, toRoleDoc(role)); err != nil {
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return role, nil
}

// FindByID does not filter on deletion state; callers that need to tell
// a missing role apart from a deleted one use this lookup.
func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *RoleRepository) FindActiveByID(ctx context.Context, id string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id, "is_deleted": false})
}

func (r *RoleRepository) FindActiveByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"name": name, "is_deleted": false})
}

func (r *RoleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roleDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return doc.toDomain(), nil
}

// FindActiveByIDs resolves ids to active roles; unknown and soft-deleted
// ids are dropped from the result without error.
func (r *RoleRepository) FindActiveByIDs(ctx context.Context, ids []string) ([]*domain.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.findAll(ctx, bson.M{"_id": bson.M{"$in": ids}, "is_deleted": false})
}

func (r *RoleRepository) FindAllActive(ctx context.Context) ([]*domain.Role, error) {
	return r.findAll(ctx, bson.M{"is_deleted": false})
}

func (r *RoleRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	defer cur.Close(ctx)

	var roles []*domain.Role
	for cur.Next(ctx) {
		var doc roleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return roles, nil
}

func (r *RoleRepository) Save(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": role.ID, "is_deleted": false},
		toRoleDoc(role),
	)
	if err != nil {
		return nil, fmt.Errorf("save role: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return role, nil
}

func (r *RoleRepository) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC().UnixMilli()}},
	)
	if err != nil {
		return fmt.Errorf("soft-delete role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureSeedRole upserts the default EMPLOYEE role so user creation
// always has a fallback. Existing documents are left untouched.
func (r *RoleRepository) EnsureSeedRole(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC().UnixMilli()
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"name": domain.DefaultRoleName, "is_deleted": false},
		bson.M{"$setOnInsert": roleDoc{
			ID:          uuid.NewString(),
			Name:        domain.DefaultRoleName,
			Description: "Default role for new users",
			CreatedAt:   now,
			UpdatedAt:   now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("seed role: %w", err)
	}
	return nil
}
