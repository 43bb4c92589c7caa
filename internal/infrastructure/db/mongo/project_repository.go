package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/i2i/project-management/internal/core/domain"
)

const projectsCollection = "projects"

// ProjectRepository is the MongoDB-backed project store.
type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectsCollection)}
}

type projectDoc struct {
	ID          string   `bson:"_id"`
	Name        string   `bson:"name"`
	Description string   `bson:"description,omitempty"`
	MemberIDs   []string `bson:"member_ids"`
	IsDeleted   bool     `bson:"is_deleted"`
	CreatedAt   int64    `bson:"created_at"`
	UpdatedAt   int64    `bson:"updated_at"`
}

func toProjectDoc(p *domain.Project) projectDoc {
	return projectDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		MemberIDs:   p.MemberIDs,
		IsDeleted:   p.IsDeleted,
		CreatedAt:   p.CreatedAt.UnixMilli(),
		UpdatedAt:   p.UpdatedAt.UnixMilli(),
	}
}

func (d projectDoc) toDomain() *domain.Project {
	return &domain.Project{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		MemberIDs:   d.MemberIDs,
		IsDeleted:   d.IsDeleted,
		CreatedAt:   milliToTime(d.CreatedAt),
		UpdatedAt:   milliToTime(d.UpdatedAt),
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if _, err := r.coll.InsertOne(ctx, toProjectDoc(project)); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return project, nil
}

func (r *ProjectRepository) FindActiveByID(ctx context.Context, id string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) FindAllActive(ctx context.Context) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"is_deleted": false})
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	defer cur.Close(ctx)

	var projects []*domain.Project
	for cur.Next(ctx) {
		var doc projectDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// Save replaces the active document atomically; see UserRepository.Save.
func (r *ProjectRepository) Save(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": project.ID, "is_deleted": false},
		toProjectDoc(project),
	)
	if err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return project, nil
}

func (r *ProjectRepository) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC().UnixMilli()}},
	)
	if err != nil {
		return fmt.Errorf("soft-delete project: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
