package ports

import (
	"context"

	"github.com/i2i/project-management/internal/core/domain"
)

// CreateProjectInput carries the fields accepted on project creation.
type CreateProjectInput struct {
	Name        string
	Description string
}

// UpdateProjectInput is a partial update; nil fields are left untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// ProjectService implements project lifecycle and the project-user half
// of the membership engine. Unlike role assignment, membership is
// strict: adding an existing member or removing a non-member fails with
// a validation error.
type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id string, input UpdateProjectInput) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindAll(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, projectID, userID string) (*domain.Project, error)
	RemoveMember(ctx context.Context, projectID, userID string) (*domain.Project, error)
}
