package ports

import (
	"context"

	"github.com/i2i/project-management/internal/core/domain"
)

// ProjectRepository persists projects with the same active-record and
// atomic-save contract as UserRepository.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindActiveByID(ctx context.Context, id string) (*domain.Project, error)
	FindAllActive(ctx context.Context) ([]*domain.Project, error)
	Save(ctx context.Context, project *domain.Project) (*domain.Project, error)
	SoftDelete(ctx context.Context, id string) error
}
