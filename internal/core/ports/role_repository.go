package ports

import (
	"context"

	"github.com/i2i/project-management/internal/core/domain"
)

// RoleRepository persists roles. FindActiveByIDs silently drops ids that
// do not resolve to an active role; callers decide whether an empty
// result is an error.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	// FindByID returns the role regardless of deletion state, so callers
	// can distinguish a missing role from a soft-deleted one.
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindActiveByID(ctx context.Context, id string) (*domain.Role, error)
	FindActiveByIDs(ctx context.Context, ids []string) ([]*domain.Role, error)
	FindActiveByName(ctx context.Context, name string) (*domain.Role, error)
	FindAllActive(ctx context.Context) ([]*domain.Role, error)
	Save(ctx context.Context, role *domain.Role) (*domain.Role, error)
	SoftDelete(ctx context.Context, id string) error
}
