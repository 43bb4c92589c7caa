package ports

import (
	"context"

	"github.com/i2i/project-management/internal/core/domain"
)

// RoleInput carries the mutable fields of a role.
type RoleInput struct {
	Name        string
	Description string
}

// RoleService implements role lifecycle and the user-role half of the
// membership engine.
type RoleService interface {
	Create(ctx context.Context, input RoleInput) (*domain.Role, error)
	Update(ctx context.Context, id string, input RoleInput) (*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindAll(ctx context.Context) ([]*domain.Role, error)
	Delete(ctx context.Context, id string) error

	// AssignRoles unions the active subset of roleIDs into the user's
	// role set. Assignment is idempotent: re-assigning a held role is a
	// no-op, not an error.
	AssignRoles(ctx context.Context, roleIDs []string, userID string) (*domain.User, error)
}
