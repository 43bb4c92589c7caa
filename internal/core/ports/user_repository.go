package ports

import (
	"context"

	"github.com/i2i/project-management/internal/core/domain"
)

// UserRepository persists users. All "active" finders transparently
// filter out soft-deleted rows; the core never sees a deleted row as
// live. Save replaces the whole document in one atomic operation scoped
// to the active record, so the read-then-write pattern cannot lose an
// intervening soft delete.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	FindActiveByID(ctx context.Context, id string) (*domain.User, error)
	FindAllActive(ctx context.Context) ([]*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	SoftDelete(ctx context.Context, id string) error
}
