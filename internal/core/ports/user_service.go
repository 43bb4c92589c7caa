package ports

import (
	"context"

	"github.com/i2i/project-management/internal/core/domain"
)

// CreateUserInput carries the fields accepted on user creation. RoleIDs
// may be empty, in which case the default EMPLOYEE role is assigned.
type CreateUserInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
	RoleIDs     []string
}

// UpdateUserInput is a partial profile update. Nil fields are left
// untouched.
type UpdateUserInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Address     *string
}

// UserService implements user lifecycle and profile self-service.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	UpdateOwnProfile(ctx context.Context, email string, input UpdateUserInput) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
