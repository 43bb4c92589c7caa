package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/i2i/project-management/internal/core/domain"
	"github.com/i2i/project-management/internal/core/ports"
)

// UserService implements user lifecycle operations and profile
// self-service.
type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, audit: audit, log: log}
}

// Create registers a new user. Explicitly supplied role ids are filtered
// down to active roles; when none are supplied the default EMPLOYEE seed
// role is assigned.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Email == "" || input.FirstName == "" || input.LastName == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email, first name, last name and password are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roleIDs, err := s.resolveRoles(ctx, input.RoleIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
		RoleIDs:      roleIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, failStore(s.log, err, "create user")
	}

	s.log.Info().Str("email", created.Email).Msg("user created")
	s.audit.Record(domain.AuditEvent{
		Action:     domain.AuditUserCreated,
		EntityKind: "user",
		EntityID:   created.ID,
		Timestamp:  now,
	})
	return created, nil
}

// resolveRoles filters explicit role ids to active roles, or falls back
// to the EMPLOYEE seed when none were supplied.
func (s *UserService) resolveRoles(ctx context.Context, roleIDs []string) ([]string, error) {
	if len(roleIDs) == 0 {
		role, err := s.roles.FindActiveByName(ctx, domain.DefaultRoleName)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: default %s role not found", domain.ErrValidation, domain.DefaultRoleName)
			}
			return nil, failStore(s.log, err, "find default role")
		}
		return []string{role.ID}, nil
	}

	roles, err := s.roles.FindActiveByIDs(ctx, roleIDs)
	if err != nil {
		return nil, failStore(s.log, err, "find roles")
	}
	ids := make([]string, 0, len(roles))
	for _, role := range roles {
		ids = append(ids, role.ID)
	}
	return ids, nil
}

// Update applies a partial profile update to the given user.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	user, err := s.users.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with id %s", domain.ErrNotFound, id)
		}
		return nil, failStore(s.log, err, "find user")
	}

	applyUserPatch(user, input)
	user.UpdatedAt = time.Now().UTC()

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with id %s", domain.ErrNotFound, id)
		}
		return nil, failStore(s.log, err, "save user")
	}
	s.log.Info().Str("user_id", id).Msg("user updated")
	return saved, nil
}

// UpdateOwnProfile lets the authenticated subject mutate its own record,
// scoped by email identity rather than authority. At least one field
// must be supplied.
func (s *UserService) UpdateOwnProfile(ctx context.Context, email string, input ports.UpdateUserInput) (*domain.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: authenticated user email is required", domain.ErrValidation)
	}
	if input.FirstName == nil && input.LastName == nil && input.PhoneNumber == nil && input.Address == nil {
		return nil, fmt.Errorf("%w: provide at least one field to update", domain.ErrValidation)
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
		}
		return nil, failStore(s.log, err, "find user by email")
	}

	applyUserPatch(user, input)
	user.UpdatedAt = time.Now().UTC()

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		return nil, failStore(s.log, err, "save user")
	}
	s.log.Info().Str("email", email).Msg("profile updated")
	return saved, nil
}

func applyUserPatch(user *domain.User, input ports.UpdateUserInput) {
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
}

// FindByID returns the active user with the given id.
func (s *UserService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	user, err := s.users.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with id %s", domain.ErrNotFound, id)
		}
		return nil, failStore(s.log, err, "find user")
	}
	return user, nil
}

// FindAll returns all active users. An empty result is reported as not
// found.
func (s *UserService) FindAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.FindAllActive(ctx)
	if err != nil {
		return nil, failStore(s.log, err, "find users")
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: user list is empty", domain.ErrNotFound)
	}
	return users, nil
}

// Delete soft-deletes the user. References held by projects are not
// purged; cleanup is a separate maintenance concern.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if err := s.users.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: user with id %s", domain.ErrNotFound, id)
		}
		return failStore(s.log, err, "delete user")
	}
	s.log.Warn().Str("user_id", id).Msg("user soft-deleted")
	s.audit.Record(domain.AuditEvent{
		Action:     domain.AuditSoftDeleted,
		EntityKind: "user",
		EntityID:   id,
		Timestamp:  time.Now().UTC(),
	})
	return nil
}
