package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/i2i/project-management/internal/core/domain"
	"github.com/i2i/project-management/internal/core/ports"
)

// RoleService implements role lifecycle and user-role assignment.
type RoleService struct {
	roles ports.RoleRepository
	users ports.UserRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, users ports.UserRepository, audit ports.AuditRecorder, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, users: users, audit: audit, log: log}
}

// Create adds a new role.
func (s *RoleService) Create(ctx context.Context, input ports.RoleInput) (*domain.Role, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: role name is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	role := &domain.Role{
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.roles.Create(ctx, role)
	if err != nil {
		return nil, failStore(s.log, err, "create role")
	}
	s.log.Info().Str("role", created.Name).Msg("role created")
	return created, nil
}

// Update renames or re-describes a role. The lookup deliberately skips
// the deleted filter: updating a soft-deleted role is an illegal state
// transition, not a missing aggregate, and is reported as such.
func (s *RoleService) Update(ctx context.Context, id string, input ports.RoleInput) (*domain.Role, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: role id is required", domain.ErrValidation)
	}

	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: role with id %s", domain.ErrNotFound, id)
		}
		return nil, failStore(s.log, err, "find role")
	}
	if role.IsDeleted {
		return nil, fmt.Errorf("%w: role is deleted and cannot be updated", domain.ErrValidation)
	}

	if input.Name != "" {
		role.Name = input.Name
	}
	if input.Description != "" {
		role.Description = input.Description
	}
	role.UpdatedAt = time.Now().UTC()

	saved, err := s.roles.Save(ctx, role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: role is deleted and cannot be updated", domain.ErrValidation)
		}
		return nil, failStore(s.log, err, "save role")
	}
	s.log.Info().Str("role_id", id).Msg("role updated")
	return saved, nil
}

// FindByID returns the active role with the given id.
func (s *RoleService) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: role id is required", domain.ErrValidation)
	}
	role, err := s.roles.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: role with id %s", domain.ErrNotFound, id)
		}
		return nil, failStore(s.log, err, "find role")
	}
	return role, nil
}

// FindAll returns all active roles; an empty list is reported as not
// found.
func (s *RoleService) FindAll(ctx context.Context) ([]*domain.Role, error) {
	roles, err := s.roles.FindAllActive(ctx)
	if err != nil {
		return nil, failStore(s.log, err, "find roles")
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("%w: role list is empty", domain.ErrNotFound)
	}
	return roles, nil
}

// Delete soft-deletes the role. Users already holding it keep the
// reference, but it can no longer be assigned or updated.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: role id is required", domain.ErrValidation)
	}
	if err := s.roles.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: role with id %s", domain.ErrNotFound, id)
		}
		return failStore(s.log, err, "delete role")
	}
	s.log.Warn().Str("role_id", id).Msg("role soft-deleted")
	s.audit.Record(domain.AuditEvent{
		Action:     domain.AuditSoftDeleted,
		EntityKind: "role",
		EntityID:   id,
		Timestamp:  time.Now().UTC(),
	})
	return nil
}

// AssignRoles unions the active subset of roleIDs into the user's role
// set. Soft-deleted and unknown ids are filtered out; when nothing
// survives the filter the call fails without mutating the user.
// Re-assigning an already-held role is a no-op.
func (s *RoleService) AssignRoles(ctx context.Context, roleIDs []string, userID string) (*domain.User, error) {
	if len(roleIDs) == 0 || userID == "" {
		return nil, fmt.Errorf("%w: user id and role ids are required", domain.ErrValidation)
	}

	user, err := s.users.FindActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with id %s", domain.ErrNotFound, userID)
		}
		return nil, failStore(s.log, err, "find user")
	}

	roles, err := s.roles.FindActiveByIDs(ctx, roleIDs)
	if err != nil {
		return nil, failStore(s.log, err, "find roles")
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("%w: no valid active roles found to assign", domain.ErrValidation)
	}

	activeIDs := make([]string, 0, len(roles))
	for _, role := range roles {
		activeIDs = append(activeIDs, role.ID)
	}
	user.AddRoles(activeIDs)
	user.UpdatedAt = time.Now().UTC()

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with id %s", domain.ErrNotFound, userID)
		}
		return nil, failStore(s.log, err, "save user")
	}

	s.log.Info().Str("user_id", userID).Strs("role_ids", activeIDs).Msg("roles assigned")
	s.audit.Record(domain.AuditEvent{
		Action:     domain.AuditRolesAssigned,
		EntityKind: "user",
		EntityID:   userID,
		Detail:     strings.Join(activeIDs, ","),
		Timestamp:  time.Now().UTC(),
	})
	return saved, nil
}
