package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/i2i/project-management/internal/core/domain"
	"github.com/i2i/project-management/internal/core/ports"
)

// ProjectService implements project lifecycle and project membership.
type ProjectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, users ports.UserRepository, audit ports.AuditRecorder, log zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, users: users, audit: audit, log: log}
}

// Create adds a new project. Name is required.
func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		return nil, failStore(s.log, err, "create project")
	}
	s.log.Info().Str("project", created.Name).Msg("project created")
	return created, nil
}

// Update applies a partial update; at least one field must be supplied.
func (s *ProjectService) Update(ctx context.Context, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: project id is required", domain.ErrValidation)
	}
	if input.Name == nil && input.Description == nil {
		return nil, fmt.Errorf("%w: provide a name or description to update", domain.ErrValidation)
	}

	project, err := s.projects.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: project with id %s", domain.ErrNotFound, id)
		}
		return nil, failStore(s.log, err, "find project")
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	project.UpdatedAt = time.Now().UTC()

	saved, err := s.projects.Save(ctx, project)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: project with id %s", domain.ErrNotFound, id)
		}
		return nil, failStore(s.log, err, "save project")
	}
	s.log.Info().Str("project_id", id).Msg("project updated")
	return saved, nil
}

// FindByID returns the active project with the given id.
func (s *ProjectService) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: project id is required", domain.ErrValidation)
	}
	project, err := s.projects.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: project with id %s", domain.ErrNotFound, id)
		}
		return nil, failStore(s.log, err, "find project")
	}
	return project, nil
}

// FindAll returns all active projects. Unlike users and roles an empty
// list is a valid result.
func (s *ProjectService) FindAll(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projects.FindAllActive(ctx)
	if err != nil {
		return nil, failStore(s.log, err, "find projects")
	}
	return projects, nil
}

// Delete soft-deletes the project without cascading to member users.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: project id is required", domain.ErrValidation)
	}
	if err := s.projects.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: project with id %s", domain.ErrNotFound, id)
		}
		return failStore(s.log, err, "delete project")
	}
	s.log.Warn().Str("project_id", id).Msg("project soft-deleted")
	s.audit.Record(domain.AuditEvent{
		Action:     domain.AuditSoftDeleted,
		EntityKind: "project",
		EntityID:   id,
		Timestamp:  time.Now().UTC(),
	})
	return nil
}

// AddMember adds the user to the project's member set. Membership is
// strict: a user already present is rejected with a validation error,
// not treated as a no-op.
func (s *ProjectService) AddMember(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	project, user, err := s.resolvePair(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	if project.HasMember(user.ID) {
		return nil, fmt.Errorf("%w: user with id %s is already present in project with id %s",
			domain.ErrValidation, userID, projectID)
	}
	project.MemberIDs = append(project.MemberIDs, user.ID)
	project.UpdatedAt = time.Now().UTC()

	saved, err := s.projects.Save(ctx, project)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: project with id %s", domain.ErrNotFound, projectID)
		}
		return nil, failStore(s.log, err, "save project")
	}

	s.log.Info().Str("project_id", projectID).Str("user_id", userID).Msg("member added")
	s.audit.Record(domain.AuditEvent{
		Action:     domain.AuditMemberAdded,
		EntityKind: "project",
		EntityID:   projectID,
		Detail:     userID,
		Timestamp:  time.Now().UTC(),
	})
	return saved, nil
}

// RemoveMember drops the user from the project's member set. Removing a
// user who is not a member is a validation error.
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	project, user, err := s.resolvePair(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	if !project.RemoveMember(user.ID) {
		return nil, fmt.Errorf("%w: user with id %s is not present in project with id %s",
			domain.ErrValidation, userID, projectID)
	}
	project.UpdatedAt = time.Now().UTC()

	saved, err := s.projects.Save(ctx, project)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: project with id %s", domain.ErrNotFound, projectID)
		}
		return nil, failStore(s.log, err, "save project")
	}

	s.log.Info().Str("project_id", projectID).Str("user_id", userID).Msg("member removed")
	s.audit.Record(domain.AuditEvent{
		Action:     domain.AuditMemberRemoved,
		EntityKind: "project",
		EntityID:   projectID,
		Detail:     userID,
		Timestamp:  time.Now().UTC(),
	})
	return saved, nil
}

// resolvePair loads the active project and user for a membership
// mutation, mapping misses to not-found errors.
func (s *ProjectService) resolvePair(ctx context.Context, projectID, userID string) (*domain.Project, *domain.User, error) {
	if projectID == "" || userID == "" {
		return nil, nil, fmt.Errorf("%w: project id and user id are required", domain.ErrValidation)
	}

	project, err := s.projects.FindActiveByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: project with id %s", domain.ErrNotFound, projectID)
		}
		return nil, nil, failStore(s.log, err, "find project")
	}

	user, err := s.users.FindActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: user with id %s", domain.ErrNotFound, userID)
		}
		return nil, nil, failStore(s.log, err, "find user")
	}

	return project, user, nil
}
