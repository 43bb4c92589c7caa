package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/i2i/project-management/internal/core/domain"
	"github.com/i2i/project-management/internal/core/ports"
)

func newProjectService(projects *stubProjectRepo, users *stubUserRepo) (*ProjectService, *stubAudit) {
	audit := &stubAudit{}
	return NewProjectService(projects, users, audit, zerolog.Nop()), audit
}

func seedProject(t *testing.T, repo *stubProjectRepo, name string) *domain.Project {
	t.Helper()
	project, err := repo.Create(context.Background(), &domain.Project{Name: name})
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

func TestProjectService_Create_Validation(t *testing.T) {
	svc, _ := newProjectService(newStubProjectRepo(), newStubUserRepo())

	if _, err := svc.Create(context.Background(), ports.CreateProjectInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}
}

func TestProjectService_Update_Validation(t *testing.T) {
	projects := newStubProjectRepo()
	svc, _ := newProjectService(projects, newStubUserRepo())

	project := seedProject(t, projects, "p1")
	if _, err := svc.Update(context.Background(), project.ID, ports.UpdateProjectInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty patch, got %v", err)
	}
}

func TestProjectService_AddMember_StrictDuplicate(t *testing.T) {
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	svc, audit := newProjectService(projects, users)

	project := seedProject(t, projects, "p1")
	user := seedUser(t, users, "u1@x.com", "pw")

	first, err := svc.AddMember(context.Background(), project.ID, user.ID)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if !first.HasMember(user.ID) {
		t.Fatalf("member not added")
	}

	// Re-adding the same member is a validation error, not a no-op.
	if _, err := svc.AddMember(context.Background(), project.ID, user.ID); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation on duplicate add, got %v", err)
	}

	current, err := projects.FindActiveByID(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("find project: %v", err)
	}
	if len(current.MemberIDs) != 1 {
		t.Fatalf("member set size changed: %v", current.MemberIDs)
	}
	if audit.count(domain.AuditMemberAdded) != 1 {
		t.Fatalf("expected 1 audit event, got %d", audit.count(domain.AuditMemberAdded))
	}
}

func TestProjectService_AddMember_NotFound(t *testing.T) {
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	svc, _ := newProjectService(projects, users)

	project := seedProject(t, projects, "p1")
	user := seedUser(t, users, "u1@x.com", "pw")

	if _, err := svc.AddMember(context.Background(), "ghost", user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing project, got %v", err)
	}
	if _, err := svc.AddMember(context.Background(), project.ID, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}

	// Soft-deleted aggregates count as missing.
	if err := users.SoftDelete(context.Background(), user.ID); err != nil {
		t.Fatalf("soft-delete: %v", err)
	}
	if _, err := svc.AddMember(context.Background(), project.ID, user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted user, got %v", err)
	}
}

func TestProjectService_RemoveMember(t *testing.T) {
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	svc, _ := newProjectService(projects, users)

	project := seedProject(t, projects, "p1")
	user := seedUser(t, users, "u1@x.com", "pw")

	// Removing a non-member is a validation error.
	if _, err := svc.RemoveMember(context.Background(), project.ID, user.ID); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for non-member, got %v", err)
	}

	if _, err := svc.AddMember(context.Background(), project.ID, user.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	updated, err := svc.RemoveMember(context.Background(), project.ID, user.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if updated.HasMember(user.ID) {
		t.Fatalf("member still present after removal")
	}
}

func TestProjectService_Delete(t *testing.T) {
	projects := newStubProjectRepo()
	svc, audit := newProjectService(projects, newStubUserRepo())

	project := seedProject(t, projects, "p1")
	if err := svc.Delete(context.Background(), project.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.FindByID(context.Background(), project.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected deleted project to be invisible, got %v", err)
	}
	if audit.count(domain.AuditSoftDeleted) != 1 {
		t.Fatalf("expected soft-delete audit event")
	}
}

func TestProjectService_FindAll_EmptyIsOK(t *testing.T) {
	svc, _ := newProjectService(newStubProjectRepo(), newStubUserRepo())

	projects, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("expected empty list, got %d", len(projects))
	}
}
