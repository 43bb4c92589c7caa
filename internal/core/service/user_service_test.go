package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/i2i/project-management/internal/core/domain"
	"github.com/i2i/project-management/internal/core/ports"
)

func newUserService(users *stubUserRepo, roles *stubRoleRepo) (*UserService, *stubAudit) {
	audit := &stubAudit{}
	return NewUserService(users, roles, audit, zerolog.Nop()), audit
}

func strPtr(s string) *string { return &s }

func TestUserService_Create_DefaultRole(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	svc, audit := newUserService(users, roles)

	employee := seedRole(t, roles, "EMPLOYEE")

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:     "u1@x.com",
		Password:  "secret-pw",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !user.HasRole(employee.ID) {
		t.Fatalf("expected default EMPLOYEE role, got %v", user.RoleIDs)
	}
	if user.PasswordHash == "secret-pw" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-pw")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if audit.count(domain.AuditUserCreated) != 1 {
		t.Fatalf("expected user_created audit event")
	}
}

func TestUserService_Create_MissingSeedRole(t *testing.T) {
	svc, _ := newUserService(newStubUserRepo(), newStubRoleRepo())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:     "u1@x.com",
		Password:  "secret-pw",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation without EMPLOYEE seed, got %v", err)
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	svc, _ := newUserService(newStubUserRepo(), newStubRoleRepo())

	cases := []ports.CreateUserInput{
		{Password: "pw", FirstName: "A", LastName: "B"},
		{Email: "a@x.com", FirstName: "A", LastName: "B"},
		{Email: "a@x.com", Password: "pw", LastName: "B"},
		{Email: "a@x.com", Password: "pw", FirstName: "A"},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation for %+v, got %v", input, err)
		}
	}
}

func TestUserService_Create_ExplicitRolesFiltered(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	svc, _ := newUserService(users, roles)

	active := seedRole(t, roles, "PROJECT_MANAGER")
	deleted := seedRole(t, roles, "ADMIN")
	if err := roles.SoftDelete(context.Background(), deleted.ID); err != nil {
		t.Fatalf("soft-delete: %v", err)
	}

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:     "u1@x.com",
		Password:  "secret-pw",
		FirstName: "Ada",
		LastName:  "Lovelace",
		RoleIDs:   []string{active.ID, deleted.ID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.HasRole(deleted.ID) {
		t.Fatalf("deleted role assigned on create")
	}
	if !user.HasRole(active.ID) {
		t.Fatalf("active role missing")
	}
}

func TestUserService_UpdateOwnProfile(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	svc, _ := newUserService(users, roles)

	seedUser(t, users, "u1@x.com", "pw")

	// Empty patch is rejected.
	if _, err := svc.UpdateOwnProfile(context.Background(), "u1@x.com", ports.UpdateUserInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty patch, got %v", err)
	}

	updated, err := svc.UpdateOwnProfile(context.Background(), "u1@x.com", ports.UpdateUserInput{
		FirstName: strPtr("Grace"),
		Address:   strPtr("1 Main St"),
	})
	if err != nil {
		t.Fatalf("UpdateOwnProfile: %v", err)
	}
	if updated.FirstName != "Grace" || updated.Address != "1 Main St" {
		t.Fatalf("patch not applied: %+v", updated)
	}

	if _, err := svc.UpdateOwnProfile(context.Background(), "nobody@x.com", ports.UpdateUserInput{FirstName: strPtr("X")}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown subject, got %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, _ := newUserService(newStubUserRepo(), newStubRoleRepo())

	if _, err := svc.Update(context.Background(), "ghost", ports.UpdateUserInput{FirstName: strPtr("X")}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserService_Delete_HidesUser(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	svc, audit := newUserService(users, roles)

	user := seedUser(t, users, "u1@x.com", "pw")
	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.FindByID(context.Background(), user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected deleted user to be invisible, got %v", err)
	}
	if audit.count(domain.AuditSoftDeleted) != 1 {
		t.Fatalf("expected soft-delete audit event")
	}

	// Double delete: already-deleted user resolves to nothing.
	if err := svc.Delete(context.Background(), user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUserService_FindAll_Empty(t *testing.T) {
	svc, _ := newUserService(newStubUserRepo(), newStubRoleRepo())

	if _, err := svc.FindAll(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty user list, got %v", err)
	}
}
