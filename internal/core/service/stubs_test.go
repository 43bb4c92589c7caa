package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/i2i/project-management/internal/core/domain"
)

// In-memory repository stubs honoring the active-record contract: every
// finder hides soft-deleted rows, Save only matches active documents.

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.RoleIDs = append([]string(nil), u.RoleIDs...)
	clone.ProjectIDs = append([]string(nil), u.ProjectIDs...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email && !u.IsDeleted {
			return nil, fmt.Errorf("%w: user with email %s already exists", domain.ErrValidation, user.Email)
		}
	}
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && !u.IsDeleted {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindActiveByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok && !u.IsDeleted {
		return cloneUser(u), nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindAllActive(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if !u.IsDeleted {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok || existing.IsDeleted {
		return nil, domain.ErrNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return domain.ErrNotFound
	}
	u.IsDeleted = true
	return nil
}

type stubRoleRepo struct {
	mu    sync.Mutex
	roles map[string]*domain.Role
	seq   int
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[string]*domain.Role)}
}

func cloneRole(r *domain.Role) *domain.Role {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role.ID == "" {
		r.seq++
		role.ID = fmt.Sprintf("role-%d", r.seq)
	}
	r.roles[role.ID] = cloneRole(role)
	return cloneRole(role), nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role, ok := r.roles[id]; ok {
		return cloneRole(role), nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubRoleRepo) FindActiveByID(_ context.Context, id string) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role, ok := r.roles[id]; ok && !role.IsDeleted {
		return cloneRole(role), nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubRoleRepo) FindActiveByName(_ context.Context, name string) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.roles {
		if role.Name == name && !role.IsDeleted {
			return cloneRole(role), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubRoleRepo) FindActiveByIDs(_ context.Context, ids []string) ([]*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Role
	for _, id := range ids {
		if role, ok := r.roles[id]; ok && !role.IsDeleted {
			out = append(out, cloneRole(role))
		}
	}
	return out, nil
}

func (r *stubRoleRepo) FindAllActive(_ context.Context) ([]*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Role
	for _, role := range r.roles {
		if !role.IsDeleted {
			out = append(out, cloneRole(role))
		}
	}
	return out, nil
}

func (r *stubRoleRepo) Save(_ context.Context, role *domain.Role) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.roles[role.ID]
	if !ok || existing.IsDeleted {
		return nil, domain.ErrNotFound
	}
	r.roles[role.ID] = cloneRole(role)
	return cloneRole(role), nil
}

func (r *stubRoleRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[id]
	if !ok || role.IsDeleted {
		return domain.ErrNotFound
	}
	role.IsDeleted = true
	return nil
}

type stubProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*domain.Project
	seq      int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func cloneProject(p *domain.Project) *domain.Project {
	if p == nil {
		return nil
	}
	clone := *p
	clone.MemberIDs = append([]string(nil), p.MemberIDs...)
	return &clone
}

func (r *stubProjectRepo) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if project.ID == "" {
		r.seq++
		project.ID = fmt.Sprintf("project-%d", r.seq)
	}
	r.projects[project.ID] = cloneProject(project)
	return cloneProject(project), nil
}

func (r *stubProjectRepo) FindActiveByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.projects[id]; ok && !p.IsDeleted {
		return cloneProject(p), nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubProjectRepo) FindAllActive(_ context.Context) ([]*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Project
	for _, p := range r.projects {
		if !p.IsDeleted {
			out = append(out, cloneProject(p))
		}
	}
	return out, nil
}

func (r *stubProjectRepo) Save(_ context.Context, project *domain.Project) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.projects[project.ID]
	if !ok || existing.IsDeleted {
		return nil, domain.ErrNotFound
	}
	r.projects[project.ID] = cloneProject(project)
	return cloneProject(project), nil
}

func (r *stubProjectRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.IsDeleted {
		return domain.ErrNotFound
	}
	p.IsDeleted = true
	return nil
}

// stubAudit collects recorded events for assertions.
type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *stubAudit) Record(event domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *stubAudit) count(action domain.AuditAction) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, e := range a.events {
		if e.Action == action {
			n++
		}
	}
	return n
}
