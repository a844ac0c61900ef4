package service

import (
	"context"
	"sync"
	"time"

	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

type stubGateway struct {
	login func(ctx context.Context, creds ports.Credentials) (*ports.LoginResult, error)
}

func (g *stubGateway) Login(ctx context.Context, creds ports.Credentials) (*ports.LoginResult, error) {
	return g.login(ctx, creds)
}

func (g *stubGateway) Logout(context.Context, string) error { return nil }

type stubSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	saveErr  error
	findErr  error
	saves    int
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]domain.Session)}
}

func (r *stubSessionRepo) Save(_ context.Context, id string, s *domain.Session, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.sessions[id] = *s
	return nil
}

func (r *stubSessionRepo) Find(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

type stubLogoutQueue struct {
	enqueued []ports.LogoutConfirmation
}

func (q *stubLogoutQueue) Enqueue(c ports.LogoutConfirmation) {
	q.enqueued = append(q.enqueued, c)
}

type stubAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
}

func (r *stubAuditRepo) Record(_ context.Context, e *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubAuditRepo) last() domain.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return domain.AuditEntry{}
	}
	return r.entries[len(r.entries)-1]
}

// stubTaskAPI records calls and serves tasks from memory.
type stubTaskAPI struct {
	tasks     []domain.Task
	deleteErr error
	calls     []string
	tokens    []string
}

func (a *stubTaskAPI) track(ctx context.Context, call string) {
	a.calls = append(a.calls, call)
	a.tokens = append(a.tokens, ports.AccessToken(ctx))
}

func (a *stubTaskAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	a.track(ctx, "list")
	return a.tasks, nil
}

func (a *stubTaskAPI) ListTasksByAssignee(ctx context.Context, assigneeID int64) ([]domain.Task, error) {
	a.track(ctx, "by-assignee")
	var out []domain.Task
	for _, t := range a.tasks {
		if t.AssigneeID == assigneeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (a *stubTaskAPI) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	a.track(ctx, "get")
	for _, t := range a.tasks {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (a *stubTaskAPI) CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	a.track(ctx, "create")
	task.ID = int64(len(a.tasks) + 1)
	a.tasks = append(a.tasks, task)
	return &task, nil
}

func (a *stubTaskAPI) UpdateTask(ctx context.Context, id int64, task domain.Task) (*domain.Task, error) {
	a.track(ctx, "update")
	task.ID = id
	return &task, nil
}

func (a *stubTaskAPI) DeleteTask(ctx context.Context, id int64) error {
	a.track(ctx, "delete")
	if a.deleteErr != nil {
		return a.deleteErr
	}
	for i, t := range a.tasks {
		if t.ID == id {
			a.tasks = append(a.tasks[:i], a.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubUserAPI struct {
	users   map[int64]*domain.UserProfile
	added   [][]int64
	removed [][]int64
}

func (a *stubUserAPI) ListUsers(context.Context) ([]domain.UserProfile, error) {
	var out []domain.UserProfile
	for _, u := range a.users {
		out = append(out, *u)
	}
	return out, nil
}

func (a *stubUserAPI) GetUser(_ context.Context, id int64) (*domain.UserProfile, error) {
	u, ok := a.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone, nil
}

func (a *stubUserAPI) CreateUser(_ context.Context, nu domain.NewUser) (*domain.UserProfile, error) {
	u := &domain.UserProfile{ID: int64(len(a.users) + 1), FullName: nu.FullName, Username: nu.Username}
	a.users[u.ID] = u
	return u, nil
}

func (a *stubUserAPI) UpdateUser(_ context.Context, id int64, u domain.UserProfile) (*domain.UserProfile, error) {
	u.ID = id
	return &u, nil
}

func (a *stubUserAPI) DeleteUser(context.Context, int64) error { return nil }

func (a *stubUserAPI) AddRolesToUser(ctx context.Context, userID int64, roleIDs []int64) (*domain.UserProfile, error) {
	a.added = append(a.added, roleIDs)
	u := a.users[userID]
	for _, id := range roleIDs {
		u.Roles = append(u.Roles, domain.Role{ID: id})
	}
	return a.GetUser(ctx, userID)
}

func (a *stubUserAPI) RemoveRolesFromUser(ctx context.Context, userID int64, roleIDs []int64) (*domain.UserProfile, error) {
	a.removed = append(a.removed, roleIDs)
	return a.GetUser(ctx, userID)
}

type stubRoleAPI struct {
	roles     []domain.Role
	deleteErr error
	calls     []string
	tokens    []string
	sent      []domain.Role
}

func (a *stubRoleAPI) track(ctx context.Context, call string) {
	a.calls = append(a.calls, call)
	a.tokens = append(a.tokens, ports.AccessToken(ctx))
}

func (a *stubRoleAPI) ListRoles(ctx context.Context) ([]domain.Role, error) {
	a.track(ctx, "list")
	return a.roles, nil
}

func (a *stubRoleAPI) GetRole(ctx context.Context, id int64) (*domain.Role, error) {
	a.track(ctx, "get")
	for _, r := range a.roles {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (a *stubRoleAPI) CreateRole(ctx context.Context, role domain.Role) (*domain.Role, error) {
	a.track(ctx, "create")
	a.sent = append(a.sent, role)
	role.ID = int64(len(a.roles) + 1)
	a.roles = append(a.roles, role)
	return &role, nil
}

func (a *stubRoleAPI) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.Role, error) {
	a.track(ctx, "update")
	a.sent = append(a.sent, role)
	role.ID = id
	return &role, nil
}

func (a *stubRoleAPI) DeleteRole(ctx context.Context, id int64) error {
	a.track(ctx, "delete")
	return a.deleteErr
}

func sessionWithRoles(codes ...string) *domain.Session {
	s := &domain.Session{UserID: 7, Username: "tester", Authenticated: true, AccessToken: "tok-7"}
	for i, c := range codes {
		s.Roles = append(s.Roles, domain.Role{ID: int64(i + 1), Code: c})
	}
	return s
}
