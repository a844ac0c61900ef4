package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/console/internal/api/middleware"
	"github.com/taskmanagement/console/internal/core/access"
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
	"github.com/taskmanagement/console/internal/web"
)

type stubSessions struct {
	loginFn        func(ctx context.Context, creds ports.Credentials) (string, *domain.Session, error)
	logoutFn       func(ctx context.Context, id string) error
	replaceRolesFn func(ctx context.Context, id string, roles []domain.Role) (*domain.Session, error)
	loggedOut      []string
}

func (s *stubSessions) Login(ctx context.Context, creds ports.Credentials) (string, *domain.Session, error) {
	return s.loginFn(ctx, creds)
}

func (s *stubSessions) Logout(ctx context.Context, id string) error {
	s.loggedOut = append(s.loggedOut, id)
	if s.logoutFn != nil {
		return s.logoutFn(ctx, id)
	}
	return nil
}

func (s *stubSessions) Current(_ context.Context, _ string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessions) ReplaceRoles(ctx context.Context, id string, roles []domain.Role) (*domain.Session, error) {
	return s.replaceRolesFn(ctx, id, roles)
}

type stubTasks struct {
	listFn   func(ctx context.Context, actor *domain.Session, filter ports.TaskFilter) ([]domain.Task, error)
	deleteFn func(ctx context.Context, actor *domain.Session, id int64) error
	deleted  []int64
}

func (s *stubTasks) List(ctx context.Context, actor *domain.Session, filter ports.TaskFilter) ([]domain.Task, error) {
	return s.listFn(ctx, actor, filter)
}

func (s *stubTasks) ListMine(_ context.Context, _ *domain.Session) ([]domain.Task, error) {
	return nil, nil
}

func (s *stubTasks) Get(_ context.Context, _ *domain.Session, _ int64) (*domain.Task, error) {
	return nil, domain.ErrNotFound
}

func (s *stubTasks) Create(_ context.Context, _ *domain.Session, task domain.Task) (*domain.Task, error) {
	return &task, nil
}

func (s *stubTasks) Update(_ context.Context, _ *domain.Session, _ int64, task domain.Task) (*domain.Task, error) {
	return &task, nil
}

func (s *stubTasks) Delete(ctx context.Context, actor *domain.Session, id int64) error {
	s.deleted = append(s.deleted, id)
	return s.deleteFn(ctx, actor, id)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = web.MustRenderer()
	e.Validator = NewValidator()
	return e
}

func testBase() Base {
	return Base{Routes: access.Routes()}
}

func testCookies() middleware.Cookies {
	return middleware.Cookies{Name: "tm_session", Secret: []byte("test-secret"), TTL: time.Hour}
}

func authenticated(codes ...string) domain.AuthState {
	s := &domain.Session{UserID: 7, DisplayName: "Test User", Username: "test", Authenticated: true, AccessToken: "tok-7"}
	for i, code := range codes {
		s.Roles = append(s.Roles, domain.Role{ID: int64(i + 1), Code: code, Name: code})
	}
	return domain.AuthState{Phase: domain.PhaseAuthenticated, SessionID: "sid-7", Session: s}
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// withFlashes wraps h in the flash session middleware so popFlashes can read
// back what h queued on the same context.
func withFlashes(h echo.HandlerFunc) echo.HandlerFunc {
	return session.Middleware(sessions.NewCookieStore([]byte("flash-test-secret")))(h)
}
