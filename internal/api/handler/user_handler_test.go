package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/api/middleware"
	"github.com/taskmanagement/console/internal/core/domain"
)

type stubUsers struct {
	addRolesFn func(ctx context.Context, actor *domain.Session, userID int64, roleIDs []int64) (*domain.UserProfile, error)
}

func (s *stubUsers) List(context.Context, *domain.Session) ([]domain.UserProfile, error) {
	return nil, nil
}

func (s *stubUsers) Get(_ context.Context, _ *domain.Session, id int64) (*domain.UserProfile, error) {
	return &domain.UserProfile{ID: id, Username: "u" + strconv.FormatInt(id, 10)}, nil
}

func (s *stubUsers) Create(context.Context, *domain.Session, domain.NewUser) (*domain.UserProfile, error) {
	return nil, nil
}

func (s *stubUsers) Update(context.Context, *domain.Session, int64, domain.UserProfile) (*domain.UserProfile, error) {
	return nil, nil
}

func (s *stubUsers) Delete(context.Context, *domain.Session, int64) error {
	return nil
}

func (s *stubUsers) AddRoles(ctx context.Context, actor *domain.Session, userID int64, roleIDs []int64) (*domain.UserProfile, error) {
	return s.addRolesFn(ctx, actor, userID, roleIDs)
}

func (s *stubUsers) RemoveRoles(context.Context, *domain.Session, int64, []int64) (*domain.UserProfile, error) {
	return nil, nil
}

type stubRoles struct{}

func (stubRoles) List(context.Context, *domain.Session) ([]domain.Role, error) {
	return []domain.Role{{ID: 1, Code: "leaders", Name: "Leaders"}, {ID: 2, Code: "managers", Name: "Managers"}}, nil
}

func (stubRoles) Get(context.Context, *domain.Session, int64) (*domain.Role, error) {
	return nil, domain.ErrNotFound
}

func (stubRoles) Create(_ context.Context, _ *domain.Session, r domain.Role) (*domain.Role, error) {
	return &r, nil
}

func (stubRoles) Update(_ context.Context, _ *domain.Session, _ int64, r domain.Role) (*domain.Role, error) {
	return &r, nil
}

func (stubRoles) Delete(context.Context, *domain.Session, int64) error {
	return nil
}

func addRolesContext(e *echo.Echo, userID string, roleIDs ...string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/add-roles-to-user/"+userID, url.Values{"role_ids": roleIDs}), rec)
	c.SetPath("/add-roles-to-user/:userId")
	c.SetParamNames("userId")
	c.SetParamValues(userID)
	middleware.SetState(c, authenticated("administrators"))
	return c, rec
}

func TestUserHandler_AddRoles_OtherUser(t *testing.T) {
	e := newTestEcho()
	users := &stubUsers{
		addRolesFn: func(_ context.Context, _ *domain.Session, userID int64, roleIDs []int64) (*domain.UserProfile, error) {
			if userID != 3 || len(roleIDs) != 2 || roleIDs[0] != 1 || roleIDs[1] != 2 {
				t.Fatalf("unexpected args: %d %v", userID, roleIDs)
			}
			return &domain.UserProfile{ID: 3}, nil
		},
	}
	sessions := &stubSessions{
		replaceRolesFn: func(context.Context, string, []domain.Role) (*domain.Session, error) {
			t.Fatalf("another user's roles must not touch the caller's session")
			return nil, nil
		},
	}
	h := NewUserHandler(testBase(), users, stubRoles{}, sessions, zerolog.Nop())
	c, rec := addRolesContext(e, "3", "1", "2")

	if err := h.AddRoles(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/view-user/3" {
		t.Fatalf("expected 303 to /view-user/3, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestUserHandler_AddRoles_OwnRolesRefreshSession(t *testing.T) {
	e := newTestEcho()
	newRoles := []domain.Role{{ID: 9, Code: "administrators"}, {ID: 1, Code: "leaders"}}
	users := &stubUsers{
		addRolesFn: func(context.Context, *domain.Session, int64, []int64) (*domain.UserProfile, error) {
			return &domain.UserProfile{ID: 7, Roles: newRoles}, nil
		},
	}
	var replacedFor string
	sessions := &stubSessions{
		replaceRolesFn: func(_ context.Context, id string, roles []domain.Role) (*domain.Session, error) {
			replacedFor = id
			return &domain.Session{UserID: 7, Authenticated: true, Roles: roles}, nil
		},
	}
	h := NewUserHandler(testBase(), users, stubRoles{}, sessions, zerolog.Nop())
	c, rec := addRolesContext(e, "7", "1")

	if err := h.AddRoles(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if replacedFor != "sid-7" {
		t.Fatalf("expected stored session sid-7 to be refreshed, got %q", replacedFor)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect home, got %q", loc)
	}
	if got := middleware.CurrentSession(c).RoleCodes(); len(got) != 2 {
		t.Fatalf("expected request state to carry the new roles, got %v", got)
	}
}

func TestUserHandler_AddRoles_EmptySelection(t *testing.T) {
	e := newTestEcho()
	users := &stubUsers{
		addRolesFn: func(context.Context, *domain.Session, int64, []int64) (*domain.UserProfile, error) {
			return nil, domain.NewValidationError("role_ids", "Select at least one role")
		},
	}
	h := NewUserHandler(testBase(), users, stubRoles{}, &stubSessions{}, zerolog.Nop())
	c, rec := addRolesContext(e, "3")

	if err := h.AddRoles(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestUserHandler_AddRoles_Forbidden(t *testing.T) {
	e := newTestEcho()
	users := &stubUsers{
		addRolesFn: func(context.Context, *domain.Session, int64, []int64) (*domain.UserProfile, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewUserHandler(testBase(), users, stubRoles{}, &stubSessions{}, zerolog.Nop())
	c, _ := addRolesContext(e, "3", "1")

	if err := h.AddRoles(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserHandler_AddRoles_OwnRolesSessionNotRefreshed(t *testing.T) {
	e := newTestEcho()
	users := &stubUsers{
		addRolesFn: func(context.Context, *domain.Session, int64, []int64) (*domain.UserProfile, error) {
			return &domain.UserProfile{ID: 7, Roles: []domain.Role{{ID: 1, Code: "leaders"}}}, nil
		},
	}
	sessions := &stubSessions{
		replaceRolesFn: func(context.Context, string, []domain.Role) (*domain.Session, error) {
			return nil, domain.ErrSessionUnavailable
		},
	}
	h := NewUserHandler(testBase(), users, stubRoles{}, sessions, zerolog.Nop())
	c, rec := addRolesContext(e, "7", "1")

	if err := withFlashes(h.AddRoles)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect home, got %q", loc)
	}
	if got := middleware.CurrentSession(c).RoleCodes(); len(got) != 1 || got[0] != "administrators" {
		t.Fatalf("request state must keep the old roles, got %v", got)
	}
	flashes := popFlashes(c)
	if len(flashes) != 1 || !strings.Contains(flashes[0].Message, "log in again") {
		t.Fatalf("expected a flash saying the menu lags until the next login, got %+v", flashes)
	}
}
