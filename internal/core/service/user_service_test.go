package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/core/domain"
)

func newStubUserAPI() *stubUserAPI {
	return &stubUserAPI{users: map[int64]*domain.UserProfile{
		5: {ID: 5, FullName: "Bob", Username: "bob", Roles: []domain.Role{{ID: 4, Code: "members"}}},
	}}
}

func TestUserService_AddRoles_SkipsHeldRoles(t *testing.T) {
	api := newStubUserAPI()
	svc := NewUserService(api, nil, zerolog.Nop())

	u, err := svc.AddRoles(context.Background(), sessionWithRoles("administrators"), 5, []int64{4, 2})
	if err != nil {
		t.Fatalf("AddRoles returned error: %v", err)
	}
	if len(api.added) != 1 || len(api.added[0]) != 1 || api.added[0][0] != 2 {
		t.Fatalf("expected only role 2 sent, got %v", api.added)
	}
	if !u.HasRole(2) || !u.HasRole(4) {
		t.Fatalf("unexpected roles after add: %+v", u.Roles)
	}
}

func TestUserService_AddRoles_NothingApplicable(t *testing.T) {
	api := newStubUserAPI()
	svc := NewUserService(api, nil, zerolog.Nop())

	if _, err := svc.AddRoles(context.Background(), sessionWithRoles("administrators"), 5, []int64{4}); err != nil {
		t.Fatalf("AddRoles returned error: %v", err)
	}
	if len(api.added) != 0 {
		t.Fatalf("expected no API call, got %v", api.added)
	}
}

func TestUserService_RemoveRoles_OnlyHeld(t *testing.T) {
	api := newStubUserAPI()
	svc := NewUserService(api, nil, zerolog.Nop())

	if _, err := svc.RemoveRoles(context.Background(), sessionWithRoles("administrators"), 5, []int64{4, 3}); err != nil {
		t.Fatalf("RemoveRoles returned error: %v", err)
	}
	if len(api.removed) != 1 || len(api.removed[0]) != 1 || api.removed[0][0] != 4 {
		t.Fatalf("expected only role 4 sent, got %v", api.removed)
	}
}

func TestUserService_ManageRoles_ManagersForbidden(t *testing.T) {
	api := newStubUserAPI()
	svc := NewUserService(api, nil, zerolog.Nop())

	if _, err := svc.AddRoles(context.Background(), sessionWithRoles("managers"), 5, []int64{2}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_AddRoles_EmptySelection(t *testing.T) {
	svc := NewUserService(newStubUserAPI(), nil, zerolog.Nop())

	if _, err := svc.AddRoles(context.Background(), sessionWithRoles("administrators"), 5, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_List_ManagersAllowed(t *testing.T) {
	svc := NewUserService(newStubUserAPI(), nil, zerolog.Nop())

	users, err := svc.List(context.Background(), sessionWithRoles("managers"))
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if _, err := svc.List(context.Background(), sessionWithRoles("members")); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected members forbidden, got %v", err)
	}
}
