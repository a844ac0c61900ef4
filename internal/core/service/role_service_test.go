package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/core/domain"
)

func sampleRoles() []domain.Role {
	return []domain.Role{
		{ID: 1, Code: "administrators", Name: "Administrators"},
		{ID: 2, Code: "managers", Name: "Managers"},
		{ID: 3, Code: "members", Name: "Members"},
	}
}

func TestRoleService_List_ForbiddenForMembers(t *testing.T) {
	api := &stubRoleAPI{roles: sampleRoles()}
	svc := NewRoleService(api, &stubAuditRepo{}, zerolog.Nop())

	if _, err := svc.List(context.Background(), sessionWithRoles("members")); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("API must not be contacted, got calls %v", api.calls)
	}
}

func TestRoleService_ManagersCanView(t *testing.T) {
	api := &stubRoleAPI{roles: sampleRoles()}
	svc := NewRoleService(api, &stubAuditRepo{}, zerolog.Nop())
	manager := sessionWithRoles("managers")

	roles, err := svc.List(context.Background(), manager)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(roles) != 3 {
		t.Fatalf("expected 3 roles, got %d", len(roles))
	}

	role, err := svc.Get(context.Background(), manager, 2)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if role.Code != "managers" {
		t.Fatalf("expected managers role, got %+v", role)
	}
	for i, tok := range api.tokens {
		if tok != "tok-7" {
			t.Fatalf("call %d (%s) carried token %q", i, api.calls[i], tok)
		}
	}
}

func TestRoleService_MutationsAreAdministratorsOnly(t *testing.T) {
	tests := []struct {
		name   string
		action string
		run    func(svc *RoleService, actor *domain.Session) error
	}{
		{"create", "role:create", func(svc *RoleService, actor *domain.Session) error {
			_, err := svc.Create(context.Background(), actor, domain.Role{Code: "auditors", Name: "Auditors"})
			return err
		}},
		{"update", "role:update", func(svc *RoleService, actor *domain.Session) error {
			_, err := svc.Update(context.Background(), actor, 3, domain.Role{Code: "members", Name: "Team"})
			return err
		}},
		{"delete", "role:delete", func(svc *RoleService, actor *domain.Session) error {
			return svc.Delete(context.Background(), actor, 3)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubRoleAPI{roles: sampleRoles()}
			audits := &stubAuditRepo{}
			svc := NewRoleService(api, audits, zerolog.Nop())

			if err := tt.run(svc, sessionWithRoles("managers")); !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("manager: expected ErrForbidden, got %v", err)
			}
			if len(api.calls) != 0 {
				t.Fatalf("API must not be contacted, got calls %v", api.calls)
			}
			if got := audits.last(); got.Action != tt.action || got.Outcome != domain.OutcomeDenied {
				t.Fatalf("expected denied %s audit entry, got %+v", tt.action, got)
			}

			if err := tt.run(svc, sessionWithRoles("administrators")); err != nil {
				t.Fatalf("administrator: unexpected error %v", err)
			}
			if got := audits.last(); got.Action != tt.action || got.Outcome != domain.OutcomeSuccess {
				t.Fatalf("expected successful %s audit entry, got %+v", tt.action, got)
			}
		})
	}
}

func TestRoleService_Create_NormalizesCode(t *testing.T) {
	api := &stubRoleAPI{roles: sampleRoles()}
	audits := &stubAuditRepo{}
	svc := NewRoleService(api, audits, zerolog.Nop())

	created, err := svc.Create(context.Background(), sessionWithRoles("administrators"), domain.Role{Code: "  Leaders ", Name: "Leaders"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if api.sent[0].Code != "leaders" {
		t.Fatalf("expected normalized code sent to the API, got %q", api.sent[0].Code)
	}
	got := audits.last()
	if got.ResourceID != created.ID || got.Resource != "role" {
		t.Fatalf("expected audit entry for role %d, got %+v", created.ID, got)
	}
}

func TestRoleService_Update_NormalizesCode(t *testing.T) {
	api := &stubRoleAPI{roles: sampleRoles()}
	svc := NewRoleService(api, &stubAuditRepo{}, zerolog.Nop())

	updated, err := svc.Update(context.Background(), sessionWithRoles("administrators"), 3, domain.Role{Code: "MEMBERS", Name: "Members"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if api.sent[0].Code != "members" || updated.ID != 3 {
		t.Fatalf("unexpected update: sent %+v, got %+v", api.sent[0], updated)
	}
}

func TestRoleService_Delete_RemoteFailure(t *testing.T) {
	api := &stubRoleAPI{roles: sampleRoles(), deleteErr: domain.ErrServer}
	audits := &stubAuditRepo{}
	svc := NewRoleService(api, audits, zerolog.Nop())

	if err := svc.Delete(context.Background(), sessionWithRoles("administrators"), 2); !errors.Is(err, domain.ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
	got := audits.last()
	if got.Outcome != domain.OutcomeFailure || got.ResourceID != 2 || got.Error == "" {
		t.Fatalf("expected failure audit entry, got %+v", got)
	}
}
