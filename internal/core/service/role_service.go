package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/core/access"
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

var _ ports.RoleService = (*RoleService)(nil)

type RoleService struct {
	api   ports.RoleAPI
	audit auditor
}

func NewRoleService(api ports.RoleAPI, audits ports.AuditRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{api: api, audit: newAuditor(audits, logger)}
}

func (s *RoleService) List(ctx context.Context, actor *domain.Session) ([]domain.Role, error) {
	ctx, err := authorize(ctx, actor, access.ActionViewRole)
	if err != nil {
		return nil, err
	}
	return s.api.ListRoles(ctx)
}

func (s *RoleService) Get(ctx context.Context, actor *domain.Session, id int64) (*domain.Role, error) {
	ctx, err := authorize(ctx, actor, access.ActionViewRole)
	if err != nil {
		return nil, err
	}
	return s.api.GetRole(ctx, id)
}

func (s *RoleService) Create(ctx context.Context, actor *domain.Session, role domain.Role) (*domain.Role, error) {
	actx, err := authorize(ctx, actor, access.ActionCreateRole)
	if err != nil {
		s.audit.record(ctx, actor, string(access.ActionCreateRole), "role", 0, err)
		return nil, err
	}
	role.Code = domain.NormalizeRoleCode(role.Code)
	created, err := s.api.CreateRole(actx, role)
	var id int64
	if created != nil {
		id = created.ID
	}
	s.audit.record(ctx, actor, string(access.ActionCreateRole), "role", id, err)
	return created, err
}

func (s *RoleService) Update(ctx context.Context, actor *domain.Session, id int64, role domain.Role) (*domain.Role, error) {
	actx, err := authorize(ctx, actor, access.ActionUpdateRole)
	if err != nil {
		s.audit.record(ctx, actor, string(access.ActionUpdateRole), "role", id, err)
		return nil, err
	}
	role.Code = domain.NormalizeRoleCode(role.Code)
	updated, err := s.api.UpdateRole(actx, id, role)
	s.audit.record(ctx, actor, string(access.ActionUpdateRole), "role", id, err)
	return updated, err
}

func (s *RoleService) Delete(ctx context.Context, actor *domain.Session, id int64) error {
	actx, err := authorize(ctx, actor, access.ActionDeleteRole)
	if err != nil {
		s.audit.record(ctx, actor, string(access.ActionDeleteRole), "role", id, err)
		return err
	}
	err = s.api.DeleteRole(actx, id)
	s.audit.record(ctx, actor, string(access.ActionDeleteRole), "role", id, err)
	return err
}
