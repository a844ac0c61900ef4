package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/core/access"
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

var _ ports.UserService = (*UserService)(nil)

type UserService struct {
	api    ports.UserAPI
	audit  auditor
	logger zerolog.Logger
}

func NewUserService(api ports.UserAPI, audits ports.AuditRepository, logger zerolog.Logger) *UserService {
	return &UserService{api: api, audit: newAuditor(audits, logger), logger: logger}
}

func (s *UserService) List(ctx context.Context, actor *domain.Session) ([]domain.UserProfile, error) {
	ctx, err := authorize(ctx, actor, access.ActionViewUser)
	if err != nil {
		return nil, err
	}
	return s.api.ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, actor *domain.Session, id int64) (*domain.UserProfile, error) {
	ctx, err := authorize(ctx, actor, access.ActionViewUser)
	if err != nil {
		return nil, err
	}
	return s.api.GetUser(ctx, id)
}

func (s *UserService) Create(ctx context.Context, actor *domain.Session, user domain.NewUser) (*domain.UserProfile, error) {
	actx, err := authorize(ctx, actor, access.ActionCreateUser)
	if err != nil {
		s.audit.record(ctx, actor, string(access.ActionCreateUser), "user", 0, err)
		return nil, err
	}
	user.Username = strings.TrimSpace(user.Username)
	created, err := s.api.CreateUser(actx, user)
	var id int64
	if created != nil {
		id = created.ID
	}
	s.audit.record(ctx, actor, string(access.ActionCreateUser), "user", id, err)
	return created, err
}

func (s *UserService) Update(ctx context.Context, actor *domain.Session, id int64, user domain.UserProfile) (*domain.UserProfile, error) {
	actx, err := authorize(ctx, actor, access.ActionUpdateUser)
	if err != nil {
		s.audit.record(ctx, actor, string(access.ActionUpdateUser), "user", id, err)
		return nil, err
	}
	// roles change only through the add/remove operations
	user.Roles = nil
	updated, err := s.api.UpdateUser(actx, id, user)
	s.audit.record(ctx, actor, string(access.ActionUpdateUser), "user", id, err)
	return updated, err
}

func (s *UserService) Delete(ctx context.Context, actor *domain.Session, id int64) error {
	actx, err := authorize(ctx, actor, access.ActionDeleteUser)
	if err != nil {
		s.audit.record(ctx, actor, string(access.ActionDeleteUser), "user", id, err)
		return err
	}
	err = s.api.DeleteUser(actx, id)
	s.audit.record(ctx, actor, string(access.ActionDeleteUser), "user", id, err)
	return err
}

// AddRoles grants roleIDs to a user. Roles the user already holds are skipped.
func (s *UserService) AddRoles(ctx context.Context, actor *domain.Session, userID int64, roleIDs []int64) (*domain.UserProfile, error) {
	return s.changeRoles(ctx, actor, userID, roleIDs, true)
}

// RemoveRoles revokes roleIDs from a user. Roles the user does not hold are skipped.
func (s *UserService) RemoveRoles(ctx context.Context, actor *domain.Session, userID int64, roleIDs []int64) (*domain.UserProfile, error) {
	return s.changeRoles(ctx, actor, userID, roleIDs, false)
}

func (s *UserService) changeRoles(ctx context.Context, actor *domain.Session, userID int64, roleIDs []int64, add bool) (*domain.UserProfile, error) {
	actx, err := authorize(ctx, actor, access.ActionManageUserRoles)
	if err != nil {
		s.audit.record(ctx, actor, string(access.ActionManageUserRoles), "user", userID, err)
		return nil, err
	}
	if len(roleIDs) == 0 {
		return nil, domain.NewValidationError("role_ids", "Select at least one role")
	}

	user, err := s.api.GetUser(actx, userID)
	if err != nil {
		return nil, err
	}
	applicable := make([]int64, 0, len(roleIDs))
	for _, id := range roleIDs {
		if user.HasRole(id) != add {
			applicable = append(applicable, id)
		}
	}
	if len(applicable) == 0 {
		return user, nil
	}

	var updated *domain.UserProfile
	if add {
		updated, err = s.api.AddRolesToUser(actx, userID, applicable)
	} else {
		updated, err = s.api.RemoveRolesFromUser(actx, userID, applicable)
	}
	s.audit.record(ctx, actor, string(access.ActionManageUserRoles), "user", userID, err)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// some API versions answer with an empty body
		return s.api.GetUser(actx, userID)
	}
	return updated, nil
}
