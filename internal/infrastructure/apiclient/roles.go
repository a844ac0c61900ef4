package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taskmanagement/console/internal/core/domain"
)

const rolesPath = "/security/roles"

func (c *Client) ListRoles(ctx context.Context) ([]domain.Role, error) {
	body, err := c.do(ctx, http.MethodGet, "roles", rolesPath, nil)
	if err != nil {
		return nil, err
	}
	roles := []domain.Role{}
	if _, err := decode(body, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *Client) GetRole(ctx context.Context, id int64) (*domain.Role, error) {
	return c.roleCall(ctx, http.MethodGet, fmt.Sprintf("%s/%d", rolesPath, id), nil)
}

func (c *Client) CreateRole(ctx context.Context, role domain.Role) (*domain.Role, error) {
	role.ID = 0
	return c.roleCall(ctx, http.MethodPost, rolesPath, role)
}

func (c *Client) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.Role, error) {
	role.ID = 0
	return c.roleCall(ctx, http.MethodPatch, fmt.Sprintf("%s/%d", rolesPath, id), role)
}

func (c *Client) DeleteRole(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "roles", fmt.Sprintf("%s/%d", rolesPath, id), nil)
	return err
}

func (c *Client) roleCall(ctx context.Context, method, path string, in any) (*domain.Role, error) {
	body, err := c.do(ctx, method, "roles", path, in)
	if err != nil {
		return nil, err
	}
	var role domain.Role
	ok, err := decode(body, &role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &role, nil
}
