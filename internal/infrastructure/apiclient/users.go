package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taskmanagement/console/internal/core/domain"
)

const usersPath = "/security/users"

type roleIDsRequest struct {
	RoleIDs []int64 `json:"role_ids"`
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.UserProfile, error) {
	body, err := c.do(ctx, http.MethodGet, "users", usersPath, nil)
	if err != nil {
		return nil, err
	}
	users := []domain.UserProfile{}
	if _, err := decode(body, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*domain.UserProfile, error) {
	return c.userCall(ctx, http.MethodGet, fmt.Sprintf("%s/%d", usersPath, id), nil)
}

func (c *Client) CreateUser(ctx context.Context, user domain.NewUser) (*domain.UserProfile, error) {
	return c.userCall(ctx, http.MethodPost, usersPath, user)
}

func (c *Client) UpdateUser(ctx context.Context, id int64, user domain.UserProfile) (*domain.UserProfile, error) {
	user.ID = 0
	return c.userCall(ctx, http.MethodPatch, fmt.Sprintf("%s/%d", usersPath, id), user)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "users", fmt.Sprintf("%s/%d", usersPath, id), nil)
	return err
}

func (c *Client) AddRolesToUser(ctx context.Context, userID int64, roleIDs []int64) (*domain.UserProfile, error) {
	return c.userCall(ctx, http.MethodPut, fmt.Sprintf("%s/%d/add-roles-to-user", usersPath, userID), roleIDsRequest{RoleIDs: roleIDs})
}

func (c *Client) RemoveRolesFromUser(ctx context.Context, userID int64, roleIDs []int64) (*domain.UserProfile, error) {
	return c.userCall(ctx, http.MethodPut, fmt.Sprintf("%s/%d/remove-roles-from-user", usersPath, userID), roleIDsRequest{RoleIDs: roleIDs})
}

func (c *Client) userCall(ctx context.Context, method, path string, in any) (*domain.UserProfile, error) {
	body, err := c.do(ctx, method, "users", path, in)
	if err != nil {
		return nil, err
	}
	var user domain.UserProfile
	ok, err := decode(body, &user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &user, nil
}
