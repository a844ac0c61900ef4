package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string              `json:"access_token"`
	LoggedInUser *domain.UserProfile `json:"loggedInUser"`
}

// Login exchanges credentials for an access token. Any client-side rejection
// of the credentials is reported as domain.ErrAuthentication.
func (c *Client) Login(ctx context.Context, creds ports.Credentials) (*ports.LoginResult, error) {
	body, err := c.do(ctx, http.MethodPost, "auth", "/auth/login", loginRequest{
		Username: creds.Username,
		Password: creds.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
		}
		return nil, err
	}

	var out loginResponse
	if ok, err := decode(body, &out); err != nil {
		return nil, err
	} else if !ok || out.AccessToken == "" {
		return nil, fmt.Errorf("%w: login response without access token", domain.ErrServer)
	}

	result := &ports.LoginResult{AccessToken: out.AccessToken}
	if out.LoggedInUser != nil {
		result.User = *out.LoggedInUser
	}
	return result, nil
}

func (c *Client) Logout(ctx context.Context, accessToken string) error {
	_, err := c.do(ports.WithAccessToken(ctx, accessToken), http.MethodPost, "auth", "/auth/logout", nil)
	return err
}
