package ports

import (
	"context"

	"github.com/taskmanagement/console/internal/core/domain"
)

type accessTokenKey struct{}

// WithAccessToken attaches the session's API token to ctx so remote calls
// made with it are authorised as that session.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessToken returns the token attached by WithAccessToken, if any.
func AccessToken(ctx context.Context) string {
	tok, _ := ctx.Value(accessTokenKey{}).(string)
	return tok
}

// Credentials are what the login form submits.
type Credentials struct {
	Username string
	Password string
}

// LoginResult is the remote API's answer to a successful credential check.
type LoginResult struct {
	AccessToken string
	User        domain.UserProfile
}

// AuthGateway checks credentials against the remote API.
type AuthGateway interface {
	// Login returns domain.ErrAuthentication when the credentials are rejected.
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
	Logout(ctx context.Context, accessToken string) error
}

// TaskAPI is the remote tasks resource. Every method fails with an error
// wrapping one of domain.ErrNotFound, ErrValidation, ErrUnauthorized,
// ErrServer or ErrNetwork.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListTasksByAssignee(ctx context.Context, assigneeID int64) ([]domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, task domain.Task) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// UserAPI is the remote security/users resource and its role relationship.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]domain.UserProfile, error)
	GetUser(ctx context.Context, id int64) (*domain.UserProfile, error)
	CreateUser(ctx context.Context, user domain.NewUser) (*domain.UserProfile, error)
	UpdateUser(ctx context.Context, id int64, user domain.UserProfile) (*domain.UserProfile, error)
	DeleteUser(ctx context.Context, id int64) error
	AddRolesToUser(ctx context.Context, userID int64, roleIDs []int64) (*domain.UserProfile, error)
	RemoveRolesFromUser(ctx context.Context, userID int64, roleIDs []int64) (*domain.UserProfile, error)
}

// RoleAPI is the remote security/roles resource.
type RoleAPI interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
	GetRole(ctx context.Context, id int64) (*domain.Role, error)
	CreateRole(ctx context.Context, role domain.Role) (*domain.Role, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.Role, error)
	DeleteRole(ctx context.Context, id int64) error
}
