package ports

import (
	"context"

	"github.com/taskmanagement/console/internal/core/domain"
)

// LogoutConfirmation asks the remote API to invalidate a token after the
// console has already dropped the session locally.
type LogoutConfirmation struct {
	SessionID   string
	UserID      int64
	AccessToken string
}

// LogoutQueue accepts confirmations for asynchronous delivery.
type LogoutQueue interface {
	Enqueue(confirmation LogoutConfirmation)
}

// SessionService owns the session lifecycle: login creates and persists a
// session, logout destroys it, Current hydrates it.
type SessionService interface {
	// Login returns the new session id. On failure nothing is persisted.
	Login(ctx context.Context, creds Credentials) (string, *domain.Session, error)
	// Logout removes the session locally before returning; the remote
	// confirmation happens later.
	Logout(ctx context.Context, id string) error
	Current(ctx context.Context, id string) (*domain.Session, error)
	// ReplaceRoles rewrites the stored session's roles after the logged-in
	// user's own roles changed.
	ReplaceRoles(ctx context.Context, id string, roles []domain.Role) (*domain.Session, error)
}
