package ports

import (
	"context"
	"time"

	"github.com/taskmanagement/console/internal/core/domain"
)

// SessionRepository persists sessions between requests.
type SessionRepository interface {
	Save(ctx context.Context, id string, session *domain.Session, ttl time.Duration) error
	// Find returns domain.ErrSessionNotFound for unknown or expired ids and
	// domain.ErrSessionUnavailable when the store cannot be reached.
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// ActionLock guards a mutating action against concurrent duplicate submits.
type ActionLock interface {
	// Acquire returns false when the key is already held.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
