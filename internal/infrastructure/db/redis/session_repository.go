package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

const sessionPrefix = "session:"

// SessionRepository stores sessions as JSON under session:<id> with a TTL.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) ports.SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Save(ctx context.Context, id string, session *domain.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionPrefix+id, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Find(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := r.client.Get(ctx, sessionPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionUnavailable, err)
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		// unreadable payloads are treated as absent and dropped
		_ = r.client.Del(ctx, sessionPrefix+id).Err()
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
