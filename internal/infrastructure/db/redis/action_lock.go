package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskmanagement/console/internal/core/ports"
)

const defaultLockTTL = 30 * time.Second

// ActionLock marks a mutating action as in flight.
// Key format: inflight:<session_id>:<method>:<path>
type ActionLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewActionLock creates an ActionLock. The TTL bounds how long a crashed
// request can keep its key held.
func NewActionLock(client *redis.Client, ttl time.Duration) ports.ActionLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &ActionLock{client: client, ttl: ttl}
}

func (l *ActionLock) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(key), "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("inflight acquire: %w", err)
	}
	return ok, nil
}

func (l *ActionLock) Release(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

func (l *ActionLock) key(key string) string {
	return "inflight:" + key
}
