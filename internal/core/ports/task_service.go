package ports

import (
	"context"

	"github.com/taskmanagement/console/internal/core/domain"
)

// TaskFilter narrows the task list. Empty fields match everything.
type TaskFilter struct {
	Status   string
	Priority string
}

// TaskService exposes task operations on behalf of a session. Each method
// re-checks the session's permission and returns domain.ErrForbidden without
// contacting the API when it is missing.
type TaskService interface {
	List(ctx context.Context, actor *domain.Session, filter TaskFilter) ([]domain.Task, error)
	ListMine(ctx context.Context, actor *domain.Session) ([]domain.Task, error)
	Get(ctx context.Context, actor *domain.Session, id int64) (*domain.Task, error)
	Create(ctx context.Context, actor *domain.Session, task domain.Task) (*domain.Task, error)
	Update(ctx context.Context, actor *domain.Session, id int64, task domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, actor *domain.Session, id int64) error
}
