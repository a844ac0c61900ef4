package ports

import (
	"context"

	"github.com/taskmanagement/console/internal/core/domain"
)

type RoleService interface {
	List(ctx context.Context, actor *domain.Session) ([]domain.Role, error)
	Get(ctx context.Context, actor *domain.Session, id int64) (*domain.Role, error)
	Create(ctx context.Context, actor *domain.Session, role domain.Role) (*domain.Role, error)
	Update(ctx context.Context, actor *domain.Session, id int64, role domain.Role) (*domain.Role, error)
	Delete(ctx context.Context, actor *domain.Session, id int64) error
}
