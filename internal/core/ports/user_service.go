package ports

import (
	"context"

	"github.com/taskmanagement/console/internal/core/domain"
)

type UserService interface {
	List(ctx context.Context, actor *domain.Session) ([]domain.UserProfile, error)
	Get(ctx context.Context, actor *domain.Session, id int64) (*domain.UserProfile, error)
	Create(ctx context.Context, actor *domain.Session, user domain.NewUser) (*domain.UserProfile, error)
	Update(ctx context.Context, actor *domain.Session, id int64, user domain.UserProfile) (*domain.UserProfile, error)
	Delete(ctx context.Context, actor *domain.Session, id int64) error
	AddRoles(ctx context.Context, actor *domain.Session, userID int64, roleIDs []int64) (*domain.UserProfile, error)
	RemoveRoles(ctx context.Context, actor *domain.Session, userID int64, roleIDs []int64) (*domain.UserProfile, error)
}
