package repositories

import (
	"context"

	"bookstore-service/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, userID string) (*entities.User, error)
	GetByIDs(ctx context.Context, userIDs []string) (map[string]*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// ExistsByUsernameOrEmail ignores the user with excludeID, if any.
	ExistsByUsernameOrEmail(ctx context.Context, username, email, excludeID string) (bool, error)
	Update(ctx context.Context, userID string, update entities.UserUpdate) (*entities.User, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	List(ctx context.Context) ([]*entities.Task, error)
}
