package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/domain/repositories"

	"github.com/google/uuid"
)

type UserRepositoryMemory struct {
	mu    sync.RWMutex
	users map[string]*entities.User
}

func NewUserRepositoryMemory() *UserRepositoryMemory {
	return &UserRepositoryMemory{
		users: make(map[string]*entities.User),
	}
}

func (r *UserRepositoryMemory) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(user.Username, user.Email, "") {
		return repositories.ErrDuplicateKey
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	userCopy := *user
	r.users[user.ID] = &userCopy
	return nil
}

func (r *UserRepositoryMemory) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[userID]
	if !exists {
		return nil, repositories.ErrUserNotFound
	}

	userCopy := *user
	return &userCopy, nil
}

func (r *UserRepositoryMemory) GetByIDs(ctx context.Context, userIDs []string) (map[string]*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*entities.User, len(userIDs))
	for _, id := range userIDs {
		if user, exists := r.users[id]; exists {
			userCopy := *user
			out[id] = &userCopy
		}
	}
	return out, nil
}

func (r *UserRepositoryMemory) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			userCopy := *user
			return &userCopy, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *UserRepositoryMemory) ExistsByUsernameOrEmail(ctx context.Context, username, email, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.taken(username, email, excludeID), nil
}

func (r *UserRepositoryMemory) Update(ctx context.Context, userID string, update entities.UserUpdate) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[userID]
	if !exists {
		return nil, repositories.ErrUserNotFound
	}

	username, email := "", ""
	if update.Username != nil {
		username = *update.Username
	}
	if update.Email != nil {
		email = *update.Email
	}
	if r.taken(username, email, userID) {
		return nil, repositories.ErrDuplicateKey
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	user.UpdatedAt = time.Now()

	userCopy := *user
	return &userCopy, nil
}

func (r *UserRepositoryMemory) taken(username, email, exceptID string) bool {
	for id, user := range r.users {
		if id == exceptID {
			continue
		}
		if username != "" && user.Username == username {
			return true
		}
		if email != "" && strings.EqualFold(user.Email, email) {
			return true
		}
	}
	return false
}
