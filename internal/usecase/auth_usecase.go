package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/domain/repositories"
	"bookstore-service/internal/infrastructure/logger"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

type AuthUseCase struct {
	userRepo repositories.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   *logger.Logger
	now      func() time.Time
}

func NewAuthUseCase(userRepo repositories.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type Session struct {
	User  *entities.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)

	exists, err := uc.userRepo.ExistsByUsernameOrEmail(ctx, username, email, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := uc.now()
	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         entities.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.Info("User registered", "user_id", user.ID)
	return uc.session(user)
}

// Login fails with the same error for an unknown email and a wrong password.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !uc.hasher.Compare(user.PasswordHash, password) {
		return nil, ErrUnauthorized
	}

	return uc.session(user)
}

// Authenticate resolves a bearer token to the user it was issued for.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	userID, err := uc.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*entities.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, update entities.UserUpdate) (*entities.User, error) {
	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		update.Username = &username
	}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		update.Email = &email
	}

	if update.Username != nil || update.Email != nil {
		var username, email string
		if update.Username != nil {
			username = *update.Username
		}
		if update.Email != nil {
			email = *update.Email
		}
		exists, err := uc.userRepo.ExistsByUsernameOrEmail(ctx, username, email, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check user: %w", err)
		}
		if exists {
			return nil, ErrUserExists
		}
	}

	user, err := uc.userRepo.Update(ctx, userID, update)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrUserExists
		default:
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}
	return user, nil
}

func (uc *AuthUseCase) session(user *entities.User) (*Session, error) {
	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
