package usecase

import (
	"context"
	"testing"
	"time"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/infrastructure/auth"
	"bookstore-service/internal/infrastructure/logger"
	"bookstore-service/internal/infrastructure/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUseCase() (*AuthUseCase, *memory.UserRepositoryMemory) {
	users := memory.NewUserRepositoryMemory()
	useCase := NewAuthUseCase(
		users,
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.NewTokenManager("test-secret", time.Hour),
		logger.NewNop(),
	)
	return useCase, users
}

func TestAuthUseCase_Register(t *testing.T) {
	useCase, users := newAuthUseCase()
	ctx := context.Background()

	session, err := useCase.Register(ctx, RegisterInput{
		Username: "reader",
		Email:    "  Reader@Example.COM ",
		Password: "Secret1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.User.ID)
	assert.Equal(t, "reader@example.com", session.User.Email)
	assert.Equal(t, entities.RoleUser, session.User.Role)

	stored, err := users.GetByID(ctx, session.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Secret1", stored.PasswordHash)

	user, err := useCase.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, user.ID)
}

func TestAuthUseCase_Register_Duplicate(t *testing.T) {
	useCase, _ := newAuthUseCase()
	ctx := context.Background()

	_, err := useCase.Register(ctx, RegisterInput{Username: "reader", Email: "reader@example.com", Password: "Secret1"})
	require.NoError(t, err)

	_, err = useCase.Register(ctx, RegisterInput{Username: "other", Email: "READER@example.com", Password: "Secret1"})
	assert.Equal(t, ErrUserExists, err)

	_, err = useCase.Register(ctx, RegisterInput{Username: "reader", Email: "new@example.com", Password: "Secret1"})
	assert.Equal(t, ErrUserExists, err)
}

func TestAuthUseCase_Login(t *testing.T) {
	useCase, _ := newAuthUseCase()
	ctx := context.Background()

	_, err := useCase.Register(ctx, RegisterInput{Username: "reader", Email: "reader@example.com", Password: "Secret1"})
	require.NoError(t, err)

	session, err := useCase.Login(ctx, "Reader@example.com", "Secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "reader", session.User.Username)

	_, err = useCase.Login(ctx, "reader@example.com", "wrong")
	assert.Equal(t, ErrUnauthorized, err)

	_, err = useCase.Login(ctx, "nobody@example.com", "Secret1")
	assert.Equal(t, ErrUnauthorized, err)
}

func TestAuthUseCase_Authenticate_Rejects(t *testing.T) {
	useCase, _ := newAuthUseCase()
	ctx := context.Background()

	_, err := useCase.Authenticate(ctx, "not-a-token")
	assert.Equal(t, ErrUnauthorized, err)

	orphan, err := auth.NewTokenManager("test-secret", time.Hour).Issue("deleted-user")
	require.NoError(t, err)
	_, err = useCase.Authenticate(ctx, orphan)
	assert.Equal(t, ErrUnauthorized, err)

	foreign, err := auth.NewTokenManager("other-secret", time.Hour).Issue("deleted-user")
	require.NoError(t, err)
	_, err = useCase.Authenticate(ctx, foreign)
	assert.Equal(t, ErrUnauthorized, err)
}

func TestAuthUseCase_UpdateProfile(t *testing.T) {
	useCase, _ := newAuthUseCase()
	ctx := context.Background()

	first, err := useCase.Register(ctx, RegisterInput{Username: "reader", Email: "reader@example.com", Password: "Secret1"})
	require.NoError(t, err)
	_, err = useCase.Register(ctx, RegisterInput{Username: "writer", Email: "writer@example.com", Password: "Secret1"})
	require.NoError(t, err)

	phone := "555-0100"
	email := "Fresh@Example.com"
	updated, err := useCase.UpdateProfile(ctx, first.User.ID, entities.UserUpdate{Email: &email, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "fresh@example.com", updated.Email)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "reader", updated.Username)

	same := "reader"
	_, err = useCase.UpdateProfile(ctx, first.User.ID, entities.UserUpdate{Username: &same})
	assert.NoError(t, err)

	taken := "writer"
	_, err = useCase.UpdateProfile(ctx, first.User.ID, entities.UserUpdate{Username: &taken})
	assert.Equal(t, ErrUserExists, err)

	_, err = useCase.UpdateProfile(ctx, "missing", entities.UserUpdate{Phone: &phone})
	assert.Equal(t, ErrUserNotFound, err)

	profile, err := useCase.Profile(ctx, first.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh@example.com", profile.Email)
}
