package memory

import (
	"context"
	"testing"
	"time"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/domain/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepositoryMemory_TransitionStatus(t *testing.T) {
	repo := NewOrderRepositoryMemory()
	ctx := context.Background()

	order := &entities.Order{UserID: "u1", Status: entities.StatusPending, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, order))
	require.NotEmpty(t, order.OrderID)

	require.NoError(t, repo.TransitionStatus(ctx, order.OrderID, entities.StatusPending, entities.StatusCancelled))

	err := repo.TransitionStatus(ctx, order.OrderID, entities.StatusPending, entities.StatusCancelled)
	assert.ErrorIs(t, err, repositories.ErrStatusConflict)

	err = repo.TransitionStatus(ctx, "missing", entities.StatusPending, entities.StatusCancelled)
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)

	stored, err := repo.GetByID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCancelled, stored.Status)
}

func TestOrderRepositoryMemory_ListByUserNewestFirst(t *testing.T) {
	repo := NewOrderRepositoryMemory()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &entities.Order{OrderID: "o1", UserID: "u1", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &entities.Order{OrderID: "o2", UserID: "u1", CreatedAt: now.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &entities.Order{OrderID: "o3", UserID: "u2", CreatedAt: now}))

	orders, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].OrderID)
	assert.Equal(t, "o1", orders[1].OrderID)

	all, total, err := repo.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 1)

	all, _, err = repo.List(ctx, -8, 10)
	require.NoError(t, err)
	assert.Empty(t, all)

	err = repo.Create(ctx, &entities.Order{OrderID: "o1"})
	assert.ErrorIs(t, err, repositories.ErrOrderAlreadyExists)
}
