package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/domain/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBook(t *testing.T, repo *BookRepositoryMemory, book entities.Book) *entities.Book {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &book))
	return &book
}

func TestBookRepositoryMemory_List_CategoryAndSearch(t *testing.T) {
	repo := NewBookRepositoryMemory()
	now := time.Now()

	seedBook(t, repo, entities.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "1111111111", Category: "Fiction", CreatedAt: now})
	seedBook(t, repo, entities.Book{Title: "Children of Dune", Author: "Frank Herbert", ISBN: "2222222222", Category: "Fiction", CreatedAt: now.Add(time.Second)})
	seedBook(t, repo, entities.Book{Title: "Dune: The Science", Author: "Someone", ISBN: "3333333333", Category: "Science", CreatedAt: now})
	seedBook(t, repo, entities.Book{Title: "Emma", Author: "Jane Austen", ISBN: "4444444444", Category: "Fiction", CreatedAt: now})

	books, total, err := repo.List(context.Background(), entities.BookFilter{Category: "Fiction", Search: "DUNE", Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.EqualValues(t, 2, total)
	require.Len(t, books, 2)
	assert.Equal(t, "Children of Dune", books[0].Title)
	assert.Equal(t, "Dune", books[1].Title)
}

func TestBookRepositoryMemory_List_Pagination(t *testing.T) {
	repo := NewBookRepositoryMemory()
	now := time.Now()
	for i, isbn := range []string{"1000000001", "1000000002", "1000000003"} {
		seedBook(t, repo, entities.Book{Title: isbn, ISBN: isbn, Category: "C", CreatedAt: now.Add(time.Duration(i) * time.Second)})
	}

	books, total, err := repo.List(context.Background(), entities.BookFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, books, 1)
	assert.Equal(t, "1000000001", books[0].Title)

	books, _, err = repo.List(context.Background(), entities.BookFilter{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookRepositoryMemory_DuplicateISBN(t *testing.T) {
	repo := NewBookRepositoryMemory()
	seedBook(t, repo, entities.Book{Title: "A", ISBN: "1234567890"})

	err := repo.Create(context.Background(), &entities.Book{Title: "B", ISBN: "1234567890"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)
}

func TestBookRepositoryMemory_DecrementStock(t *testing.T) {
	repo := NewBookRepositoryMemory()
	book := seedBook(t, repo, entities.Book{Title: "X", ISBN: "X000000000", Stock: 5})
	ctx := context.Background()

	require.NoError(t, repo.DecrementStock(ctx, book.ID, 3))
	assert.ErrorIs(t, repo.DecrementStock(ctx, book.ID, 3), repositories.ErrInsufficientStock)
	assert.ErrorIs(t, repo.DecrementStock(ctx, "missing", 1), repositories.ErrBookNotFound)

	stored, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Stock)
}

func TestBookRepositoryMemory_DecrementStock_Concurrent(t *testing.T) {
	repo := NewBookRepositoryMemory()
	book := seedBook(t, repo, entities.Book{Title: "X", ISBN: "X000000000", Stock: 10})
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.DecrementStock(ctx, book.ID, 3); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	stored, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 1, stored.Stock)
}

func TestBookRepositoryMemory_UpdateAndDelete(t *testing.T) {
	repo := NewBookRepositoryMemory()
	book := seedBook(t, repo, entities.Book{Title: "Old", ISBN: "1234567890", Price: 5})
	ctx := context.Background()

	title := "New"
	updated, err := repo.Update(ctx, book.ID, entities.BookUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, 5.0, updated.Price)

	_, err = repo.Update(ctx, "missing", entities.BookUpdate{Title: &title})
	assert.ErrorIs(t, err, repositories.ErrBookNotFound)

	require.NoError(t, repo.Delete(ctx, book.ID))
	assert.ErrorIs(t, repo.Delete(ctx, book.ID), repositories.ErrBookNotFound)
}
