package repositories

import (
	"context"

	"bookstore-service/internal/domain/entities"
)

type BookRepository interface {
	Create(ctx context.Context, book *entities.Book) error
	GetByID(ctx context.Context, bookID string) (*entities.Book, error)
	GetByIDs(ctx context.Context, bookIDs []string) (map[string]*entities.Book, error)
	List(ctx context.Context, filter entities.BookFilter) ([]*entities.Book, int64, error)
	Update(ctx context.Context, bookID string, update entities.BookUpdate) (*entities.Book, error)
	Delete(ctx context.Context, bookID string) error

	// DecrementStock removes qty units only if at least qty are available.
	// It returns ErrInsufficientStock when the guard fails.
	DecrementStock(ctx context.Context, bookID string, qty int) error
	IncrementStock(ctx context.Context, bookID string, qty int) error
}
