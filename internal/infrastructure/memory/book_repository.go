package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/domain/repositories"

	"github.com/google/uuid"
)

// BookRepositoryMemory keeps books in a map. Stock changes happen under the
// write lock so the check and the decrement are a single step.
type BookRepositoryMemory struct {
	mu    sync.RWMutex
	books map[string]*entities.Book
}

func NewBookRepositoryMemory() *BookRepositoryMemory {
	return &BookRepositoryMemory{
		books: make(map[string]*entities.Book),
	}
}

func (r *BookRepositoryMemory) Create(ctx context.Context, book *entities.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isbnTaken(book.ISBN, "") {
		return repositories.ErrDuplicateKey
	}
	if book.ID == "" {
		book.ID = uuid.NewString()
	}

	bookCopy := *book
	r.books[book.ID] = &bookCopy
	return nil
}

func (r *BookRepositoryMemory) GetByID(ctx context.Context, bookID string) (*entities.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, exists := r.books[bookID]
	if !exists {
		return nil, repositories.ErrBookNotFound
	}

	bookCopy := *book
	return &bookCopy, nil
}

func (r *BookRepositoryMemory) GetByIDs(ctx context.Context, bookIDs []string) (map[string]*entities.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*entities.Book, len(bookIDs))
	for _, id := range bookIDs {
		if book, exists := r.books[id]; exists {
			bookCopy := *book
			out[id] = &bookCopy
		}
	}
	return out, nil
}

func (r *BookRepositoryMemory) List(ctx context.Context, filter entities.BookFilter) ([]*entities.Book, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var matched []*entities.Book
	for _, book := range r.books {
		if filter.Category != "" && book.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(book.Title), search) &&
			!strings.Contains(strings.ToLower(book.Author), search) {
			continue
		}
		bookCopy := *book
		matched = append(matched, &bookCopy)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return page(matched, filter.Skip(), filter.Limit), int64(len(matched)), nil
}

func (r *BookRepositoryMemory) Update(ctx context.Context, bookID string, update entities.BookUpdate) (*entities.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, exists := r.books[bookID]
	if !exists {
		return nil, repositories.ErrBookNotFound
	}
	if update.ISBN != nil && r.isbnTaken(*update.ISBN, bookID) {
		return nil, repositories.ErrDuplicateKey
	}

	update.Apply(book)
	book.UpdatedAt = time.Now()

	bookCopy := *book
	return &bookCopy, nil
}

func (r *BookRepositoryMemory) Delete(ctx context.Context, bookID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.books[bookID]; !exists {
		return repositories.ErrBookNotFound
	}
	delete(r.books, bookID)
	return nil
}

func (r *BookRepositoryMemory) DecrementStock(ctx context.Context, bookID string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, exists := r.books[bookID]
	if !exists {
		return repositories.ErrBookNotFound
	}
	if book.Stock < qty {
		return repositories.ErrInsufficientStock
	}

	book.Stock -= qty
	book.UpdatedAt = time.Now()
	return nil
}

func (r *BookRepositoryMemory) IncrementStock(ctx context.Context, bookID string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, exists := r.books[bookID]
	if !exists {
		return repositories.ErrBookNotFound
	}

	book.Stock += qty
	book.UpdatedAt = time.Now()
	return nil
}

func (r *BookRepositoryMemory) isbnTaken(isbn, exceptID string) bool {
	for id, book := range r.books {
		if id != exceptID && book.ISBN == isbn {
			return true
		}
	}
	return false
}
