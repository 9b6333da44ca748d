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

type BookUseCase struct {
	bookRepo repositories.BookRepository
	logger   *logger.Logger
	now      func() time.Time
}

func NewBookUseCase(bookRepo repositories.BookRepository, logger *logger.Logger) *BookUseCase {
	return &BookUseCase{
		bookRepo: bookRepo,
		logger:   logger,
		now:      time.Now,
	}
}

type BookPage struct {
	Books       []*entities.Book
	TotalPages  int
	CurrentPage int
	Total       int64
}

func (uc *BookUseCase) ListBooks(ctx context.Context, filter entities.BookFilter) (*BookPage, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)

	books, total, err := uc.bookRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return &BookPage{
		Books:       books,
		TotalPages:  totalPages(total, filter.Limit),
		CurrentPage: filter.Page,
		Total:       total,
	}, nil
}

func (uc *BookUseCase) GetBook(ctx context.Context, bookID string) (*entities.Book, error) {
	book, err := uc.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repositories.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (uc *BookUseCase) CreateBook(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	if book.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if book.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	now := uc.now()
	book.CreatedAt = now
	book.UpdatedAt = now

	if err := uc.bookRepo.Create(ctx, book); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateISBN
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	uc.logger.Info("Book created", "book_id", book.ID, "isbn", book.ISBN)
	return book, nil
}

func (uc *BookUseCase) UpdateBook(ctx context.Context, bookID string, update entities.BookUpdate) (*entities.Book, error) {
	if update.Price != nil && *update.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if update.Stock != nil && *update.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	book, err := uc.bookRepo.Update(ctx, bookID, update)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrBookNotFound):
			return nil, ErrBookNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrDuplicateISBN
		default:
			return nil, fmt.Errorf("failed to update book: %w", err)
		}
	}

	uc.logger.Info("Book updated", "book_id", book.ID)
	return book, nil
}

func (uc *BookUseCase) DeleteBook(ctx context.Context, bookID string) error {
	if err := uc.bookRepo.Delete(ctx, bookID); err != nil {
		if errors.Is(err, repositories.ErrBookNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	uc.logger.Info("Book deleted", "book_id", bookID)
	return nil
}
