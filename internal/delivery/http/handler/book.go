package handler

import (
	"net/http"
	"strconv"

	"bookstore-service/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListBooks(c *gin.Context) {
	filter := entities.BookFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}

	page, err := h.books.ListBooks(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	books := page.Books
	if books == nil {
		books = []*entities.Book{}
	}
	c.JSON(http.StatusOK, BookListResponse{
		Books:       books,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		Total:       page.Total,
	})
}

func (h *Handler) GetBook(c *gin.Context) {
	book, err := h.books.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *Handler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !h.bind(c, &req) {
		return
	}

	book, err := h.books.CreateBook(c.Request.Context(), req.toBook())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h *Handler) UpdateBook(c *gin.Context) {
	var req UpdateBookRequest
	if !h.bind(c, &req) {
		return
	}

	book, err := h.books.UpdateBook(c.Request.Context(), c.Param("id"), req.toUpdate())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c *gin.Context) {
	if err := h.books.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

// queryInt returns 0 for a missing or malformed value so the use case
// falls back to its default.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
