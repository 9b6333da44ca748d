package handler

import (
	"errors"
	"net/http"
	"unicode"
	"unicode/utf8"

	"bookstore-service/internal/delivery/http/middleware"
	"bookstore-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Something went wrong!"

func mapError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrBookNotFound),
		errors.Is(err, usecase.ErrOrderNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden),
		errors.Is(err, usecase.ErrCannotCancel):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrEmptyOrder),
		errors.Is(err, usecase.ErrInvalidItem),
		errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidPaymentStatus),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrAlreadyCancelled),
		errors.Is(err, usecase.ErrInsufficientStock),
		errors.Is(err, usecase.ErrUserExists),
		errors.Is(err, usecase.ErrDuplicateISBN):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {message} for err. Internal errors are logged and
// replaced by a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			"trace_id", middleware.GetTraceID(c),
			"path", c.Request.URL.Path,
			"error", err)
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, gin.H{"message": internalErrorMessage})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"message": capitalize(err.Error())})
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
