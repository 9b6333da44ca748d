package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var lower, upper, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return lower && upper && digit
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})
	return v
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// bind decodes the JSON body into req, trims it and validates it. On failure the
// response is already written and false is returned.
func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return false
	}

	if n, ok := req.(interface{ normalize() }); ok {
		n.normalize()
	}

	if err := h.validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			h.respondError(c, err)
			return false
		}

		fields := make([]FieldError, 0, len(vErrs))
		for _, vErr := range vErrs {
			fields = append(fields, FieldError{
				Field:   fieldPath(vErr),
				Message: fieldMessage(vErr),
			})
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"errors":  fields,
		})
		return false
	}
	return true
}

// fieldPath drops the root struct name: "CreateOrderRequest.items[0].quantity"
// becomes "items[0].quantity".
func fieldPath(vErr validator.FieldError) string {
	ns := vErr.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return vErr.Field()
}

func fieldMessage(vErr validator.FieldError) string {
	field := vErr.Field()
	kind := vErr.Kind()
	if kind == reflect.Ptr {
		kind = vErr.Type().Elem().Kind()
	}

	switch vErr.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if kind == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, vErr.Param())
		}
		if kind == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s items", field, vErr.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, vErr.Param())
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, vErr.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, vErr.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, vErr.Param())
	case "email":
		return "Please provide a valid email"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(vErr.Param(), " ", ", "))
	case "username":
		return "Username can only contain letters, numbers, and underscores"
	case "password":
		return "Password must contain at least one lowercase letter, one uppercase letter, and one number"
	case "isodate":
		return field + " must be a valid date"
	default:
		return field + " is invalid"
	}
}
