package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/infrastructure/logger"
	"bookstore-service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	TraceIDHeader = "X-Trace-Id"

	traceIDKey = "traceId"
	userKey    = "user"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

type Mid struct {
	auth   Authenticator
	logger *logger.Logger
}

func NewMid(auth Authenticator, logger *logger.Logger) *Mid {
	return &Mid{auth: auth, logger: logger}
}

// TraceID tags every request with an id, reusing the caller's X-Trace-Id
// when one is sent.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(traceIDKey, traceID)
		c.Header(TraceIDHeader, traceID)
		c.Next()
	}
}

func GetTraceID(c *gin.Context) string {
	return c.GetString(traceIDKey)
}

func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"trace_id", GetTraceID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("Request failed", fields...)
		default:
			log.Info("Request handled", fields...)
		}
	}
}

// Recovery turns a panic into a generic 500 response.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Panic recovered",
			"trace_id", GetTraceID(c),
			"path", c.Request.URL.Path,
			"panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong!"})
	})
}

// Authentication requires a valid bearer token that resolves to a stored
// user, and makes that user available through CurrentUser.
func (m *Mid) Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}

		user, err := m.auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil && !errors.Is(err, usecase.ErrUnauthorized) {
			m.logger.Error("Failed to authenticate request",
				"trace_id", GetTraceID(c),
				"error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong!"})
			return
		}
		if err != nil {
			m.logger.Warn("Authentication failed",
				"trace_id", GetTraceID(c),
				"error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// Admin must run after Authentication.
func (m *Mid) Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not authorized as admin"})
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*entities.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*entities.User)
	return user, ok && user != nil
}
