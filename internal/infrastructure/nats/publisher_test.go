package nats

import (
	"testing"

	"bookstore-service/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
)

func TestNewNatsPublisher_Unreachable(t *testing.T) {
	publisher, err := NewNatsPublisher("nats://127.0.0.1:1", logger.NewNop())
	assert.Error(t, err)
	assert.Nil(t, publisher)
}
