package kafka

import (
	"testing"

	"bookstore-service/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
)

func TestNewProducer_NoBrokers(t *testing.T) {
	producer, err := NewProducer(nil, logger.NewNop())
	assert.EqualError(t, err, "no kafka brokers configured")
	assert.Nil(t, producer)
}

func TestNewProducer_Unreachable(t *testing.T) {
	producer, err := NewProducer([]string{"127.0.0.1:1"}, logger.NewNop())
	assert.ErrorContains(t, err, "failed to reach kafka brokers")
	assert.Nil(t, producer)
}
