package handler

import (
	"context"
	"errors"
	"testing"

	"bookstore-service/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func checkStatus(t *testing.T, h *HealthHandler) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := h.health.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	return resp.Status
}

func TestHealthHandler_Refresh(t *testing.T) {
	store := new(MockPinger)
	store.On("Ping", mock.Anything).Return(nil).Once()
	store.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()

	h := NewHealthHandler(store, logger.NewNop())

	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, h.Refresh(context.Background()))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, checkStatus(t, h))

	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, h.Refresh(context.Background()))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, checkStatus(t, h))

	store.AssertExpectations(t)
}

func TestHealthHandler_Shutdown(t *testing.T) {
	store := new(MockPinger)
	store.On("Ping", mock.Anything).Return(nil)

	h := NewHealthHandler(store, logger.NewNop())
	h.Refresh(context.Background())
	h.Shutdown()

	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, checkStatus(t, h))
}

func TestLoggingInterceptor(t *testing.T) {
	interceptor := loggingInterceptor(logger.NewNop())
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp)

	_, err = interceptor(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
}
