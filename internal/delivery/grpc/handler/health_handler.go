package handler

import (
	"context"
	"time"

	"bookstore-service/internal/infrastructure/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const ServiceName = "bookstore"

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves grpc.health.v1.Health and keeps the status of
// ServiceName in line with the store.
type HealthHandler struct {
	health *health.Server
	store  Pinger
	logger *logger.Logger
}

func NewHealthHandler(store Pinger, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		health: health.NewServer(),
		store:  store,
		logger: logger,
	}
}

func NewServer(h *HealthHandler, logger *logger.Logger) *grpc.Server {
	server := grpc.NewServer(
		grpc.UnaryInterceptor(loggingInterceptor(logger)),
	)

	grpc_health_v1.RegisterHealthServer(server, h.health)
	reflection.Register(server)
	return server
}

// Refresh pings the store once and publishes the result.
func (h *HealthHandler) Refresh(ctx context.Context) grpc_health_v1.HealthCheckResponse_ServingStatus {
	status := grpc_health_v1.HealthCheckResponse_SERVING

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.store.Ping(pingCtx); err != nil {
		h.logger.Warn("Store ping failed", "error", err)
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
	return status
}

// Watch refreshes the status every interval until ctx is done.
func (h *HealthHandler) Watch(ctx context.Context, interval time.Duration) {
	h.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Refresh(ctx)
		}
	}
}

// Shutdown marks every service NOT_SERVING so clients drain before the
// server stops.
func (h *HealthHandler) Shutdown() {
	h.health.Shutdown()
}

func loggingInterceptor(logger *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		logger.Debug("gRPC method called", "method", info.FullMethod)
		resp, err := handler(ctx, req)
		if err != nil {
			logger.Error("gRPC method failed", "method", info.FullMethod, "error", err)
		} else {
			logger.Debug("gRPC method completed", "method", info.FullMethod)
		}
		return resp, err
	}
}
