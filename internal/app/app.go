package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore-service/internal/config"
	grpchandler "bookstore-service/internal/delivery/grpc/handler"
	httphandler "bookstore-service/internal/delivery/http/handler"
	"bookstore-service/internal/infrastructure/auth"
	"bookstore-service/internal/infrastructure/consul"
	"bookstore-service/internal/infrastructure/logger"
	"bookstore-service/internal/usecase"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
)

type App struct {
	cfg    *config.Config
	logger *logger.Logger
}

func New(cfg *config.Config) *App {
	return &App{
		cfg:    cfg,
		logger: logger.NewLogger(cfg.Log.Level, cfg.Log.Format),
	}
}

func (a *App) Run() error {
	defer a.logger.Sync()
	a.logger.Info("Starting bookstore-service", "storage", a.cfg.Storage)

	store, err := a.initStorage()
	if err != nil {
		return err
	}
	defer store.close()

	publisher := a.initPublisher()
	defer publisher.Close()

	tokens := auth.NewTokenManager(a.cfg.JWT.Secret, a.cfg.JWT.Expire)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)

	router := httphandler.API(httphandler.Deps{
		Books:   usecase.NewBookUseCase(store.books, a.logger),
		Auth:    usecase.NewAuthUseCase(store.users, hasher, tokens, a.logger),
		Orders:  usecase.NewOrderUseCase(store.orders, store.books, store.users, publisher, a.logger),
		Tasks:   usecase.NewTaskUseCase(store.tasks),
		Logger:  a.logger,
		GinMode: a.cfg.HTTP.GinMode,
	})

	httpServer := &http.Server{
		Addr:              ":" + a.cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	health := grpchandler.NewHealthHandler(store.pinger, a.logger)
	grpcServer, lis, err := a.initGRPCServer(health)
	if err != nil {
		return err
	}

	registry := a.initRegistry()
	if registry != nil {
		defer registry.Deregister()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go health.Watch(ctx, 15*time.Second)

	return a.runServersWithGracefulShutdown(httpServer, grpcServer, lis, health)
}

func (a *App) initGRPCServer(health *grpchandler.HealthHandler) (*grpc.Server, net.Listener, error) {
	grpcServer := grpchandler.NewServer(health, a.logger)

	lis, err := net.Listen("tcp", ":"+a.cfg.GRPC.Port)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to listen on port %s: %w", a.cfg.GRPC.Port, err)
	}

	return grpcServer, lis, nil
}

func (a *App) initRegistry() *consul.Registry {
	if a.cfg.Consul.Addr == "" {
		return nil
	}

	registry, err := consul.NewRegistry(a.cfg.Consul.Addr, a.logger)
	if err != nil {
		a.logger.Warn("Failed to create Consul client, skipping registration", "error", err)
		return nil
	}

	if err := registry.Register(a.cfg.Consul.ServiceName, a.cfg.Consul.ServiceHost, a.cfg.HTTP.Port); err != nil {
		a.logger.Warn("Failed to register with Consul, continuing without registration",
			"error", err,
			"addr", a.cfg.Consul.Addr)
		return nil
	}

	return registry
}

func (a *App) runServersWithGracefulShutdown(httpServer *http.Server, grpcServer *grpc.Server, lis net.Listener, health *grpchandler.HealthHandler) error {
	serverErrors := make(chan error, 2)

	go func() {
		a.logger.Info("Starting HTTP server", "port", a.cfg.HTTP.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		a.logger.Info("Starting gRPC server", "port", a.cfg.GRPC.Port)
		if err := grpcServer.Serve(lis); err != nil {
			serverErrors <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		grpcServer.Stop()
		_ = httpServer.Close()
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		a.logger.Info("Received shutdown signal, starting graceful shutdown", "signal", sig)
		health.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Shutdown)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			a.logger.Warn("HTTP server did not stop in time, closing", "error", err)
			_ = httpServer.Close()
		}

		shutdownComplete := make(chan struct{})

		go func() {
			a.logger.Info("Stopping gRPC server gracefully")
			grpcServer.GracefulStop()
			close(shutdownComplete)
		}()

		select {
		case <-shutdownComplete:
			a.logger.Info("Graceful shutdown completed")
		case <-ctx.Done():
			a.logger.Warn("Graceful shutdown timeout, forcing stop")
			grpcServer.Stop()
		}

		return nil
	}
}
