package app

import (
	"context"
	"fmt"
	"time"

	"bookstore-service/internal/config"
	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/domain/repositories"
	"bookstore-service/internal/infrastructure/kafka"
	"bookstore-service/internal/infrastructure/logger"
	"bookstore-service/internal/infrastructure/memory"
	"bookstore-service/internal/infrastructure/mongodb"
	"bookstore-service/internal/infrastructure/nats"
	"bookstore-service/internal/usecase"
)

type storage struct {
	books  repositories.BookRepository
	orders repositories.OrderRepository
	users  repositories.UserRepository
	tasks  repositories.TaskRepository
	pinger interface {
		Ping(ctx context.Context) error
	}
	close func()
}

func (a *App) initStorage() (*storage, error) {
	if a.cfg.Storage == config.StorageMemory {
		a.logger.Warn("Using in-memory storage, data is lost on restart")
		return &storage{
			books:  memory.NewBookRepositoryMemory(),
			orders: memory.NewOrderRepositoryMemory(),
			users:  memory.NewUserRepositoryMemory(),
			tasks:  memory.NewTaskRepositoryMemory(),
			pinger: alwaysReady{},
			close:  func() {},
		}, nil
	}

	a.logger.Info("Connecting to MongoDB", "db", a.cfg.Mongo.DB)

	client, err := mongodb.NewClient(a.cfg.Mongo.URI, a.cfg.Mongo.DB, a.logger)
	if err != nil {
		a.logger.Error("Failed to connect to MongoDB", "error", err)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	closeClient := func() {
		if err := client.Close(); err != nil {
			a.logger.Warn("Failed to close MongoDB client", "error", err)
		}
	}

	books, err := client.Books()
	if err != nil {
		closeClient()
		return nil, fmt.Errorf("failed to init books collection: %w", err)
	}
	orders, err := client.Orders()
	if err != nil {
		closeClient()
		return nil, fmt.Errorf("failed to init orders collection: %w", err)
	}
	users, err := client.Users()
	if err != nil {
		closeClient()
		return nil, fmt.Errorf("failed to init users collection: %w", err)
	}

	a.logger.Info("Connected to MongoDB successfully")
	return &storage{
		books:  books,
		orders: orders,
		users:  users,
		tasks:  client.Tasks(),
		pinger: client,
		close:  closeClient,
	}, nil
}

// initPublisher prefers NATS, then Kafka. Without either, or when the
// broker cannot be reached, events are dropped.
func (a *App) initPublisher() usecase.EventPublisher {
	switch {
	case a.cfg.NATS.URL != "":
		publisher, err := connectWithRetry(a.logger, "NATS", 3, 2*time.Second, func() (usecase.EventPublisher, error) {
			return nats.NewNatsPublisher(a.cfg.NATS.URL, a.logger)
		})
		if err != nil {
			a.logger.Warn("Failed to connect to NATS, continuing without event publishing",
				"error", err,
				"url", a.cfg.NATS.URL)
			return noopPublisher{}
		}
		a.logger.Info("Connected to NATS successfully")
		return publisher

	case len(a.cfg.Kafka.Brokers) > 0:
		publisher, err := connectWithRetry(a.logger, "Kafka", 3, 2*time.Second, func() (usecase.EventPublisher, error) {
			return kafka.NewProducer(a.cfg.Kafka.Brokers, a.logger)
		})
		if err != nil {
			a.logger.Warn("Failed to connect to Kafka, continuing without event publishing",
				"error", err,
				"brokers", a.cfg.Kafka.Brokers)
			return noopPublisher{}
		}
		a.logger.Info("Connected to Kafka successfully")
		return publisher

	default:
		a.logger.Info("No message broker configured, event publishing disabled")
		return noopPublisher{}
	}
}

func connectWithRetry(logger *logger.Logger, broker string, maxRetries int, delay time.Duration, connect func() (usecase.EventPublisher, error)) (usecase.EventPublisher, error) {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		publisher, err := connect()
		if err == nil {
			return publisher, nil
		}
		lastErr = err

		logger.Warn("Failed to connect to broker, retrying...",
			"broker", broker,
			"attempt", i+1,
			"max_retries", maxRetries,
			"error", err)

		if i < maxRetries-1 {
			time.Sleep(delay)
		}
	}

	return nil, fmt.Errorf("failed to connect to %s after %d attempts: %w", broker, maxRetries, lastErr)
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderEvent(ctx context.Context, event entities.OrderEvent) error {
	return nil
}

func (noopPublisher) Close() {}

type alwaysReady struct{}

func (alwaysReady) Ping(ctx context.Context) error {
	return nil
}
