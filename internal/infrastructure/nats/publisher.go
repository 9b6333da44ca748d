package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/infrastructure/logger"

	"github.com/nats-io/nats.go"
)

type NatsPublisher struct {
	nc     *nats.Conn
	logger *logger.Logger
}

func NewNatsPublisher(url string, logger *logger.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("Bookstore Service"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("Connected to NATS", "url", url)
	return &NatsPublisher{nc: nc, logger: logger}, nil
}

// PublishOrderEvent publishes on the subject named by the event type and
// retries a few times before giving up.
func (p *NatsPublisher) PublishOrderEvent(ctx context.Context, event entities.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	for i := 0; i < 3; i++ {
		select {
		case <-ctx.Done():
			p.logger.Warn("Context cancelled while publishing to NATS", "subject", event.Type)
			return ctx.Err()
		default:
		}

		if err := p.nc.Publish(event.Type, data); err != nil {
			p.logger.Warn("Failed to publish to NATS", "attempt", i+1, "error", err)
			time.Sleep(time.Second)
			continue
		}

		if err := p.nc.FlushTimeout(2 * time.Second); err != nil {
			p.logger.Warn("Failed to flush NATS connection", "error", err)
			continue
		}

		p.logger.Info("Published order event", "subject", event.Type, "order_id", event.OrderID)
		return nil
	}

	p.logger.Error("Failed to publish event to NATS after retries", "subject", event.Type, "order_id", event.OrderID)
	return fmt.Errorf("failed to publish event after retries")
}

func (p *NatsPublisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
		p.logger.Info("NATS connection closed")
	}
}
