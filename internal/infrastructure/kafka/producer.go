package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/infrastructure/logger"
)

// Producer writes order events to a topic named after the event type, keyed
// by order id so every event of one order lands on the same partition.
type Producer struct {
	client *kgo.Client
	logger *logger.Logger
}

const pingTimeout = 5 * time.Second

func NewProducer(brokers []string, logger *logger.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach kafka brokers: %w", err)
	}

	logger.Info("Connected to Kafka", "brokers", brokers)
	return &Producer{client: client, logger: logger}, nil
}

func (p *Producer) PublishOrderEvent(ctx context.Context, event entities.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	record := &kgo.Record{
		Topic: event.Type,
		Key:   []byte(event.OrderID),
		Value: data,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce %s: %w", event.Type, err)
	}

	p.logger.Info("Produced order event", "topic", event.Type, "order_id", event.OrderID)
	return nil
}

func (p *Producer) Close() {
	p.client.Close()
	p.logger.Info("Kafka client closed")
}
