package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"bookstore-service/internal/infrastructure/logger"
)

const (
	booksCollection  = "books"
	ordersCollection = "orders"
	usersCollection  = "users"
	tasksCollection  = "tasks"
)

// Client owns the driver connection shared by all repositories.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logger.Logger
}

func NewClient(uri, dbName string, logger *logger.Logger) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func (c *Client) Books() (*BookRepositoryMongo, error) {
	return NewBookRepositoryMongo(c.db.Collection(booksCollection), c.logger)
}

func (c *Client) Orders() (*OrderRepositoryMongo, error) {
	return NewOrderRepositoryMongo(c.db.Collection(ordersCollection), c.logger)
}

func (c *Client) Users() (*UserRepositoryMongo, error) {
	return NewUserRepositoryMongo(c.db.Collection(usersCollection), c.logger)
}

func (c *Client) Tasks() *TaskRepositoryMongo {
	return NewTaskRepositoryMongo(c.db.Collection(tasksCollection))
}

func createIndexes(collection *mongo.Collection, models ...mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", collection.Name(), err)
	}
	return nil
}

// objectID parses a hex id. A malformed id can never match a stored
// document, so callers treat the error as "not found".
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := objectID(id); ok {
			out = append(out, oid)
		}
	}
	return out
}
