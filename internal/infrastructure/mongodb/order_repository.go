package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/domain/repositories"
	"bookstore-service/internal/infrastructure/logger"
)

type OrderRepositoryMongo struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewOrderRepositoryMongo(collection *mongo.Collection, logger *logger.Logger) (*OrderRepositoryMongo, error) {
	err := createIndexes(collection,
		mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: -1}}},
	)
	if err != nil {
		return nil, err
	}

	return &OrderRepositoryMongo{
		collection: collection,
		logger:     logger,
	}, nil
}

func (r *OrderRepositoryMongo) Create(ctx context.Context, order *entities.Order) error {
	doc := toOrderDocument(order)
	doc.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrOrderAlreadyExists
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	order.OrderID = doc.ID.Hex()
	return nil
}

func (r *OrderRepositoryMongo) GetByID(ctx context.Context, orderID string) (*entities.Order, error) {
	oid, ok := objectID(orderID)
	if !ok {
		return nil, repositories.ErrOrderNotFound
	}

	var doc OrderDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return toOrderEntity(&doc), nil
}

func (r *OrderRepositoryMongo) ListByUser(ctx context.Context, userID string) ([]*entities.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"user_id": userID}, opts)
}

func (r *OrderRepositoryMongo) List(ctx context.Context, skip, limit int) ([]*entities.Order, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	orders, err := r.find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return orders, total, nil
}

func (r *OrderRepositoryMongo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entities.Order, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	var docs []OrderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]*entities.Order, len(docs))
	for i := range docs {
		orders[i] = toOrderEntity(&docs[i])
	}
	return orders, nil
}

func (r *OrderRepositoryMongo) TransitionStatus(ctx context.Context, orderID string, from, to entities.OrderStatus) error {
	oid, ok := objectID(orderID)
	if !ok {
		return repositories.ErrOrderNotFound
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if result.MatchedCount == 0 {
		n, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("failed to count orders: %w", err)
		}
		if n == 0 {
			return repositories.ErrOrderNotFound
		}
		return repositories.ErrStatusConflict
	}

	r.logger.Info("Order status updated",
		"order_id", orderID,
		"from", from,
		"to", to)

	return nil
}

func (r *OrderRepositoryMongo) UpdatePaymentStatus(ctx context.Context, orderID string, status entities.PaymentStatus) error {
	oid, ok := objectID(orderID)
	if !ok {
		return repositories.ErrOrderNotFound
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"payment_status": string(status), "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if result.MatchedCount == 0 {
		return repositories.ErrOrderNotFound
	}

	if result.ModifiedCount == 0 {
		r.logger.Info("Payment status already set to requested value",
			"order_id", orderID,
			"payment_status", status)
	}

	return nil
}
