package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/domain/repositories"
	"bookstore-service/internal/infrastructure/logger"
)

type BookRepositoryMongo struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewBookRepositoryMongo(collection *mongo.Collection, logger *logger.Logger) (*BookRepositoryMongo, error) {
	err := createIndexes(collection,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "isbn", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		mongo.IndexModel{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
	)
	if err != nil {
		return nil, err
	}

	return &BookRepositoryMongo{
		collection: collection,
		logger:     logger,
	}, nil
}

func (r *BookRepositoryMongo) Create(ctx context.Context, book *entities.Book) error {
	doc := toBookDocument(book)
	doc.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert book: %w", err)
	}

	book.ID = doc.ID.Hex()
	return nil
}

func (r *BookRepositoryMongo) GetByID(ctx context.Context, bookID string) (*entities.Book, error) {
	oid, ok := objectID(bookID)
	if !ok {
		return nil, repositories.ErrBookNotFound
	}

	var doc BookDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to find book: %w", err)
	}

	return toBookEntity(&doc), nil
}

func (r *BookRepositoryMongo) GetByIDs(ctx context.Context, bookIDs []string) (map[string]*entities.Book, error) {
	out := make(map[string]*entities.Book, len(bookIDs))
	oids := objectIDs(bookIDs)
	if len(oids) == 0 {
		return out, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find books: %w", err)
	}

	var docs []BookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}

	for i := range docs {
		book := toBookEntity(&docs[i])
		out[book.ID] = book
	}
	return out, nil
}

func (r *BookRepositoryMongo) List(ctx context.Context, filter entities.BookFilter) ([]*entities.Book, int64, error) {
	query := bookQuery(filter)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Skip())).
		SetLimit(int64(filter.Limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}

	var docs []BookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode books: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	books := make([]*entities.Book, len(docs))
	for i := range docs {
		books[i] = toBookEntity(&docs[i])
	}
	return books, total, nil
}

// bookQuery matches the category exactly and the search text as a literal,
// case-insensitive substring of title or author.
func bookQuery(filter entities.BookFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"author": pattern},
		}
	}
	return query
}

func (r *BookRepositoryMongo) Update(ctx context.Context, bookID string, update entities.BookUpdate) (*entities.Book, error) {
	oid, ok := objectID(bookID)
	if !ok {
		return nil, repositories.ErrBookNotFound
	}

	set := bookUpdateSet(update)
	set["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc BookDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrBookNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repositories.ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return toBookEntity(&doc), nil
}

func bookUpdateSet(update entities.BookUpdate) bson.M {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Author != nil {
		set["author"] = *update.Author
	}
	if update.ISBN != nil {
		set["isbn"] = *update.ISBN
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Stock != nil {
		set["stock"] = *update.Stock
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.ImageURL != nil {
		set["image_url"] = *update.ImageURL
	}
	if update.Publisher != nil {
		set["publisher"] = *update.Publisher
	}
	if update.PublishedDate != nil {
		set["published_date"] = *update.PublishedDate
	}
	return set
}

func (r *BookRepositoryMongo) Delete(ctx context.Context, bookID string) error {
	oid, ok := objectID(bookID)
	if !ok {
		return repositories.ErrBookNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if result.DeletedCount == 0 {
		return repositories.ErrBookNotFound
	}
	return nil
}

func (r *BookRepositoryMongo) DecrementStock(ctx context.Context, bookID string, qty int) error {
	oid, ok := objectID(bookID)
	if !ok {
		return repositories.ErrBookNotFound
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if result.MatchedCount == 0 {
		exists, err := r.exists(ctx, oid)
		if err != nil {
			return err
		}
		if !exists {
			return repositories.ErrBookNotFound
		}
		return repositories.ErrInsufficientStock
	}

	return nil
}

func (r *BookRepositoryMongo) IncrementStock(ctx context.Context, bookID string, qty int) error {
	oid, ok := objectID(bookID)
	if !ok {
		return repositories.ErrBookNotFound
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"stock": qty},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrBookNotFound
	}

	return nil
}

func (r *BookRepositoryMongo) exists(ctx context.Context, oid primitive.ObjectID) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count books: %w", err)
	}
	return n > 0, nil
}
