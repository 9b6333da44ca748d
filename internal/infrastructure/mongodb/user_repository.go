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

type UserRepositoryMongo struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewUserRepositoryMongo(collection *mongo.Collection, logger *logger.Logger) (*UserRepositoryMongo, error) {
	err := createIndexes(collection,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		return nil, err
	}

	return &UserRepositoryMongo{
		collection: collection,
		logger:     logger,
	}, nil
}

func (r *UserRepositoryMongo) Create(ctx context.Context, user *entities.User) error {
	doc := toUserDocument(user)
	doc.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID = doc.ID.Hex()
	return nil
}

func (r *UserRepositoryMongo) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepositoryMongo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepositoryMongo) findOne(ctx context.Context, filter bson.M) (*entities.User, error) {
	var doc UserDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return toUserEntity(&doc), nil
}

func (r *UserRepositoryMongo) GetByIDs(ctx context.Context, userIDs []string) (map[string]*entities.User, error) {
	out := make(map[string]*entities.User, len(userIDs))
	oids := objectIDs(userIDs)
	if len(oids) == 0 {
		return out, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	var docs []UserDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	for i := range docs {
		user := toUserEntity(&docs[i])
		out[user.ID] = user
	}
	return out, nil
}

func (r *UserRepositoryMongo) ExistsByUsernameOrEmail(ctx context.Context, username, email, excludeID string) (bool, error) {
	or := bson.A{}
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return false, nil
	}

	filter := bson.M{"$or": or}
	if oid, ok := objectID(excludeID); ok {
		filter["_id"] = bson.M{"$ne": oid}
	}

	n, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepositoryMongo) Update(ctx context.Context, userID string, update entities.UserUpdate) (*entities.User, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, repositories.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc UserDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repositories.ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return toUserEntity(&doc), nil
}
