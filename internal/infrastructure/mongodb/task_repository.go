package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookstore-service/internal/domain/entities"
)

type TaskRepositoryMongo struct {
	collection *mongo.Collection
}

func NewTaskRepositoryMongo(collection *mongo.Collection) *TaskRepositoryMongo {
	return &TaskRepositoryMongo{collection: collection}
}

func (r *TaskRepositoryMongo) Create(ctx context.Context, task *entities.Task) error {
	doc := TaskDocument{
		ID:        primitive.NewObjectID(),
		Text:      task.Text,
		CreatedAt: task.CreatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	task.ID = doc.ID.Hex()
	return nil
}

func (r *TaskRepositoryMongo) List(ctx context.Context) ([]*entities.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	var docs []TaskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]*entities.Task, len(docs))
	for i, doc := range docs {
		tasks[i] = &entities.Task{ID: doc.ID.Hex(), Text: doc.Text, CreatedAt: doc.CreatedAt}
	}
	return tasks, nil
}
