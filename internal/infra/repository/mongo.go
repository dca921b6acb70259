package repository

import (
	"context"
	"errors"
	"fmt"

	repo "interview-coach/internal/domain/interfaces/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository[T any] struct {
	mongo *mongo.Database
}

func NewMongoRepository[T any](mongo *mongo.Database) *MongoRepository[T] {
	return &MongoRepository[T]{mongo: mongo}
}

func (r *MongoRepository[T]) Create(ctx context.Context, collectionName string, entity T) (string, error) {
	collection := r.mongo.Collection(collectionName)
	result, err := collection.InsertOne(ctx, entity)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("insert into %s: %w", collectionName, repo.ErrDuplicateKey)
		}
		return "", fmt.Errorf("insert into %s: %w", collectionName, err)
	}

	switch id := result.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	default:
		return fmt.Sprint(id), nil
	}
}

func (r *MongoRepository[T]) FindOne(ctx context.Context, collectionName string, field string, value any) (T, error) {
	var entity T
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{field: value}
	err := collection.FindOne(ctx, filter).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity, repo.ErrNotFound
	}
	return entity, err
}

func (r *MongoRepository[T]) FindAll(ctx context.Context, collectionName string) ([]T, error) {
	collection := r.mongo.Collection(collectionName)
	cursor, err := collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entities := make([]T, 0)
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *MongoRepository[T]) Delete(ctx context.Context, collectionName string, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid document id %q: %w", id, repo.ErrNotFound)
	}

	collection := r.mongo.Collection(collectionName)
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MongoRepository[T]) EnsureUniqueIndex(ctx context.Context, collectionName string, field string) error {
	collection := r.mongo.Collection(collectionName)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(field + "_unique"),
	})
	if err != nil {
		return fmt.Errorf("create unique index on %s.%s: %w", collectionName, field, err)
	}
	return nil
}
