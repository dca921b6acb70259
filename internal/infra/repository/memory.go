package repository

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	repo "interview-coach/internal/domain/interfaces/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository keeps documents in process memory. Entities go through the
// same BSON encoding as MongoRepository, so field names and _id handling match.
type MemoryRepository[T any] struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

type memoryCollection struct {
	docs   []bson.M
	unique []string
}

func NewMemoryRepository[T any]() *MemoryRepository[T] {
	return &MemoryRepository[T]{collections: make(map[string]*memoryCollection)}
}

func (r *MemoryRepository[T]) collection(name string) *memoryCollection {
	c, ok := r.collections[name]
	if !ok {
		c = &memoryCollection{}
		r.collections[name] = c
	}
	return c
}

func (r *MemoryRepository[T]) Create(ctx context.Context, collectionName string, entity T) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := bson.Marshal(entity)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("decode document: %w", err)
	}

	id, ok := doc["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		doc["_id"] = id
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.collection(collectionName)
	for _, field := range c.unique {
		for _, existing := range c.docs {
			if reflect.DeepEqual(existing[field], doc[field]) {
				return "", fmt.Errorf("insert into %s: %w", collectionName, repo.ErrDuplicateKey)
			}
		}
	}
	c.docs = append(c.docs, doc)
	return id.Hex(), nil
}

func (r *MemoryRepository[T]) FindOne(ctx context.Context, collectionName string, field string, value any) (T, error) {
	var entity T
	if err := ctx.Err(); err != nil {
		return entity, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.collections[collectionName]
	if !ok {
		return entity, repo.ErrNotFound
	}
	for _, doc := range c.docs {
		if reflect.DeepEqual(doc[field], value) {
			return decode[T](doc)
		}
	}
	return entity, repo.ErrNotFound
}

func (r *MemoryRepository[T]) FindAll(ctx context.Context, collectionName string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entities := make([]T, 0)
	c, ok := r.collections[collectionName]
	if !ok {
		return entities, nil
	}
	for _, doc := range c.docs {
		entity, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (r *MemoryRepository[T]) Delete(ctx context.Context, collectionName string, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid document id %q: %w", id, repo.ErrNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.collections[collectionName]
	if !ok {
		return repo.ErrNotFound
	}
	for i, doc := range c.docs {
		if doc["_id"] == objectID {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *MemoryRepository[T]) EnsureUniqueIndex(ctx context.Context, collectionName string, field string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.collection(collectionName)
	for _, f := range c.unique {
		if f == field {
			return nil
		}
	}
	c.unique = append(c.unique, field)
	return nil
}

func decode[T any](doc bson.M) (T, error) {
	var entity T
	raw, err := bson.Marshal(doc)
	if err != nil {
		return entity, fmt.Errorf("encode document: %w", err)
	}
	if err := bson.Unmarshal(raw, &entity); err != nil {
		return entity, fmt.Errorf("decode document: %w", err)
	}
	return entity, nil
}
