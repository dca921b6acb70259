package repository

import (
	"context"
	"errors"

	"interview-coach/internal/domain/entities"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Repository is a schema-free document collection store.
type Repository[T any] interface {
	// Create inserts entity and returns the hex id of the stored document.
	Create(ctx context.Context, collectionName string, entity T) (string, error)
	// FindOne returns the first document whose field equals value, or ErrNotFound.
	FindOne(ctx context.Context, collectionName string, field string, value any) (T, error)
	FindAll(ctx context.Context, collectionName string) ([]T, error)
	Delete(ctx context.Context, collectionName string, id string) error
	// EnsureUniqueIndex makes later inserts with a repeated field value fail with ErrDuplicateKey.
	EnsureUniqueIndex(ctx context.Context, collectionName string, field string) error
}

// SessionStore is the backing table of live interview sessions. Implementations
// store copies: callers never share a session value with the store.
type SessionStore interface {
	Put(session entities.InterviewSession)
	Get(sessionID string) (entities.InterviewSession, bool)
	Delete(sessionID string) bool
	// List returns sessions in insertion order.
	List() []entities.InterviewSession
}
