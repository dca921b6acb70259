package repository

import (
	"context"
	"testing"
	"time"

	"interview-coach/internal/domain/entities"
	repo "interview-coach/internal/domain/interfaces/repository"
	"interview-coach/internal/domain/interfaces/repository/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repo.Repository[entities.User] = (*MemoryRepository[entities.User])(nil)
var _ repo.Repository[entities.User] = (*MongoRepository[entities.User])(nil)

func TestMemoryRepositoryCreateAndFindAll(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository[entities.InterviewRecord]()

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	first, err := r.Create(ctx, constants.INTERVIEWS_COLLECTION, entities.InterviewRecord{
		ChatHistory: "Interviewer: Q1\n",
		Summary:     "good",
		CreatedAt:   created,
	})
	require.NoError(t, err)
	second, err := r.Create(ctx, constants.INTERVIEWS_COLLECTION, entities.InterviewRecord{Summary: "better"})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	all, err := r.FindAll(ctx, constants.INTERVIEWS_COLLECTION)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0].ID.Hex())
	assert.Equal(t, "Interviewer: Q1\n", all[0].ChatHistory)
	assert.True(t, created.Equal(all[0].CreatedAt))
	assert.Equal(t, "better", all[1].Summary)
}

func TestMemoryRepositoryFindAllEmptyCollection(t *testing.T) {
	r := NewMemoryRepository[entities.InterviewRecord]()

	all, err := r.FindAll(context.Background(), constants.INTERVIEWS_COLLECTION)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestMemoryRepositoryFindOne(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository[entities.User]()

	_, err := r.Create(ctx, constants.USERS_COLLECTION, entities.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	u, err := r.FindOne(ctx, constants.USERS_COLLECTION, "email", "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "h", u.PasswordHash)

	_, err = r.FindOne(ctx, constants.USERS_COLLECTION, "email", "bob@example.com")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestMemoryRepositoryUniqueIndex(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository[entities.User]()
	require.NoError(t, r.EnsureUniqueIndex(ctx, constants.USERS_COLLECTION, "email"))
	require.NoError(t, r.EnsureUniqueIndex(ctx, constants.USERS_COLLECTION, "email"))

	_, err := r.Create(ctx, constants.USERS_COLLECTION, entities.User{Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = r.Create(ctx, constants.USERS_COLLECTION, entities.User{Email: "ada@example.com"})
	assert.ErrorIs(t, err, repo.ErrDuplicateKey)
}

func TestMemoryRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository[entities.User]()

	id, err := r.Create(ctx, constants.USERS_COLLECTION, entities.User{Email: "ada@example.com"})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, constants.USERS_COLLECTION, id))
	assert.ErrorIs(t, r.Delete(ctx, constants.USERS_COLLECTION, id), repo.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, constants.USERS_COLLECTION, "not-hex"), repo.ErrNotFound)
}

func TestMemoryRepositoryHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewMemoryRepository[entities.User]()
	_, err := r.Create(ctx, constants.USERS_COLLECTION, entities.User{})
	assert.ErrorIs(t, err, context.Canceled)
}
