package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/domain/entity"
	"github.com/taskflow/taskflow-api/internal/domain/repository"
)

func TestUserRepositoryCreateAssignsID(t *testing.T) {
	r := NewUserRepository()
	u := &entity.User{Email: "jane@example.com", Name: "Jane", Password: "hash"}
	require.NoError(t, r.Create(context.Background(), u))
	assert.NotEmpty(t, u.ID)

	got, err := r.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	r := NewUserRepository()
	u := &entity.User{Email: "jane@example.com", Name: "Jane"}
	require.NoError(t, r.Create(context.Background(), u))

	got, err := r.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = r.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryUpdate(t *testing.T) {
	r := NewUserRepository()
	u := &entity.User{Email: "jane@example.com", Name: "Jane"}
	require.NoError(t, r.Create(context.Background(), u))

	u.Name = "Renamed"
	require.NoError(t, r.Update(context.Background(), u))

	got, err := r.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	missing := &entity.User{ID: "missing"}
	assert.ErrorIs(t, r.Update(context.Background(), missing), repository.ErrNotFound)
}

func TestUserRepositoryGetReturnsCopy(t *testing.T) {
	r := NewUserRepository()
	u := &entity.User{Email: "jane@example.com", Name: "Jane"}
	require.NoError(t, r.Create(context.Background(), u))

	got, err := r.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := r.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", again.Name)
}

func TestUserRepositoryCreateDuplicateEmailConflicts(t *testing.T) {
	r := NewUserRepository()
	require.NoError(t, r.Create(context.Background(), &entity.User{Email: "jane@example.com"}))

	err := r.Create(context.Background(), &entity.User{Email: "jane@example.com"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}
