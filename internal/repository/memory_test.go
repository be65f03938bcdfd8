package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"places-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlace(id, creator string) models.Place {
	return models.Place{
		ID:          id,
		Title:       "Title " + id,
		Description: "Description " + id,
		Address:     "Address " + id,
		Location:    models.Location{Lat: 1.5, Lng: -2.5},
		Creator:     creator,
	}
}

func TestMemoryPlaceRepository_GetByID(t *testing.T) {
	repo := NewMemoryPlaceRepository(testPlace("p1", "u1"))
	ctx := context.Background()

	place, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Title p1", place.Title)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestMemoryPlaceRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryPlaceRepository(testPlace("p1", "u1"))
	ctx := context.Background()

	place, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	place.Title = "mutated"

	again, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Title p1", again.Title)
}

func TestMemoryPlaceRepository_GetByCreator(t *testing.T) {
	repo := NewMemoryPlaceRepository(
		testPlace("p1", "u1"),
		testPlace("p2", "u2"),
		testPlace("p3", "u1"),
	)
	ctx := context.Background()

	places, err := repo.GetByCreator(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "p1", places[0].ID)
	assert.Equal(t, "p3", places[1].ID)

	places, err = repo.GetByCreator(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestMemoryPlaceRepository_CreateRejectsDuplicateID(t *testing.T) {
	repo := NewMemoryPlaceRepository(testPlace("p1", "u1"))
	p := testPlace("p1", "u2")

	err := repo.Create(context.Background(), &p)
	assert.ErrorIs(t, err, ErrPlaceExists)
	assert.Equal(t, 1, repo.Len())
}

func TestMemoryPlaceRepository_Update(t *testing.T) {
	repo := NewMemoryPlaceRepository(testPlace("p1", "u1"))
	ctx := context.Background()

	updated, err := repo.Update(ctx, "p1", "New title", "New description")
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "New description", updated.Description)
	assert.Equal(t, "Address p1", updated.Address)

	_, err = repo.Update(ctx, "missing", "a", "b")
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestMemoryPlaceRepository_UpdateImage(t *testing.T) {
	repo := NewMemoryPlaceRepository(testPlace("p1", "u1"))
	ctx := context.Background()

	require.NoError(t, repo.UpdateImage(ctx, "p1", "https://img/p1.jpg"))
	place, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "https://img/p1.jpg", place.Image)

	assert.ErrorIs(t, repo.UpdateImage(ctx, "missing", "x"), ErrPlaceNotFound)
}

func TestMemoryPlaceRepository_Delete(t *testing.T) {
	repo := NewMemoryPlaceRepository(testPlace("p1", "u1"), testPlace("p2", "u1"))
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, "p1"))
	assert.Equal(t, 1, repo.Len())

	_, err := repo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, ErrPlaceNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "p1"), ErrPlaceNotFound)
	assert.Equal(t, 1, repo.Len())
}

func TestMemoryUserRepository_CreateAndLookup(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Name: "A", Email: "a@example.com"}))

	user, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = repo.GetByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemoryUserRepository_ListEmpty(t *testing.T) {
	users, err := NewMemoryUserRepository().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestMemoryUserRepository_CreateConflicts(t *testing.T) {
	repo := NewMemoryUserRepository(models.User{ID: "u1", Email: "a@example.com"})
	ctx := context.Background()

	err := repo.Create(ctx, &models.User{ID: "u2", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrEmailExists)

	err = repo.Create(ctx, &models.User{ID: "u1", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrUserExists)

	assert.Equal(t, 1, repo.Len())
}

func TestMemoryUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Create(ctx, &models.User{ID: fmt.Sprintf("u%d", i), Email: "same@example.com"})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, repo.Len())
}
