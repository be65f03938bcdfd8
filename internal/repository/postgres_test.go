package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"places-backend/internal/models"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return mock
}

func placeRows() *pgxmock.Rows {
	return pgxmock.NewRows(placeColumns)
}

func TestPostgresPlaceRepository_GetByID(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPostgresPlaceRepository(mock)
	ctx := context.Background()
	createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM places WHERE id = \$1`).
		WithArgs("p1").
		WillReturnRows(placeRows().AddRow(
			"p1", "Ubud Yoga Centre", "Hot yoga in Ubud", "", "Ubud, Bali",
			-8.5286066, 115.2545175, "u1", createdAt,
		))
	mock.ExpectQuery(`SELECT (.+) FROM places WHERE id = \$1`).
		WithArgs("p2").
		WillReturnRows(placeRows())

	place, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, &models.Place{
		ID:          "p1",
		Title:       "Ubud Yoga Centre",
		Description: "Hot yoga in Ubud",
		Address:     "Ubud, Bali",
		Location:    models.Location{Lat: -8.5286066, Lng: 115.2545175},
		Creator:     "u1",
		CreatedAt:   createdAt,
	}, place)

	_, err = repo.GetByID(ctx, "p2")
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestPostgresPlaceRepository_GetByCreator(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPostgresPlaceRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM places WHERE creator = \$1 ORDER BY created_at ASC`).
		WithArgs("u1").
		WillReturnRows(placeRows().
			AddRow("p1", "One", "first place", "", "a", 1.0, 2.0, "u1", now).
			AddRow("p3", "Two", "second place", "https://cdn/img.jpg", "b", 3.0, 4.0, "u1", now))

	places, err := repo.GetByCreator(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "p1", places[0].ID)
	assert.Equal(t, "https://cdn/img.jpg", places[1].Image)
}

func TestPostgresPlaceRepository_CreateDuplicateID(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPostgresPlaceRepository(mock)

	mock.ExpectExec(`INSERT INTO places`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "places_pkey"})

	err := repo.Create(context.Background(), &models.Place{ID: "p1", Title: "t", Creator: "u1"})
	assert.ErrorIs(t, err, ErrPlaceExists)
}

func TestPostgresPlaceRepository_UpdateMissing(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPostgresPlaceRepository(mock)

	mock.ExpectQuery(`UPDATE places SET title = \$1, description = \$2 WHERE id = \$3 RETURNING`).
		WithArgs("New", "new description", "missing").
		WillReturnRows(placeRows())

	_, err := repo.Update(context.Background(), "missing", "New", "new description")
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestPostgresPlaceRepository_RowsAffected(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPostgresPlaceRepository(mock)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM places WHERE id = \$1`).
		WithArgs("p1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM places WHERE id = \$1`).
		WithArgs("p1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`UPDATE places SET image = \$1 WHERE id = \$2`).
		WithArgs("https://cdn/img.jpg", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.NoError(t, repo.Delete(ctx, "p1"))
	assert.ErrorIs(t, repo.Delete(ctx, "p1"), ErrPlaceNotFound)
	assert.ErrorIs(t, repo.UpdateImage(ctx, "missing", "https://cdn/img.jpg"), ErrPlaceNotFound)
}

func TestPostgresUserRepository_CreateConflicts(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantErr    error
	}{
		{name: "duplicate email", constraint: usersEmailConstraint, wantErr: ErrEmailExists},
		{name: "duplicate id", constraint: "users_pkey", wantErr: ErrUserExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockDB(t)
			repo := NewPostgresUserRepository(mock)

			mock.ExpectExec(`INSERT INTO users`).
				WithArgs("u2", "Max", "max@example.com", "hash", pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: tt.constraint})

			err := repo.Create(context.Background(), &models.User{
				ID:       "u2",
				Name:     "Max",
				Email:    "max@example.com",
				Password: "hash",
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPostgresUserRepository_CreateOtherError(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPostgresUserRepository(mock)
	connErr := errors.New("connection reset")

	mock.ExpectExec(`INSERT INTO users`).WillReturnError(connErr)

	err := repo.Create(context.Background(), &models.User{ID: "u2", Email: "max@example.com"})
	assert.ErrorIs(t, err, connErr)
	assert.NotErrorIs(t, err, ErrEmailExists)
}

func TestPostgresUserRepository_GetByEmail(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPostgresUserRepository(mock)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("yogi@yoga.com").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow("u1", "Barbara Sol", "yogi@yoga.com", "hash", now))
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("nobody@yoga.com").
		WillReturnRows(pgxmock.NewRows(userColumns))

	user, err := repo.GetByEmail(ctx, "yogi@yoga.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "hash", user.Password)

	_, err = repo.GetByEmail(ctx, "nobody@yoga.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPostgresUserRepository_ListEmpty(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPostgresUserRepository(mock)

	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY created_at ASC`).
		WillReturnRows(pgxmock.NewRows(userColumns))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}
